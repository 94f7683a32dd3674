// Package xmlimport reads ISO-20022 bank-to-customer statements (camt.053
// style XML) into normalized transactions. Extraction is XPath-based so minor
// schema-version differences between banks don't break the import.
package xmlimport

import (
	"encoding/xml"
	"fmt"
	"os"

	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/dateutils"
	"mwehrli/finview/internal/logging"
	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/parsererror"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	stmtPath    = xmlpath.MustCompile("//BkToCstmrStmt/Stmt")
	ibanPath    = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Acct/Id/IBAN")
	entryPath   = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Ntry")
	balancePath = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Bal")

	balanceTypePath   = xmlpath.MustCompile("Tp/CdOrPrtry/Cd")
	balanceAmountPath = xmlpath.MustCompile("Amt")
	balanceCcyPath    = xmlpath.MustCompile("Amt/@Ccy")

	entryAmountPath   = xmlpath.MustCompile("Amt")
	entryCcyPath      = xmlpath.MustCompile("Amt/@Ccy")
	entryCdtDbtPath   = xmlpath.MustCompile("CdtDbtInd")
	entryBookDatePath = xmlpath.MustCompile("BookgDt/Dt")
	entryValDatePath  = xmlpath.MustCompile("ValDt/Dt")
	entryRefPath      = xmlpath.MustCompile("AcctSvcrRef")
	entryInfoPath     = xmlpath.MustCompile("NtryDtls/TxDtls/RmtInf/Ustrd")
	entryCdtrPath     = xmlpath.MustCompile("NtryDtls/TxDtls/RltdPties/Cdtr/Nm")
	entryDbtrPath     = xmlpath.MustCompile("NtryDtls/TxDtls/RltdPties/Dbtr/Nm")
)

// Statement is the normalized result of one imported XML statement.
type Statement struct {
	IBAN           string
	ClosingBalance models.Money
	Transactions   []models.Transaction
}

// loadRoot parses an XML file with charset-aware decoding.
func loadRoot(filePath string) (*xmlpath.Node, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	// Bank exports are not always UTF-8; honor the declared encoding.
	decoder := xml.NewDecoder(file)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := xmlpath.ParseDecoder(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}
	return root, nil
}

// ValidateFormat reports whether the file looks like a bank-to-customer
// statement document.
func ValidateFormat(filePath string) (bool, error) {
	root, err := loadRoot(filePath)
	if err != nil {
		return false, err
	}
	return stmtPath.Exists(root), nil
}

// ImportFile extracts the statement for the given account from an XML file.
func ImportFile(filePath, accountID string) (*Statement, error) {
	log.WithField("file", filePath).Info("Importing XML statement")

	root, err := loadRoot(filePath)
	if err != nil {
		return nil, err
	}
	if !stmtPath.Exists(root) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "ISO-20022 bank-to-customer statement",
			Msg:            "no BkToCstmrStmt/Stmt element found",
		}
	}

	statement := &Statement{}
	if iban, ok := ibanPath.String(root); ok {
		statement.IBAN = iban
	}
	statement.ClosingBalance = extractClosingBalance(root)

	iter := entryPath.Iter(root)
	for iter.Next() {
		entry := iter.Node()
		tx, ok := buildTransaction(entry, accountID)
		if !ok {
			log.WithField("file", filePath).Warn("Skipping statement entry without amount or booking date")
			continue
		}
		statement.Transactions = append(statement.Transactions, tx)
	}

	log.WithFields(logrus.Fields{
		"file":  filePath,
		"iban":  statement.IBAN,
		"count": len(statement.Transactions),
	}).Info("Successfully imported XML statement")
	return statement, nil
}

// extractClosingBalance finds the CLBD balance; when absent, the last listed
// balance is used.
func extractClosingBalance(root *xmlpath.Node) models.Money {
	var fallback models.Money
	iter := balancePath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		amountStr, ok := balanceAmountPath.String(node)
		if !ok {
			continue
		}
		ccy, _ := balanceCcyPath.String(node)
		money := models.NewMoney(currency.ParseAmountOrZero(amountStr), ccy)

		if code, ok := balanceTypePath.String(node); ok && code == "CLBD" {
			return money
		}
		fallback = money
	}
	return fallback
}

func buildTransaction(entry *xmlpath.Node, accountID string) (models.Transaction, bool) {
	amountStr, ok := entryAmountPath.String(entry)
	if !ok {
		return models.Transaction{}, false
	}
	bookDateStr, ok := entryBookDatePath.String(entry)
	if !ok {
		return models.Transaction{}, false
	}
	bookDate := dateutils.ParseDateOrZero(bookDateStr)
	if bookDate.IsZero() {
		return models.Transaction{}, false
	}

	amount := currency.ParseAmountOrZero(amountStr)
	ccy, _ := entryCcyPath.String(entry)

	// Debits are stored negative; camt amounts are unsigned with a
	// credit/debit indicator alongside.
	indicator, _ := entryCdtDbtPath.String(entry)
	if indicator == "DBIT" {
		amount = amount.Neg()
	}

	party, _ := entryCdtrPath.String(entry)
	if indicator == "CRDT" {
		if dbtr, ok := entryDbtrPath.String(entry); ok {
			party = dbtr
		}
	}
	info, _ := entryInfoPath.String(entry)

	tx := models.NewTransaction(accountID, bookDate, models.NewMoney(amount, ccy), party, info)
	if ref, ok := entryRefPath.String(entry); ok {
		tx.Reference = ref
	}
	if valDateStr, ok := entryValDatePath.String(entry); ok {
		if valDate := dateutils.ParseDateOrZero(valDateStr); !valDate.IsZero() {
			tx.ValueDate = valDate
		}
	}
	if indicator == "DBIT" {
		tx.Direction = models.DirectionDebit
	} else if indicator == "CRDT" {
		tx.Direction = models.DirectionCredit
	}
	return tx, true
}
