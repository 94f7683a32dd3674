// Package csvimport ingests bank transaction exports in CSV form. Banks
// disagree on delimiters, header names, date layouts and amount formats, so
// the importer sniffs the delimiter, maps headers through an alias table and
// parses dates and amounts tolerantly.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/dateutils"
	"mwehrli/finview/internal/logging"
	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/parsererror"

	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// headerAliases maps canonical column roles to the header names banks use.
var headerAliases = map[string][]string{
	"date":      {"date", "booking date", "buchungsdatum", "datum", "started date", "transaction date"},
	"valuedate": {"value date", "valuta", "valutadatum", "completed date"},
	"party":     {"party", "payee", "counterparty", "beneficiary", "merchant", "name", "empfänger"},
	"desc":      {"description", "details", "text", "buchungstext", "verwendungszweck", "reference text"},
	"amount":    {"amount", "betrag", "montant", "value"},
	"debit":     {"debit", "soll", "débit", "withdrawal"},
	"credit":    {"credit", "haben", "crédit", "deposit"},
	"currency":  {"currency", "währung", "ccy", "monnaie"},
	"reference": {"reference", "referenz", "ref"},
	"category":  {"category", "kategorie"},
}

// columnMap resolves a header row into role -> column index.
func columnMap(header []string) map[string]int {
	cols := make(map[string]int)
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		for role, aliases := range headerAliases {
			if _, taken := cols[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					cols[role] = i
					break
				}
			}
		}
	}
	return cols
}

// DetectDelimiter picks the most frequent candidate delimiter in the header
// line. Comma wins ties.
func DetectDelimiter(headerLine string) rune {
	best := ','
	bestCount := strings.Count(headerLine, ",")
	for _, candidate := range []rune{';', '\t', '|'} {
		if count := strings.Count(headerLine, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// Importer reads bank CSV exports into normalized transactions.
type Importer struct {
	// DefaultCurrency is used for rows without a currency column.
	DefaultCurrency string
}

// NewImporter creates an importer with the given default currency.
func NewImporter(defaultCurrency string) *Importer {
	if defaultCurrency == "" {
		defaultCurrency = "CHF"
	}
	return &Importer{DefaultCurrency: defaultCurrency}
}

// ImportFile reads a CSV file and returns normalized transactions for the
// given account. Rows lacking a parsable date or any amount are skipped with
// a warning rather than failing the whole file.
func (im *Importer) ImportFile(filePath, accountID string) ([]models.Transaction, error) {
	log.WithField("file", filePath).Info("Importing CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	transactions, err := im.importReader(file, accountID, filePath)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":  filePath,
		"count": len(transactions),
	}).Info("Successfully imported CSV data")
	return transactions, nil
}

func (im *Importer) importReader(r io.Reader, accountID, filePath string) ([]models.Transaction, error) {
	buffered := bufio.NewReader(r)
	headerLine, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	if strings.TrimSpace(headerLine) == "" {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "delimited text with a header row",
			Msg:            "file is empty",
		}
	}

	delimiter := DetectDelimiter(headerLine)

	reader := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), buffered))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	if len(records) < 2 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "header row plus at least one data row",
			Msg:            "no data rows found",
		}
	}

	cols := columnMap(records[0])
	if _, ok := cols["date"]; !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "a recognizable date column",
			Msg:            "no date column found in header",
		}
	}
	_, hasAmount := cols["amount"]
	_, hasDebit := cols["debit"]
	_, hasCredit := cols["credit"]
	if !hasAmount && !hasDebit && !hasCredit {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "an amount column or a debit/credit pair",
			Msg:            "no amount columns found in header",
		}
	}

	var transactions []models.Transaction
	for rowIdx, record := range records[1:] {
		tx, ok := im.buildTransaction(record, cols, accountID)
		if !ok {
			log.WithFields(logrus.Fields{
				"file": filePath,
				"row":  rowIdx + 2,
			}).Warn("Skipping row without parsable date or amount")
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (im *Importer) buildTransaction(record []string, cols map[string]int, accountID string) (models.Transaction, bool) {
	field := func(role string) string {
		idx, ok := cols[role]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date := dateutils.ParseDateOrZero(field("date"))
	if date.IsZero() {
		return models.Transaction{}, false
	}

	amount := currency.ParseAmountOrZero(field("amount"))
	if amount.IsZero() {
		// Fall back to a debit/credit column pair: debit books negative.
		debit := currency.ParseAmountOrZero(field("debit"))
		credit := currency.ParseAmountOrZero(field("credit"))
		amount = credit.Sub(debit.Abs())
	}
	if amount.IsZero() {
		return models.Transaction{}, false
	}

	ccy := strings.ToUpper(field("currency"))
	if ccy == "" {
		ccy = im.DefaultCurrency
	}

	tx := models.NewTransaction(accountID, date, models.NewMoney(amount, ccy), field("party"), field("desc"))
	tx.Reference = field("reference")
	tx.Category = field("category")
	if valueDate := dateutils.ParseDateOrZero(field("valuedate")); !valueDate.IsZero() {
		tx.ValueDate = valueDate
	}
	return tx, true
}
