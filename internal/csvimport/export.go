package csvimport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"mwehrli/finview/internal/dateutils"
	"mwehrli/finview/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// Delimiter used for CSV output. Configurable through SetDelimiter.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = string(delim)
}

// exportRow is the normalized CSV shape written for every importer.
type exportRow struct {
	ID          string `csv:"Id"`
	AccountID   string `csv:"Account"`
	Date        string `csv:"Date"`
	ValueDate   string `csv:"ValueDate"`
	Amount      string `csv:"Amount"`
	Currency    string `csv:"Currency"`
	Party       string `csv:"Party"`
	Description string `csv:"Description"`
	Reference   string `csv:"Reference"`
	Category    string `csv:"Category"`
	Direction   string `csv:"Direction"`
}

// WriteTransactionsToCSV writes normalized transactions to a CSV file. All
// importers use this so the output shape stays identical across banks.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]exportRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, exportRow{
			ID:          tx.ID,
			AccountID:   tx.AccountID,
			Date:        dateutils.ToISODate(tx.Date),
			ValueDate:   dateutils.ToISODate(tx.ValueDate),
			Amount:      tx.Amount.Amount.StringFixed(2),
			Currency:    tx.Amount.Currency,
			Party:       tx.Party,
			Description: tx.Description,
			Reference:   tx.Reference,
			Category:    tx.Category,
			Direction:   string(tx.Direction),
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Successfully wrote transactions to CSV file")
	return nil
}

// ReadNormalizedCSV reads a file previously written by WriteTransactionsToCSV.
func ReadNormalizedCSV(filePath string) ([]models.Transaction, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []exportRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		amount, err := models.NewMoneyFromString(row.Amount, row.Currency)
		if err != nil {
			amount = models.ZeroMoney(row.Currency)
		}
		tx := models.Transaction{
			ID:          row.ID,
			AccountID:   row.AccountID,
			Date:        dateutils.ParseDateOrZero(row.Date),
			ValueDate:   dateutils.ParseDateOrZero(row.ValueDate),
			Amount:      amount,
			Party:       row.Party,
			Description: row.Description,
			Reference:   row.Reference,
			Category:    row.Category,
			Direction:   models.TransactionDirection(row.Direction),
		}
		if tx.Direction == "" {
			tx.Direction = models.DirectionFromAmount(amount)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
