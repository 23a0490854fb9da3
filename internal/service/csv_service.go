package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mbruton/pennywise/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"type", "amount", "description", "category", "date"}

// CSVService imports and exports transactions in the
// type,amount,description,category,date interchange format.
type CSVService struct {
	transactionRepo domain.TransactionRepository
}

// NewCSVService creates a new CSVService
func NewCSVService(transactionRepo domain.TransactionRepository) *CSVService {
	return &CSVService{transactionRepo: transactionRepo}
}

// ImportResult summarizes one CSV import batch
type ImportResult struct {
	BatchID  string `json:"batchId"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Export writes every transaction to w, newest first
func (s *CSVService) Export(w io.Writer) error {
	transactions, err := s.transactionRepo.GetAll(nil)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		record := []string{
			string(t.Type),
			t.Amount.String(),
			t.Description,
			t.Category,
			t.Date.Format(time.DateOnly),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads transactions from r. Rows violating a field invariant are
// skipped and counted; valid rows are stored as-is, without requiring the
// category to exist (the aggregator reports stale references as
// Uncategorized).
func (s *CSVService) Import(r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvHeader {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", name)
		}
	}

	result := &ImportResult{BatchID: uuid.NewString()}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		transaction, ok := parseRecord(record, index)
		if !ok {
			result.Skipped++
			continue
		}
		if _, err := s.transactionRepo.Create(transaction); err != nil {
			return nil, fmt.Errorf("store imported transaction: %w", err)
		}
		result.Imported++
	}

	log.Info().
		Str("batch_id", result.BatchID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("CSV import finished")

	return result, nil
}

func parseRecord(record []string, index map[string]int) (*domain.Transaction, bool) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	transactionType := domain.TransactionType(strings.ToLower(field("type")))
	if !transactionType.Valid() {
		return nil, false
	}

	amount, err := decimal.NewFromString(field("amount"))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, false
	}

	description := field("description")
	if description == "" {
		return nil, false
	}

	category := field("category")
	if category == "" {
		return nil, false
	}

	date, err := time.Parse(time.DateOnly, field("date"))
	if err != nil {
		return nil, false
	}

	return &domain.Transaction{
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}, true
}
