// Package utils provides utility functions for the portfolio analytics engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"portfolio-analytics-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in a rent-roll CSV.
var RequiredColumns = []string{
	"lease_id",
	"due_date",
	"due_amount",
	"is_paid",
}

// OptionalColumns are recognized but not required; absent values are nil.
var OptionalColumns = []string{
	"paid_date",
	"paid_amount",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// lease_id aliases
	"leaseid":     "lease_id",
	"lease id":    "lease_id",
	"lease":       "lease_id",
	"contract_id": "lease_id",
	"contractid":  "lease_id",

	// due_date aliases
	"duedate":       "due_date",
	"due date":      "due_date",
	"date_due":      "due_date",
	"schedule_date": "due_date",

	// due_amount aliases
	"dueamount":      "due_amount",
	"due amount":     "due_amount",
	"amount_due":     "due_amount",
	"amount":         "due_amount",
	"rent":           "due_amount",
	"rent_due":       "due_amount",
	"expected":       "due_amount",
	"expected_rent":  "due_amount",
	"scheduled_rent": "due_amount",

	// is_paid aliases
	"ispaid":  "is_paid",
	"is paid": "is_paid",
	"paid":    "is_paid",
	"settled": "is_paid",
	"status":  "is_paid",

	// paid_date aliases
	"paiddate":     "paid_date",
	"paid date":    "paid_date",
	"date_paid":    "paid_date",
	"payment_date": "paid_date",
	"settled_date": "paid_date",

	// paid_amount aliases
	"paidamount":    "paid_amount",
	"paid amount":   "paid_amount",
	"amount_paid":   "paid_amount",
	"received":      "paid_amount",
	"rent_received": "paid_amount",
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	time.RFC3339,
}

// truthyValues maps accepted is_paid spellings to booleans.
var truthyValues = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true, "paid": true,
	"false": false, "f": false, "no": false, "n": false, "0": false,
	"unpaid": false, "due": false, "pending": false, "": false,
}

// CSVParser handles parsing of rent-roll CSV files.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseScheduleEntries parses CSV content into schedule entry import rows.
// Row-level problems are collected, not fatal; valid rows still import.
func (p *CSVParser) ParseScheduleEntries(content string, batchID string) ([]*models.ScheduleEntryCreate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var entries []*models.ScheduleEntryCreate
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		entry, err := p.parseRow(record, batchID)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		if err := models.ValidateScheduleEntryCreate(entry); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return entries, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		p.columnMapping[normalized] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a ScheduleEntryCreate.
func (p *CSVParser) parseRow(record []string, batchID string) (*models.ScheduleEntryCreate, error) {
	getValue := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	leaseID, err := strconv.ParseInt(getValue("lease_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lease_id: %w", err)
	}

	dueDate, err := parseDate(getValue("due_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %w", err)
	}

	dueAmount, err := parseMoney(getValue("due_amount"))
	if err != nil {
		return nil, fmt.Errorf("invalid due_amount: %w", err)
	}

	isPaid, err := parseBool(getValue("is_paid"))
	if err != nil {
		return nil, fmt.Errorf("invalid is_paid: %w", err)
	}

	entry := &models.ScheduleEntryCreate{
		LeaseID:   leaseID,
		DueDate:   dueDate,
		DueAmount: dueAmount,
		IsPaid:    isPaid,
		BatchID:   batchID,
	}

	if raw := getValue("paid_date"); raw != "" {
		paidDate, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid paid_date: %w", err)
		}
		entry.PaidDate = &paidDate
	}

	if raw := getValue("paid_amount"); raw != "" {
		paidAmount, err := parseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid paid_amount: %w", err)
		}
		entry.PaidAmount = &paidAmount
	}

	return entry, nil
}

// parseDate parses a date string trying the accepted layouts in order.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty value")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// parseMoney parses a decimal amount in major units into cents, handling
// commas and currency symbols.
func parseMoney(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int64(math.Round(f * 100)), nil
}

// parseBool parses an is_paid flag, accepting common spellings.
func parseBool(s string) (bool, error) {
	v, ok := truthyValues[strings.ToLower(s)]
	if !ok {
		return false, fmt.Errorf("unrecognized boolean value: %q", s)
	}
	return v, nil
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Valid:          false,
		RowCount:       0,
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		normalizedColumns[normalized] = true
		result.Columns = append(result.Columns, col)
	}

	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
