package main

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

const dateStamp = "2006-01-02"

// Txn is one transaction from a YNAB register export. Row is the CSV row
// number (header is row 1) and doubles as the stable transaction id.
// Amount is in minor currency units, inflows positive.
type Txn struct {
	Row     int
	Date    time.Time
	Amount  int64
	Payee   string
	Norm    string
	Memo    string
	Account string
}

// RowFailure records a row that could not be turned into a Txn. Failed rows
// are reported as warnings and excluded from matching; they never abort a run
// on their own.
type RowFailure struct {
	Row    int
	Reason string
}

var errEmptyDataset = errors.New("no parseable transactions in input")

// normalizePayee lowercases, replaces punctuation with spaces and collapses
// whitespace. Digits are kept, so order numbers and store suffixes still
// count towards payee matching.
func normalizePayee(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, raw)
	return strings.Join(strings.Fields(mapped), " ")
}

// parseMinorUnits converts decimal money text to integer minor units without
// going through a float. Currency symbols and thousands separators are
// stripped first, so "$1,234.56" parses to 123456.
func parseMinorUnits(col string) (int64, error) {
	s := strings.TrimSpace(col)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if len(s) == 0 {
		return 0, errors.New("empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(whole) == 0 && len(frac) == 0 {
		return 0, errors.Errorf("not a number: %q", col)
	}
	if len(frac) > 2 {
		return 0, errors.Errorf("more than two decimal places: %q", col)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var units int64
	if len(whole) > 0 {
		u, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, errors.Errorf("not a number: %q", col)
		}
		units = u
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", col)
	}

	v := units*100 + cents
	if neg {
		v = -v
	}
	return v, nil
}

// parseAmount combines the Outflow and Inflow columns of a YNAB export into
// one signed amount. Outflows count negative. A blank cell counts as zero; a
// non-blank cell that does not parse fails the row.
func parseAmount(outflow, inflow string) (int64, error) {
	var out, in int64
	if s := strings.TrimSpace(outflow); len(s) > 0 {
		v, err := parseMinorUnits(s)
		if err != nil {
			return 0, errors.Wrapf(err, "outflow")
		}
		out = v
	}
	if s := strings.TrimSpace(inflow); len(s) > 0 {
		v, err := parseMinorUnits(s)
		if err != nil {
			return 0, errors.Wrapf(err, "inflow")
		}
		in = v
	}
	return in - out, nil
}

type columnIndex struct {
	date, payee, memo, outflow, inflow, account int
}

func indexColumns(header []string) (columnIndex, error) {
	ci := columnIndex{date: -1, payee: -1, memo: -1, outflow: -1, inflow: -1, account: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Date":
			ci.date = i
		case "Payee":
			ci.payee = i
		case "Memo":
			ci.memo = i
		case "Outflow":
			ci.outflow = i
		case "Inflow":
			ci.inflow = i
		case "Account":
			ci.account = i
		}
	}
	if ci.date < 0 {
		return ci, errors.New("no Date column found; is this a YNAB register export?")
	}
	return ci, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// readTransactions parses a YNAB CSV export. Rows that cannot be parsed are
// collected as failures so the caller can warn about them; only a missing or
// unusable header is an error.
func readTransactions(in io.Reader) ([]Txn, []RowFailure, error) {
	r := csv.NewReader(newExportReader(in))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to read CSV header")
	}
	ci, err := indexColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var txns []Txn
	var failures []RowFailure
	row := 1 // header
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			failures = append(failures, RowFailure{Row: row, Reason: err.Error()})
			continue
		}

		dateStr := field(rec, ci.date)
		if len(dateStr) == 0 {
			failures = append(failures, RowFailure{Row: row, Reason: "empty date"})
			continue
		}
		date, err := time.Parse(dateStamp, dateStr)
		if err != nil {
			failures = append(failures, RowFailure{Row: row, Reason: "invalid date format: " + dateStr})
			continue
		}

		amount, err := parseAmount(field(rec, ci.outflow), field(rec, ci.inflow))
		if err != nil {
			failures = append(failures, RowFailure{Row: row, Reason: err.Error()})
			continue
		}

		payee := field(rec, ci.payee)
		txns = append(txns, Txn{
			Row:     row,
			Date:    date,
			Amount:  amount,
			Payee:   payee,
			Norm:    normalizePayee(payee),
			Memo:    field(rec, ci.memo),
			Account: field(rec, ci.account),
		})
	}
	return txns, failures, nil
}
