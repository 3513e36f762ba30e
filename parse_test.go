package main

import (
	"strings"
	"testing"
)

func TestParseMinorUnits(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "25.50", want: 2550},
		{in: "$25.50", want: 2550},
		{in: "$1,234.56", want: 123456},
		{in: "-42.00", want: -4200},
		{in: "+42.00", want: 4200},
		{in: "100", want: 10000},
		{in: "0.5", want: 50},
		{in: ".50", want: 50},
		{in: "0.00", want: 0},
		{in: "", wantErr: true},
		{in: "invalid", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "12.3x", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parseMinorUnits(c.in)
			if c.wantErr {
				if err == nil {
					t.Errorf("parseMinorUnits(%q) = %d, want error", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMinorUnits(%q) unexpected error: %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("parseMinorUnits(%q) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name            string
		outflow, inflow string
		want            int64
		wantErr         bool
	}{
		{name: "outflowOnly", outflow: "$25.50", inflow: "$0.00", want: -2550},
		{name: "inflowOnly", outflow: "$0.00", inflow: "$100.00", want: 10000},
		{name: "withCommas", outflow: "$1,234.56", inflow: "$0.00", want: -123456},
		{name: "bothBlank", outflow: "", inflow: "", want: 0},
		{name: "whitespaceBlank", outflow: "  ", inflow: "  ", want: 0},
		{name: "bothZero", outflow: "$0.00", inflow: "$0.00", want: 0},
		{name: "invalidOutflow", outflow: "invalid", inflow: "$0.00", wantErr: true},
		{name: "invalidInflow", outflow: "$0.00", inflow: "invalid", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseAmount(c.outflow, c.inflow)
			if c.wantErr {
				if err == nil {
					t.Errorf("parseAmount(%q, %q) = %d, want error", c.outflow, c.inflow, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q, %q) unexpected error: %v", c.outflow, c.inflow, err)
			}
			if got != c.want {
				t.Errorf("parseAmount(%q, %q) = %d, want %d", c.outflow, c.inflow, got, c.want)
			}
		})
	}
}

func TestNormalizePayee(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Amazon.com", "amazon com"},
		{"AMAZON.COM #123", "amazon com 123"},
		{"  Starbucks   Coffee  ", "starbucks coffee"},
		{"TRADER JOE'S #552", "trader joe s 552"},
		{"", ""},
		{"***", ""},
	}
	for _, c := range cases {
		if got := normalizePayee(c.in); got != c.want {
			t.Errorf("normalizePayee(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

const csvHeader = "Account,Date,Payee,Memo,Outflow,Inflow\n"

func TestReadTransactions(t *testing.T) {
	in := csvHeader +
		"Checking,2025-01-01,Amazon.com,order,$42.00,$0.00\n" +
		"Checking,not-a-date,Amazon.com,,$42.00,$0.00\n" +
		"Checking,2025-01-02,Starbucks,,bad,$0.00\n" +
		"Checking,,Starbucks,,$5.00,$0.00\n" +
		"Savings,2025-01-03,Employer,,\"$0.00\",\"$2,500.00\"\n"

	txns, failures, err := readTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readTransactions: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d txns, want 2: %+v", len(txns), txns)
	}
	if len(failures) != 3 {
		t.Fatalf("got %d failures, want 3: %+v", len(failures), failures)
	}

	first := txns[0]
	if first.Row != 2 {
		t.Errorf("first row id = %d, want 2", first.Row)
	}
	if first.Amount != -4200 {
		t.Errorf("first amount = %d, want -4200", first.Amount)
	}
	if first.Norm != "amazon com" {
		t.Errorf("first normalized payee = %q, want %q", first.Norm, "amazon com")
	}
	if first.Account != "Checking" {
		t.Errorf("first account = %q, want Checking", first.Account)
	}

	second := txns[1]
	if second.Row != 6 {
		t.Errorf("second row id = %d, want 6", second.Row)
	}
	if second.Amount != 250000 {
		t.Errorf("second amount = %d, want 250000", second.Amount)
	}

	wantRows := []int{3, 4, 5}
	for i, f := range failures {
		if f.Row != wantRows[i] {
			t.Errorf("failure %d at row %d, want %d (%s)", i, f.Row, wantRows[i], f.Reason)
		}
	}
}

func TestReadTransactionsNoDateColumn(t *testing.T) {
	in := "Payee,Outflow,Inflow\nAmazon.com,$42.00,$0.00\n"
	_, _, err := readTransactions(strings.NewReader(in))
	if err == nil {
		t.Errorf("expected error for export without Date column")
	}
}

func TestExportReaderEscapedQuotes(t *testing.T) {
	in := csvHeader +
		`Checking,2025-01-01,"Joe\"s Diner",,$10.00,$0.00` + "\n"
	txns, failures, err := readTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readTransactions: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d txns, want 1", len(txns))
	}
	if txns[0].Payee != `Joe"s Diner` {
		t.Errorf("payee = %q, want %q", txns[0].Payee, `Joe"s Diner`)
	}
}
