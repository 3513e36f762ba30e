package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const descLength = 40

func formatMinor(m int64) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

func printTxn(w io.Writer, t Txn) {
	color.New(color.BgYellow, color.FgBlack).Fprintf(w, " %10s ", t.Date.Format(dateStamp))
	desc := t.Payee
	if len(desc) > descLength {
		desc = desc[:descLength]
	}
	color.New(color.BgWhite, color.FgBlack).Fprintf(w, " %-40s", desc) // descLength used in Printf.
	color.New(color.BgRed, color.FgWhite).Fprintf(w, " %10s ", formatMinor(t.Amount))
	fmt.Fprintf(w, "  row %d", t.Row)
	if len(t.Account) > 0 {
		fmt.Fprintf(w, "  %s", t.Account)
	}
	fmt.Fprintln(w)
}

func printReport(w io.Writer, clusters []Cluster) {
	if len(clusters) == 0 {
		fmt.Fprintln(w, "No potential duplicates found.")
		return
	}
	fmt.Fprintf(w, "Found %d potential duplicate group(s):\n\n", len(clusters))
	for i, c := range clusters {
		color.New(color.BgBlue, color.FgWhite).Fprintf(w, " #%d ", i+1)
		color.New(color.BgGreen, color.FgBlack).Fprintf(w, " confidence %d/5 ", c.Confidence)
		fmt.Fprintln(w)
		for _, t := range c.Txns {
			printTxn(w, t)
		}
		fmt.Fprintln(w)
	}
}

func printWarnings(failures []RowFailure) {
	warn := color.New(color.FgYellow)
	for _, f := range failures {
		warn.Fprintf(os.Stderr, "Warning: row %d skipped: %s\n", f.Row, f.Reason)
	}
}

type jsonTxn struct {
	Row             int    `json:"row"`
	Date            string `json:"date"`
	Payee           string `json:"payee"`
	NormalizedPayee string `json:"normalized_payee"`
	Amount          string `json:"amount"`
	AmountMinor     int64  `json:"amount_minor"`
	Account         string `json:"account,omitempty"`
	Memo            string `json:"memo,omitempty"`
}

type jsonCluster struct {
	Confidence   int       `json:"confidence"`
	Transactions []jsonTxn `json:"transactions"`
}

type jsonReport struct {
	DuplicatesFound int           `json:"duplicates_found"`
	Clusters        []jsonCluster `json:"clusters"`
}

func renderJSON(w io.Writer, clusters []Cluster) error {
	report := jsonReport{
		DuplicatesFound: len(clusters),
		Clusters:        make([]jsonCluster, 0, len(clusters)),
	}
	for _, c := range clusters {
		jc := jsonCluster{Confidence: c.Confidence}
		for _, t := range c.Txns {
			jc.Transactions = append(jc.Transactions, jsonTxn{
				Row:             t.Row,
				Date:            t.Date.Format(dateStamp),
				Payee:           t.Payee,
				NormalizedPayee: t.Norm,
				Amount:          formatMinor(t.Amount),
				AmountMinor:     t.Amount,
				Account:         t.Account,
				Memo:            t.Memo,
			})
		}
		report.Clusters = append(report.Clusters, jc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
