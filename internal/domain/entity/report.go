package entity

import "time"

// ErrorMarker is rendered in both cost columns when an account could not
// be processed (role assumption or Cost Explorer failure).
const ErrorMarker = "ERROR"

// NameNotFound is the display name used when an account ID is absent
// from the configured name mapping.
const NameNotFound = "Name Not Found"

// ReportingPeriod represents the previous full calendar month being reported.
type ReportingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"` // YYYY-MM of the period start
}

// LinkedAccountCost carries the raw metric amounts Cost Explorer returned
// for one linked account. Amounts are kept as strings so that unparseable
// payloads can be passed through to the report verbatim.
type LinkedAccountCost struct {
	AccountID    string `json:"account_id"`
	NetAmortized string `json:"net_amortized_cost"`
	Unblended    string `json:"unblended_cost"`
}

// AccountCostRow is one rendered line of the report. Cost columns hold
// either an amount formatted to two decimals, "0.00" when the account had
// no cost group, the ErrorMarker, or the raw unparsed API string.
type AccountCostRow struct {
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	Month        string `json:"month"`
	NetAmortized string `json:"net_amortized_cost"`
	Unblended    string `json:"unblended_cost"`
}

// ReportTotals accumulates the raw (unrounded) amounts of every row that
// parsed successfully. Error rows contribute nothing.
type ReportTotals struct {
	NetAmortized float64 `json:"net_amortized_cost"`
	Unblended    float64 `json:"unblended_cost"`
}

// Report is the finished monthly cost report: one row per configured
// account, in input order, plus the grand totals.
type Report struct {
	Period ReportingPeriod  `json:"period"`
	Rows   []AccountCostRow `json:"rows"`
	Totals ReportTotals     `json:"totals"`
}

// Filename returns the delivery filename for the report's period,
// e.g. "aws_cost_2024-02.csv".
func (r *Report) Filename() string {
	return "aws_cost_" + r.Period.Label + ".csv"
}
