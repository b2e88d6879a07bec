package entities

import "github.com/shopspring/decimal"

// Period is the reporting period a KPI target applies to
type Period string

const (
	Monthly   Period = "Monthly"
	Quarterly Period = "Quarterly"
	Annual    Period = "Annual"
)

// KPITarget is a row of the KPI target lookup table
type KPITarget struct {
	Name        string
	TargetValue decimal.Decimal
	Period      Period
	Department  string
}
