package entities

import "time"

// FiscalYearStartMonth is the first month of the fiscal year
const FiscalYearStartMonth = time.April

// DateDim is one calendar day of the date dimension
type DateDim struct {
	Key           DateKey
	Date          time.Time
	Year          int
	Quarter       int
	Month         int
	MonthName     string
	Day           int
	DayName       string
	WeekOfYear    int
	DayOfYear     int
	IsWeekend     bool
	FiscalYear    int
	FiscalQuarter int
}

// NewDateDim derives every attribute of the date dimension from a calendar day
func NewDateDim(t time.Time) DateDim {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	month := int(day.Month())
	_, week := day.ISOWeek()

	fiscalYear := day.Year()
	var fiscalQuarter int
	if day.Month() >= FiscalYearStartMonth {
		fiscalYear++
		fiscalQuarter = (month-4)/3 + 1
	} else {
		fiscalQuarter = (month+8)/3 + 1
	}

	weekday := day.Weekday()

	return DateDim{
		Key:           DateKeyOf(day),
		Date:          day,
		Year:          day.Year(),
		Quarter:       (month-1)/3 + 1,
		Month:         month,
		MonthName:     day.Month().String(),
		Day:           day.Day(),
		DayName:       weekday.String(),
		WeekOfYear:    week,
		DayOfYear:     day.YearDay(),
		IsWeekend:     weekday == time.Saturday || weekday == time.Sunday,
		FiscalYear:    fiscalYear,
		FiscalQuarter: fiscalQuarter,
	}
}

// IsMonthStart reports whether the day is the first of its month
func (d DateDim) IsMonthStart() bool {
	return d.Day == 1
}
