package entities

import (
	"math/rand"
	"testing"
	"time"
)

func TestNewDateDim(t *testing.T) {
	testCases := []struct {
		date          time.Time
		key           DateKey
		quarter       int
		week          int
		weekend       bool
		fiscalYear    int
		fiscalQuarter int
	}{
		{time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), 20220101, 1, 52, true, 2022, 4},
		{time.Date(2022, 3, 31, 0, 0, 0, 0, time.UTC), 20220331, 1, 13, false, 2022, 4},
		{time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), 20220401, 2, 13, false, 2023, 1},
		{time.Date(2022, 7, 4, 0, 0, 0, 0, time.UTC), 20220704, 3, 27, false, 2023, 2},
		{time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), 20221231, 4, 52, true, 2023, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.date.Format(DateLayout), func(t *testing.T) {
			d := NewDateDim(tc.date)
			if d.Key != tc.key {
				t.Errorf("Expected key %d, got %d", tc.key, d.Key)
			}
			if d.Quarter != tc.quarter {
				t.Errorf("Expected quarter %d, got %d", tc.quarter, d.Quarter)
			}
			if d.WeekOfYear != tc.week {
				t.Errorf("Expected ISO week %d, got %d", tc.week, d.WeekOfYear)
			}
			if d.IsWeekend != tc.weekend {
				t.Errorf("Expected weekend %v, got %v", tc.weekend, d.IsWeekend)
			}
			if d.FiscalYear != tc.fiscalYear || d.FiscalQuarter != tc.fiscalQuarter {
				t.Errorf("Expected FY%d Q%d, got FY%d Q%d", tc.fiscalYear, tc.fiscalQuarter, d.FiscalYear, d.FiscalQuarter)
			}
			if DateKeyOf(d.Date) != d.Key {
				t.Errorf("Expected key %d to round trip from %s", d.Key, d.Date.Format(DateLayout))
			}
		})
	}
}

func TestActivePool_RejectsEmpty(t *testing.T) {
	products := []Product{{Key: 1, IsActive: false}, {Key: 2, IsActive: false}}
	if _, err := ActiveProducts(products); err == nil {
		t.Fatal("Expected empty active pool to be rejected")
	}

	products[1].IsActive = true
	pool, err := ActiveProducts(products)
	if err != nil {
		t.Fatalf("Expected pool creation to succeed: %v", err)
	}
	if pool.Len() != 1 {
		t.Fatalf("Expected 1 key in pool, got %d", pool.Len())
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		if k := pool.Pick(r); k != 2 {
			t.Errorf("Expected only key 2 to be drawn, got %d", k)
		}
	}
}
