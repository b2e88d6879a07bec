package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(7, "WINDIS007", "Distell Wine Product 7", "Wine", "Distell",
		decimal.RequireFromString("61.37"), decimal.RequireFromString("99.99"), "750ml",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	return p
}

func TestNewSale_DerivedFinancials(t *testing.T) {
	product := testProduct(t)

	sale, err := NewSale(42, 20230115, product, 3, 9, 7, decimal.RequireFromString("0.1234"))
	require.NoError(t, err)

	// 7 x 99.99 = 699.93; 699.93 x 0.1234 = 86.371362
	assert.Equal(t, "699.93", FormatMoney(sale.GrossSales))
	assert.Equal(t, "86.37", FormatMoney(sale.DiscountAmount))
	assert.Equal(t, "613.56", FormatMoney(sale.NetSales))
	assert.Equal(t, "429.59", FormatMoney(sale.COGS))
	assert.Equal(t, "183.97", FormatMoney(sale.GrossProfit))
	assert.Equal(t, "INV000042", sale.InvoiceNumber)
	assert.Equal(t, ProductKey(7), sale.ProductKey)

	tolerance := decimal.RequireFromString("0.01")
	assert.True(t, sale.NetSales.Sub(sale.GrossSales.Sub(sale.DiscountAmount)).Abs().LessThanOrEqual(tolerance))
	assert.True(t, sale.GrossProfit.Sub(sale.NetSales.Sub(sale.COGS)).Abs().LessThanOrEqual(tolerance))
	assert.True(t, sale.DiscountAmount.LessThanOrEqual(sale.GrossSales))
}

func TestNewSale_RejectsInvalidInputs(t *testing.T) {
	product := testProduct(t)

	testCases := []struct {
		name     string
		key      int
		product  *Product
		quantity int
		discount string
	}{
		{"zero key", 0, product, 1, "0"},
		{"missing product", 1, nil, 1, "0"},
		{"zero quantity", 1, product, 0, "0"},
		{"negative discount", 1, product, 1, "-0.01"},
		{"full discount", 1, product, 1, "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSale(tc.key, 20230101, tc.product, 1, 1, tc.quantity, decimal.RequireFromString(tc.discount))
			assert.Error(t, err)
		})
	}
}
