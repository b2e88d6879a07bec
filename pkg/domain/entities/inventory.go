package entities

import (
	"fmt"
	"time"
)

// InventoryPosition is a row of the inventory fact table
type InventoryPosition struct {
	Key               int
	ProductKey        ProductKey
	WarehouseLocation string
	StockOnHand       int
	ReorderLevel      int
	MaxStockLevel     int
	LastStockDate     time.Time
}

// NewInventoryPosition creates a validated InventoryPosition.
// Stock must sit between the reorder level and the maximum stock level.
func NewInventoryPosition(key int, productKey ProductKey, warehouse string, stockOnHand, reorderLevel, maxStockLevel int, lastStockDate time.Time) (*InventoryPosition, error) {
	if key <= 0 {
		return nil, fmt.Errorf("inventory key must be positive, got %d", key)
	}
	if warehouse == "" {
		return nil, fmt.Errorf("warehouse location cannot be empty")
	}
	if reorderLevel < 0 {
		return nil, fmt.Errorf("reorder level cannot be negative, got %d", reorderLevel)
	}
	if maxStockLevel < reorderLevel {
		return nil, fmt.Errorf("max stock level %d is below reorder level %d", maxStockLevel, reorderLevel)
	}
	if stockOnHand < reorderLevel || stockOnHand > maxStockLevel {
		return nil, fmt.Errorf("stock on hand %d outside [%d, %d]", stockOnHand, reorderLevel, maxStockLevel)
	}

	return &InventoryPosition{
		Key:               key,
		ProductKey:        productKey,
		WarehouseLocation: warehouse,
		StockOnHand:       stockOnHand,
		ReorderLevel:      reorderLevel,
		MaxStockLevel:     maxStockLevel,
		LastStockDate:     lastStockDate,
	}, nil
}
