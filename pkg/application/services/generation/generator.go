package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// Generator builds a complete star-schema snapshot in memory
type Generator struct {
	config Config
	logger *zap.Logger
}

// NewGenerator creates a new generator. A zero seed is replaced by a time
// based one so that unseeded runs differ.
func NewGenerator(config Config, logger *zap.Logger) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{config: config, logger: logger}, nil
}

// Seed returns the seed the run draws from
func (g *Generator) Seed() int64 {
	return g.config.Seed
}

// Config returns the effective run configuration
func (g *Generator) Config() Config {
	return g.config
}

// Generate runs every table generator. Dimensions come first, facts draw
// from the finished dimensions. Nothing is written here.
func (g *Generator) Generate(ctx context.Context) (*entities.Snapshot, error) {
	start := time.Now()
	seed := g.config.Seed
	snapshot := &entities.Snapshot{}

	snapshot.Dates = GenerateDates(g.config.StartDate, g.config.EndDate)
	g.logTable(entities.DimDate, len(snapshot.Dates))

	var err error
	if snapshot.Products, err = GenerateProducts(tableRand(seed, entities.DimProduct)); err != nil {
		return nil, fmt.Errorf("failed to generate products: %w", err)
	}
	g.logTable(entities.DimProduct, len(snapshot.Products))

	if snapshot.Customers, err = GenerateCustomers(tableRand(seed, entities.DimCustomer)); err != nil {
		return nil, fmt.Errorf("failed to generate customers: %w", err)
	}
	g.logTable(entities.DimCustomer, len(snapshot.Customers))

	if snapshot.Employees, err = GenerateEmployees(tableRand(seed, entities.DimEmployee)); err != nil {
		return nil, fmt.Errorf("failed to generate employees: %w", err)
	}
	g.logTable(entities.DimEmployee, len(snapshot.Employees))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	salesDates := snapshot.Dates
	if !g.config.SalesFrom.IsZero() {
		salesDates = datesFrom(snapshot.Dates, entities.DateKeyOf(g.config.SalesFrom))
	}
	snapshot.Sales, err = GenerateSales(tableRand(seed, entities.FactSales), g.config.SalesRows,
		salesDates, snapshot.Products, snapshot.Customers, snapshot.Employees)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sales: %w", err)
	}
	g.logTable(entities.FactSales, len(snapshot.Sales))

	if snapshot.Budgets, err = GenerateBudgets(tableRand(seed, entities.FactBudget), snapshot.Dates); err != nil {
		return nil, fmt.Errorf("failed to generate budgets: %w", err)
	}
	g.logTable(entities.FactBudget, len(snapshot.Budgets))

	snapshot.Inventory, err = GenerateInventory(tableRand(seed, entities.FactInventory), snapshot.Products, g.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate inventory: %w", err)
	}
	g.logTable(entities.FactInventory, len(snapshot.Inventory))

	snapshot.KPITargets = KPITargets()
	g.logTable(entities.DimKPITargets, len(snapshot.KPITargets))

	g.logger.Info("snapshot generated",
		zap.Int64("seed", seed),
		zap.Duration("elapsed", time.Since(start)))

	return snapshot, nil
}

func (g *Generator) logTable(table entities.Table, rows int) {
	g.logger.Debug("table generated", zap.String("table", string(table)), zap.Int("rows", rows))
}

func datesFrom(dates []entities.DateDim, from entities.DateKey) []entities.DateDim {
	for i := range dates {
		if dates[i].Key >= from {
			return dates[i:]
		}
	}
	return nil
}
