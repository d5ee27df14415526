package config

type Inventory struct {
	// LowStockThreshold flags products whose current stock is at or below it.
	LowStockThreshold int64 `env:"INVENTORY_LOW_STOCK_THRESHOLD" envDefault:"5"`
}
