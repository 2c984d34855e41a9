package catalog

import "sync/atomic"

// Process-wide totals. They start at zero, grow only when a category is created
// or admits a product, and go back to zero only through ResetCounters.
var (
	productCount  atomic.Int64
	categoryCount atomic.Int64
)

// ProductCount reports how many products have been admitted into any category.
func ProductCount() int {
	return int(productCount.Load())
}

// CategoryCount reports how many categories have been created.
func CategoryCount() int {
	return int(categoryCount.Load())
}

// ResetCounters zeroes both totals. Intended for test isolation.
func ResetCounters() {
	productCount.Store(0)
	categoryCount.Store(0)
}
