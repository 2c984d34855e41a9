package catalog

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Container is a named holder of products that can describe its contents.
type Container interface {
	Name() string
	Description() string
	Products() string
	String() string
}

// Category owns an ordered list of in-stock items.
type Category struct {
	name        string
	description string
	items       []Item
}

// NewCategory validates every item before creating anything, so a rejected
// item leaves the process-wide counters untouched.
func NewCategory(name, description string, items []Item) (*Category, error) {
	for i, item := range items {
		if err := Validate(item); err != nil {
			return nil, fmt.Errorf("category %q, item %d: %w", name, i, err)
		}
	}
	c := &Category{
		name:        name,
		description: description,
		items:       slices.Clone(items),
	}
	productCount.Add(int64(len(c.items)))
	categoryCount.Add(1)
	return c, nil
}

// Validate checks that item can be admitted into a category or an order.
func Validate(item Item) error {
	if isNil(item) {
		return ErrTypeMismatch
	}
	if item.Quantity() == 0 {
		return fmt.Errorf("%q: %w", item.Name(), ErrZeroQuantityProduct)
	}
	return nil
}

func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }

// Len reports how many items the category holds.
func (c *Category) Len() int { return len(c.items) }

// AddProduct appends item after the same checks NewCategory applies.
// The outcome is logged either way.
func (c *Category) AddProduct(item Item) (err error) {
	defer func() {
		if err != nil {
			pkgLog.Warn("product rejected", "category", c.name, "error", err)
			return
		}
		pkgLog.Info("product added", "category", c.name, "product", item.Name())
	}()

	if err := Validate(item); err != nil {
		return fmt.Errorf("add to category %q: %w", c.name, err)
	}
	c.items = append(c.items, item)
	productCount.Add(1)
	return nil
}

// Products lists the members one per line in insertion order.
func (c *Category) Products() string {
	lines := make([]string, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n")
}

// All yields the members in insertion order. Each range over it starts from the first item.
func (c *Category) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, item := range c.items {
			if !yield(item) {
				return
			}
		}
	}
}

// MiddlePrice is the mean member price, or 0 for an empty category.
func (c *Category) MiddlePrice() float64 {
	if len(c.items) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(decimal.NewFromFloat(item.Price()))
	}
	return sum.Div(decimal.NewFromInt(int64(len(c.items)))).InexactFloat64()
}

// String renders e.g. "Смартфоны, количество продуктов: 13 шт.", counting units rather than items.
func (c *Category) String() string {
	total := 0
	for _, item := range c.items {
		total += item.Quantity()
	}
	return fmt.Sprintf("%s, количество продуктов: %d шт.", c.name, total)
}
