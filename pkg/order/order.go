package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog/pkg/catalog"
)

// Order is a request for a quantity of one catalog item. It references the
// item without owning it.
type Order struct {
	id         uuid.UUID
	product    catalog.Item
	quantity   int
	totalPrice float64
}

var _ catalog.Container = (*Order)(nil)

// New checks the product with the same rules a category uses and fixes the
// total price at the current product price.
func New(product catalog.Item, quantity int) (*Order, error) {
	if err := catalog.Validate(product); err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("order %q with quantity %d: %w", product.Name(), quantity, catalog.ErrInvalidQuantity)
	}
	total := decimal.NewFromFloat(product.Price()).Mul(decimal.NewFromInt(int64(quantity)))
	return &Order{
		id:         uuid.New(),
		product:    product,
		quantity:   quantity,
		totalPrice: total.InexactFloat64(),
	}, nil
}

func (o *Order) ID() uuid.UUID         { return o.id }
func (o *Order) Product() catalog.Item { return o.product }
func (o *Order) Quantity() int         { return o.quantity }
func (o *Order) TotalPrice() float64   { return o.totalPrice }
func (o *Order) Name() string          { return "Заказ для " + o.product.Name() }
func (o *Order) Description() string   { return "Заказ продукта " + o.product.Name() }

// Products renders the single order line, e.g. "Iphone 15 - 2 шт.".
func (o *Order) Products() string {
	return fmt.Sprintf("%s - %d шт.", o.product.Name(), o.quantity)
}

func (o *Order) String() string {
	return fmt.Sprintf("Заказ: %s, Количество: %d, Итоговая стоимость: %s руб.",
		o.product.Name(), o.quantity, catalog.FormatPrice(o.totalPrice))
}
