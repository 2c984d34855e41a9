package catalog

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind names the concrete variant of a catalog item.
type Kind string

const (
	KindProduct    Kind = "product"
	KindSmartphone Kind = "smartphone"
	KindLawnGrass  Kind = "lawn_grass"
)

// ParseKind maps the kind field of an ingestion record; an empty value means a plain product.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(KindProduct):
		return KindProduct, nil
	case string(KindSmartphone):
		return KindSmartphone, nil
	case string(KindLawnGrass), "lawngrass":
		return KindLawnGrass, nil
	default:
		return "", fmt.Errorf("unknown product kind %q: %w", s, ErrTypeMismatch)
	}
}

// Item is anything the catalog can stock. The unexported base method keeps the set
// closed by convention to Product, Smartphone and LawnGrass; a type that embeds
// one of them still satisfies Item, so Add compares concrete types as well as kinds.
type Item interface {
	ID() uuid.UUID
	Name() string
	Description() string
	Price() float64
	SetPrice(value float64, prompter Prompter) bool
	Quantity() int
	Kind() Kind
	String() string
	GoString() string

	base() *Product
}

// Product is a priced, counted catalog item without extra attributes.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	price       float64
	quantity    int
}

// NewProduct builds a product; a quantity below one is rejected with ErrInvalidQuantity
// and a NaN or infinite price with ErrInvalidPrice.
func NewProduct(name, description string, price float64, quantity int, opts ...Option) (*Product, error) {
	p, err := newProduct(name, description, price, quantity)
	if err != nil {
		return nil, err
	}
	notify(p, opts)
	return p, nil
}

func newProduct(name, description string, price float64, quantity int) (*Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("product %q with quantity %d: %w", name, quantity, ErrInvalidQuantity)
	}
	if !finite(price) {
		return nil, fmt.Errorf("product %q with price %v: %w", name, price, ErrInvalidPrice)
	}
	return &Product{
		id:          uuid.New(),
		name:        name,
		description: description,
		price:       price,
		quantity:    quantity,
	}, nil
}

// ID is assigned at construction and never changes.
func (p *Product) ID() uuid.UUID { return p.id }

// Name is fixed at construction; duplicates are matched on it ignoring case.
func (p *Product) Name() string { return p.name }

// Description returns the free-form description.
func (p *Product) Description() string { return p.description }

// Price returns the current unit price.
func (p *Product) Price() float64 { return p.price }

// Quantity returns the units in stock.
func (p *Product) Quantity() int { return p.quantity }

// Kind reports KindProduct.
func (p *Product) Kind() Kind { return KindProduct }

func (p *Product) base() *Product { return p }

// SetPrice applies a new price and reports whether it was accepted.
// Non-positive, NaN and infinite values are logged and ignored. Lowering the price needs a "y"
// from the prompter; a nil prompter counts as a refusal.
func (p *Product) SetPrice(value float64, prompter Prompter) bool {
	if value <= 0 || !finite(value) {
		pkgLog.Warn("price update rejected",
			"product", p.name,
			"price", value,
			"error", ErrInvalidPrice,
		)
		return false
	}
	if value < p.price {
		question := fmt.Sprintf("Цена понижается с %s до %s. Подтвердите изменение (y/n): ",
			FormatPrice(p.price), FormatPrice(value))
		if !confirm(prompter, question) {
			pkgLog.Info("price change cancelled", "product", p.name, "current", p.price, "requested", value)
			return false
		}
	}
	p.price = value
	return true
}

// String renders the shelf line, e.g. "Iphone 15, 210000.0 руб. Остаток: 8 шт.".
func (p *Product) String() string {
	return fmt.Sprintf("%s, %s руб. Остаток: %d шт.", p.name, FormatPrice(p.price), p.quantity)
}

// GoString renders the constructor form, e.g. "Product('Iphone 15', '512GB', 210000.0, 8)".
func (p *Product) GoString() string {
	return fmt.Sprintf("Product('%s', '%s', %s, %d)", p.name, p.description, FormatPrice(p.price), p.quantity)
}

// Smartphone is a product with hardware attributes.
type Smartphone struct {
	Product
	efficiency float64
	model      string
	memory     int
	color      string
}

// NewSmartphone builds a smartphone with the same quantity rule as NewProduct.
func NewSmartphone(name, description string, price float64, quantity int,
	efficiency float64, model string, memory int, color string, opts ...Option) (*Smartphone, error) {
	p, err := newProduct(name, description, price, quantity)
	if err != nil {
		return nil, err
	}
	s := &Smartphone{Product: *p, efficiency: efficiency, model: model, memory: memory, color: color}
	notify(s, opts)
	return s, nil
}

// Kind reports KindSmartphone.
func (s *Smartphone) Kind() Kind { return KindSmartphone }

// Efficiency returns the performance rating.
func (s *Smartphone) Efficiency() float64 { return s.efficiency }

// Model returns the model name.
func (s *Smartphone) Model() string { return s.model }

// Memory returns the storage size in gigabytes.
func (s *Smartphone) Memory() int { return s.memory }

// Color returns the body color.
func (s *Smartphone) Color() string { return s.color }

// GoString renders the constructor form including the hardware attributes.
func (s *Smartphone) GoString() string {
	return fmt.Sprintf("Smartphone('%s', '%s', %s, %d, %s, '%s', %d, '%s')",
		s.name, s.description, FormatPrice(s.price), s.quantity,
		FormatPrice(s.efficiency), s.model, s.memory, s.color)
}

// LawnGrass is a product with agronomic attributes.
type LawnGrass struct {
	Product
	country           string
	germinationPeriod string
	color             string
}

// NewLawnGrass builds lawn grass with the same quantity rule as NewProduct.
func NewLawnGrass(name, description string, price float64, quantity int,
	country, germinationPeriod, color string, opts ...Option) (*LawnGrass, error) {
	p, err := newProduct(name, description, price, quantity)
	if err != nil {
		return nil, err
	}
	g := &LawnGrass{Product: *p, country: country, germinationPeriod: germinationPeriod, color: color}
	notify(g, opts)
	return g, nil
}

// Kind reports KindLawnGrass.
func (g *LawnGrass) Kind() Kind { return KindLawnGrass }

// Country returns the country of origin.
func (g *LawnGrass) Country() string { return g.country }

// GerminationPeriod returns the germination period as written in the source document.
func (g *LawnGrass) GerminationPeriod() string { return g.germinationPeriod }

// Color returns the grass color.
func (g *LawnGrass) Color() string { return g.color }

// GoString renders the constructor form including the agronomic attributes.
func (g *LawnGrass) GoString() string {
	return fmt.Sprintf("LawnGrass('%s', '%s', %s, %d, '%s', '%s', '%s')",
		g.name, g.description, FormatPrice(g.price), g.quantity,
		g.country, g.germinationPeriod, g.color)
}

// Add returns the combined stock value (price times quantity) of two items of the same kind
// and the same concrete type.
func Add(a, b Item) (float64, error) {
	if isNil(a) || isNil(b) {
		return 0, fmt.Errorf("add: missing operand: %w", ErrTypeMismatch)
	}
	if a.Kind() != b.Kind() || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return 0, fmt.Errorf("add %s to %s: %w", b.Kind(), a.Kind(), ErrTypeMismatch)
	}
	return stockValue(a).Add(stockValue(b)).InexactFloat64(), nil
}

func stockValue(item Item) decimal.Decimal {
	return decimal.NewFromFloat(item.Price()).Mul(decimal.NewFromInt(int64(item.Quantity())))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(item Item) bool {
	if item == nil {
		return true
	}
	v := reflect.ValueOf(item)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// FormatPrice prints whole numbers with a trailing ".0" so 100 renders as "100.0".
func FormatPrice(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
