package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"catalog/pkg/catalog"
	"catalog/pkg/loader"
	"catalog/pkg/logger"
	"catalog/pkg/order"
	"catalog/pkg/version"
)

// Config captures CLI flags so the catalog tool can run with a single Run call.
type Config struct {
	showVersion bool
	dataPath    string
	reprice     string
	order       string
}

// Run loads the catalog document, applies the requested operations and prints the result to stdout.
func Run(ctx context.Context, args []string, log *logger.Logger) error {
	return run(ctx, args, log, os.Stdin, os.Stdout)
}

func run(ctx context.Context, args []string, log *logger.Logger, in io.Reader, out io.Writer) error {
	if log == nil {
		log = logger.Nop()
	}

	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.showVersion {
		log.Info("catalog version", "version", version.Version())
		return nil
	}

	catalog.SetLogger(log)
	defer catalog.SetLogger(nil)

	path := cfg.data()
	records, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("unable to load catalog: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	categories, err := catalog.Build(records, catalog.WithObserver(func(item catalog.Item) {
		log.Debug("item created", "item", item.GoString(), "id", item.ID())
	}))
	if err != nil {
		return fmt.Errorf("unable to build catalog: %w", err)
	}
	log.Info("catalog loaded", "path", path, "categories", len(categories))

	if cfg.reprice != "" {
		if err := reprice(categories, cfg.reprice, catalog.NewConsolePrompter(in, out)); err != nil {
			return err
		}
	}

	printCatalog(out, categories)

	if cfg.order != "" {
		o, err := placeOrder(categories, cfg.order)
		if err != nil {
			return err
		}
		log.Info("order placed", "id", o.ID(), "product", o.Product().Name(), "total", o.TotalPrice())
		fmt.Fprintln(out, o)
	}

	fmt.Fprintf(out, "Всего категорий: %d, всего товаров: %d\n", catalog.CategoryCount(), catalog.ProductCount())
	return nil
}

// data lets the CATALOG_DATA environment variable override the flag, the way hosted runs configure paths.
func (c Config) data() string {
	if path := os.Getenv("CATALOG_DATA"); path != "" {
		return path
	}
	return c.dataPath
}

// parseFlags uses a dedicated FlagSet so Run can be called from multiple entry points.
func parseFlags(args []string) (Config, error) {
	set := flag.NewFlagSet("catalog", flag.ContinueOnError)
	set.SetOutput(io.Discard)

	var cfg Config
	set.BoolVar(&cfg.showVersion, "version", false, "Show the application version")
	set.StringVar(&cfg.dataPath, "data", "data/products.json", "Catalog document to load (.json, .yaml or .yml).")
	set.StringVar(&cfg.reprice, "reprice", "", "Change a product price before printing, as NAME=PRICE. Lowering asks for confirmation.")
	set.StringVar(&cfg.order, "order", "", "Place an order after printing, as NAME=QUANTITY.")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func printCatalog(out io.Writer, categories []*catalog.Category) {
	for _, c := range categories {
		fmt.Fprintln(out, c)
		if products := c.Products(); products != "" {
			fmt.Fprintln(out, products)
		}
		fmt.Fprintf(out, "Средняя цена: %s руб.\n\n", catalog.FormatPrice(c.MiddlePrice()))
	}
}

func reprice(categories []*catalog.Category, assignment string, prompter catalog.Prompter) error {
	name, raw, err := splitAssignment(assignment)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", raw, err)
	}
	item, err := findItem(categories, name)
	if err != nil {
		return err
	}
	item.SetPrice(price, prompter)
	return nil
}

func placeOrder(categories []*catalog.Category, assignment string) (*order.Order, error) {
	name, raw, err := splitAssignment(assignment)
	if err != nil {
		return nil, err
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid order quantity %q: %w", raw, err)
	}
	item, err := findItem(categories, name)
	if err != nil {
		return nil, err
	}
	return order.New(item, quantity)
}

func findItem(categories []*catalog.Category, name string) (catalog.Item, error) {
	for _, c := range categories {
		for item := range c.All() {
			if strings.EqualFold(item.Name(), name) {
				return item, nil
			}
		}
	}
	return nil, fmt.Errorf("product %q not found", name)
}

// splitAssignment splits on the last "=" because product names may contain one.
func splitAssignment(assignment string) (string, string, error) {
	i := strings.LastIndex(assignment, "=")
	if i <= 0 || i == len(assignment)-1 {
		return "", "", fmt.Errorf("expected NAME=VALUE, got %q", assignment)
	}
	return strings.TrimSpace(assignment[:i]), strings.TrimSpace(assignment[i+1:]), nil
}
