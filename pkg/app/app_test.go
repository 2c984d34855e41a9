package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"catalog/pkg/catalog"
	"catalog/pkg/logger"
)

const document = `[
  {
    "name": "Смартфоны",
    "description": "Телефоны",
    "products": [
      {"name": "Iphone 15", "description": "512GB", "price": 210000.0, "quantity": 8, "kind": "smartphone", "memory": 512},
      {"name": "Xiaomi", "description": "128GB", "price": 30000.0, "quantity": 2}
    ]
  },
  {
    "name": "Газон",
    "description": "Трава",
    "products": [
      {"name": "xiaomi", "description": "повтор", "price": 31000.0, "quantity": 1},
      {"name": "Трава", "description": "Элитная", "price": 500.0, "quantity": 20, "kind": "lawn_grass", "country": "Россия"}
    ]
  }
]`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
	return path
}

func runApp(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	catalog.ResetCounters()
	t.Cleanup(catalog.ResetCounters)

	var out bytes.Buffer
	err := run(context.Background(), args, logger.Nop(), strings.NewReader(input), &out)
	return out.String(), err
}

func TestRunPrintsCatalog(t *testing.T) {
	out, err := runApp(t, "", "-data", writeDocument(t))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Смартфоны, количество продуктов: 11 шт.",
		"Iphone 15, 210000.0 руб. Остаток: 8 шт.",
		"Xiaomi, 31000.0 руб. Остаток: 3 шт.",
		"Средняя цена: 120500.0 руб.",
		"",
		"Газон, количество продуктов: 20 шт.",
		"Трава, 500.0 руб. Остаток: 20 шт.",
		"Средняя цена: 500.0 руб.",
		"",
		"Всего категорий: 2, всего товаров: 3",
		"",
	}, "\n"), out)
}

func TestRunRepriceConfirmed(t *testing.T) {
	out, err := runApp(t, "y\n", "-data", writeDocument(t), "-reprice", "iphone 15=200000")
	require.NoError(t, err)

	assert.Contains(t, out, "Цена понижается с 210000.0 до 200000.0. Подтвердите изменение (y/n): ")
	assert.Contains(t, out, "Iphone 15, 200000.0 руб. Остаток: 8 шт.")
}

func TestRunRepriceDeclined(t *testing.T) {
	out, err := runApp(t, "n\n", "-data", writeDocument(t), "-reprice", "Iphone 15=200000")
	require.NoError(t, err)
	assert.Contains(t, out, "Iphone 15, 210000.0 руб. Остаток: 8 шт.")
}

func TestRunRepriceIncreaseSkipsPrompt(t *testing.T) {
	out, err := runApp(t, "", "-data", writeDocument(t), "-reprice", "Трава=650.5")
	require.NoError(t, err)
	assert.NotContains(t, out, "Подтвердите")
	assert.Contains(t, out, "Трава, 650.5 руб. Остаток: 20 шт.")
}

func TestRunRepriceErrors(t *testing.T) {
	path := writeDocument(t)

	_, err := runApp(t, "", "-data", path, "-reprice", "Nothing=10")
	assert.ErrorContains(t, err, "not found")
	_, err = runApp(t, "", "-data", path, "-reprice", "Iphone 15=cheap")
	assert.ErrorContains(t, err, "invalid price")
	_, err = runApp(t, "", "-data", path, "-reprice", "Iphone 15")
	assert.ErrorContains(t, err, "NAME=VALUE")
}

func TestRunOrder(t *testing.T) {
	out, err := runApp(t, "", "-data", writeDocument(t), "-order", "Xiaomi=2")
	require.NoError(t, err)
	assert.Contains(t, out, "Заказ: Xiaomi, Количество: 2, Итоговая стоимость: 62000.0 руб.\n")

	_, err = runApp(t, "", "-data", writeDocument(t), "-order", "Xiaomi=0")
	assert.ErrorIs(t, err, catalog.ErrInvalidQuantity)
}

func TestRunLogsCreatedItems(t *testing.T) {
	catalog.ResetCounters()
	t.Cleanup(catalog.ResetCounters)
	core, logs := observer.New(zapcore.DebugLevel)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-data", writeDocument(t)}, logger.FromZap(zap.New(core)), strings.NewReader(""), &out)
	require.NoError(t, err)

	created := logs.FilterMessage("item created").All()
	require.Len(t, created, 3)
	assert.Equal(t, "Smartphone('Iphone 15', '512GB', 210000.0, 8, 0.0, '', 512, '')", created[0].ContextMap()["item"])
	assert.Equal(t, "Product('Xiaomi', '128GB', 30000.0, 2)", created[1].ContextMap()["item"])
	assert.Equal(t, 1, logs.FilterMessage("duplicate product merged").Len())
}

func TestRunDataFromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_DATA", writeDocument(t))

	out, err := runApp(t, "", "-data", "does/not/exist.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Всего категорий: 2")
}

func TestRunMissingDocument(t *testing.T) {
	_, err := runApp(t, "", "-data", filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunRejectsNonFinitePrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	doc := "- name: Cat\n  products:\n    - name: Gold\n      price: .nan\n      quantity: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := runApp(t, "", "-data", path)
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
	assert.Empty(t, out)
	assert.Zero(t, catalog.CategoryCount())
}

func TestRunRepriceNonFiniteIgnored(t *testing.T) {
	out, err := runApp(t, "", "-data", writeDocument(t), "-reprice", "Трава=+Inf")
	require.NoError(t, err)
	assert.Contains(t, out, "Трава, 500.0 руб. Остаток: 20 шт.")
}

func TestRunVersionAndHelp(t *testing.T) {
	out, err := runApp(t, "", "-version")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = runApp(t, "", "-h")
	assert.NoError(t, err)

	_, err = runApp(t, "", "-unknown")
	assert.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := run(ctx, []string{"-data", writeDocument(t)}, nil, strings.NewReader(""), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestSplitAssignment(t *testing.T) {
	name, value, err := splitAssignment("55\" QLED=4K=100")
	require.NoError(t, err)
	assert.Equal(t, "55\" QLED=4K", name)
	assert.Equal(t, "100", value)

	for _, bad := range []string{"", "=1", "name=", "plain"} {
		_, _, err := splitAssignment(bad)
		assert.Error(t, err, bad)
	}
}
