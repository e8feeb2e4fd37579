package cart

import (
	"github.com/Saccor/sauda-website-sub000/internal/commerce"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the serialized cart lives under; per-cart keys append the cart id.
const StorageKey = "sauda-cart"

type Item struct {
	Product  commerce.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

type State struct {
	Items     []Item `json:"items"`
	IsOpen    bool   `json:"isOpen"`
	IsLoading bool   `json:"isLoading"`
}

// Total is Σ(unit price × quantity). Items without a parseable price count as zero.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.Product.Price())
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the number of units across all items.
func Count(items []Item) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
