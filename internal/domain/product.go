package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product.Category is a weak reference to ProductCategory.Name; nothing
// checks that the slug exists when a product is written.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stocks      int64           `json:"stocks"`
	Image       string          `json:"image,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductInput is the write shape for create and full replace. Price and
// Stocks accept whatever the client sent and are normalized by ToProduct.
type ProductInput struct {
	Name        string      `json:"name" validate:"required,notblank"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       NumberInput `json:"price"`
	Stocks      NumberInput `json:"stocks"`
	Image       string      `json:"image"`
	Barcode     string      `json:"barcode"`
}

func (in ProductInput) ToProduct() Product {
	return NormalizeProduct(Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       ParsePrice(in.Price),
		Stocks:      ParseStocks(in.Stocks),
		Image:       in.Image,
		Barcode:     in.Barcode,
	})
}

// NormalizeProduct enforces price >= 0 in whole cents and stocks >= 0.
// It is idempotent.
func NormalizeProduct(p Product) Product {
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	p.Price = p.Price.Round(2)
	if p.Stocks < 0 {
		p.Stocks = 0
	}
	return p
}

const (
	msgNameRequired  = "Name is required."
	msgPriceTooLarge = "Price is too large."
)

// MaxPrice is the largest price the products.price column can hold.
var MaxPrice = decimal.RequireFromString("9999999999.99")

// ValidateProduct checks a normalized product before it reaches the store.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError(msgNameRequired)
	}
	if p.Price.GreaterThan(MaxPrice) {
		return NewValidationError(msgPriceTooLarge)
	}
	return nil
}

// NumberInput holds the literal text of a JSON number or numeric string.
// Decoding never fails: null, booleans, objects and garbage leave it unset.
type NumberInput struct {
	raw string
}

func Number(raw string) NumberInput {
	return NumberInput{raw: strings.TrimSpace(raw)}
}

func (n NumberInput) IsSet() bool { return n.raw != "" }

func (n NumberInput) String() string { return n.raw }

func (n *NumberInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	n.raw = ""
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			n.raw = strings.TrimSpace(s)
		}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		n.raw = num.String()
	}
	return nil
}

func (n NumberInput) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// ParsePrice returns the submitted price, or zero when it is missing,
// unparsable or negative.
func ParsePrice(n NumberInput) decimal.Decimal {
	if !n.IsSet() {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseStocks floors the submitted quantity and clamps it at zero.
func ParseStocks(n NumberInput) int64 {
	if !n.IsSet() {
		return 0
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Floor(f)
	if f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}
