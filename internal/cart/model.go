package cart

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ProductSnapshot is the slice of product data captured when an item is
// added. It is deliberately not live-linked to the catalog: a later
// price or name change must not rewrite carts.
type ProductSnapshot struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
	Price    Price  `json:"price"`
}

// Item is one (product, size) line in a cart.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Price is a monetary amount in major units. Persisted carts written by
// older clients may carry a pre-formatted currency string ("₹ 12,795")
// instead of a number, so decoding accepts both; anything unparseable
// contributes zero rather than poisoning the cart.
type Price float64

func (p Price) Amount() float64 {
	return float64(p)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Price(ParseAmount(s))
		return nil
	}

	*p = 0
	return nil
}

// ParseAmount extracts the numeric value from a formatted price string
// by stripping currency symbols and separators. Malformed input is 0.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}
