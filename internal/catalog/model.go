package catalog

import (
	"fmt"
	"strings"
)

// Product is a catalog entry with its price already normalized to a
// number. Formatting for display happens only in FormatPrice.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Audience    string
	Price       float64
	ImageURL    string
	Sizes       []string
}

// FormatPrice renders an amount with the Indian digit grouping used
// across the storefront ("₹12,795", "₹1,23,456").
func FormatPrice(amount float64) string {
	whole := int64(amount)
	frac := amount - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
	} else {
		groups = []string{digits}
	}

	out := "₹" + strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	if frac > 0.004 {
		out += fmt.Sprintf(".%02d", int(frac*100+0.5))
	}
	return out
}
