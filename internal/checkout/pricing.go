package checkout

// PricingConfig carries the pricing knobs. The cart summary and the
// checkout review both price through this one config so the two views
// can never disagree.
type PricingConfig struct {
	TaxRate               float64
	FreeShippingThreshold float64
	ShippingFee           float64
}

// Quote is the full price breakdown for a cart.
type Quote struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// Price computes the breakdown for a subtotal. An empty cart ships for
// free: there is nothing to ship.
func Price(subtotal float64, cfg PricingConfig) Quote {
	q := Quote{Subtotal: subtotal}
	q.Tax = subtotal * cfg.TaxRate
	if subtotal > 0 && subtotal <= cfg.FreeShippingThreshold {
		q.Shipping = cfg.ShippingFee
	}
	q.Total = q.Subtotal + q.Tax + q.Shipping
	return q
}
