package catalog

import "stride-storefront/internal/api"

func mapProduct(p api.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Sizes:       defaultSizes,
	}
}

func mapProducts(products []api.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, mapProduct(p))
	}
	return out
}
