package checkout

import (
	"stride-storefront/internal/api"
	"stride-storefront/internal/cart"
	"stride-storefront/internal/order"
)

func mapItems(items []cart.Item) []order.Item {
	out := make([]order.Item, 0, len(items))
	for _, it := range items {
		size := it.Size
		if size == "" {
			size = "N/A"
		}
		out = append(out, order.Item{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Size:      size,
			Price:     it.Product.Price.Amount(),
		})
	}
	return out
}

func mapAddress(info ShippingInfo) order.ShippingAddress {
	return order.ShippingAddress{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Email:     info.Email,
		Phone:     info.Phone,
		Address:   info.Address,
		City:      info.City,
		State:     info.State,
		Pincode:   info.Pincode,
		Country:   info.Country,
	}
}

func mapOrderRequest(o order.Order) api.OrderRequest {
	items := make([]api.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, api.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Price:     it.Price,
		})
	}
	return api.OrderRequest{
		Items: items,
		ShippingAddress: api.ShippingAddress{
			FirstName: o.ShippingAddress.FirstName,
			LastName:  o.ShippingAddress.LastName,
			Email:     o.ShippingAddress.Email,
			Phone:     o.ShippingAddress.Phone,
			Address:   o.ShippingAddress.Address,
			City:      o.ShippingAddress.City,
			State:     o.ShippingAddress.State,
			Pincode:   o.ShippingAddress.Pincode,
			Country:   o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
	}
}
