package checkout

// validateShipping checks the mandatory fields in fixed form order and
// reports the first one missing. Country is exempt: it always holds a
// default.
func validateShipping(info ShippingInfo) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", info.FirstName},
		{"lastName", info.LastName},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"state", info.State},
		{"pincode", info.Pincode},
	}

	for _, field := range required {
		if field.value == "" {
			return &ValidationError{Field: field.name}
		}
	}
	return nil
}

// validatePayment enforces the method-specific mandatory subset.
// Cash on delivery needs nothing beyond the method itself.
func validatePayment(info PaymentInfo) error {
	switch info.Method {
	case MethodCard:
		required := []struct {
			name  string
			value string
		}{
			{"cardNumber", info.CardNumber},
			{"cardName", info.CardName},
			{"expiryDate", info.ExpiryDate},
			{"cvv", info.CVV},
		}
		for _, field := range required {
			if field.value == "" {
				return &ValidationError{Field: field.name}
			}
		}
		return nil

	case MethodUPI:
		if info.UPIID == "" {
			return &ValidationError{Field: "upiId"}
		}
		return nil

	case MethodCOD:
		return nil

	default:
		return &ValidationError{Field: "method"}
	}
}
