package checkout

// Step is one of the three checkout stages. Forward movement is gated
// by validation; backward movement never is.
type Step int

const (
	StepShipping Step = 1
	StepPayment  Step = 2
	StepReview   Step = 3
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Pincode   string
	Country   string
}

type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodUPI  PaymentMethod = "upi"
	MethodCOD  PaymentMethod = "cod"
)

type PaymentInfo struct {
	Method     PaymentMethod
	CardNumber string
	CardName   string
	ExpiryDate string
	CVV        string
	UPIID      string
}

// Prefill is profile data used to seed the shipping form.
type Prefill struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Country   string
}
