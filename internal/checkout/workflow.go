package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"stride-storefront/internal/api"
	"stride-storefront/internal/cart"
	"stride-storefront/internal/metrics"
	"stride-storefront/internal/order"
	"stride-storefront/internal/session"
)

// Cart is the slice of the cart store the workflow needs.
type Cart interface {
	Items() []cart.Item
	Total() float64
	Clear(ctx context.Context) error
}

// Session tells the workflow who is checking out and with what token.
type Session interface {
	Current(ctx context.Context) string
	Token(ctx context.Context) string
}

// OrderPlacer is the remote order-creation boundary.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderResponse, error)
}

// Workflow drives one checkout: shipping address, payment method,
// review, then exactly one order on success. Backward navigation is
// always allowed and never resets entered data.
type Workflow struct {
	cart    Cart
	session Session
	placer  OrderPlacer
	history order.History
	pricing PricingConfig
	log     *zap.Logger

	mu       sync.Mutex
	step     Step
	shipping ShippingInfo
	payment  PaymentInfo
}

func New(c Cart, s Session, placer OrderPlacer, history order.History, pricing PricingConfig, log *zap.Logger) *Workflow {
	return &Workflow{
		cart:    c,
		session: s,
		placer:  placer,
		history: history,
		pricing: pricing,
		log:     log,
		step:    StepShipping,
		shipping: ShippingInfo{
			Country: "India",
		},
		payment: PaymentInfo{
			Method: MethodCard,
		},
	}
}

// Prefill seeds the shipping form from persisted profile data. Only
// blank form state is seeded; entered values are never overwritten.
func (w *Workflow) Prefill(email string, p Prefill) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if email == "" || email == session.GuestUser {
		return
	}

	w.shipping.Email = email
	if w.shipping.FirstName == "" {
		w.shipping.FirstName = p.FirstName
	}
	if w.shipping.LastName == "" {
		w.shipping.LastName = p.LastName
	}
	if w.shipping.Phone == "" {
		w.shipping.Phone = p.Phone
	}
	if w.shipping.Address == "" {
		w.shipping.Address = p.Address
	}
	if p.Country != "" {
		w.shipping.Country = p.Country
	}
}

func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Workflow) Shipping() ShippingInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shipping
}

func (w *Workflow) SetShipping(info ShippingInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shipping = info
}

func (w *Workflow) Payment() PaymentInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

func (w *Workflow) SetPayment(info PaymentInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payment = info
}

// Next advances one step if the current step validates; on a validation
// failure the step does not move and the error names the missing field.
func (w *Workflow) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepShipping:
		if err := validateShipping(w.shipping); err != nil {
			return err
		}
		w.step = StepPayment
		return nil

	case StepPayment:
		if err := validatePayment(w.payment); err != nil {
			return err
		}
		w.step = StepReview
		return nil

	default:
		return ErrAtFinalStep
	}
}

// Back moves one step towards Shipping, unconditionally.
func (w *Workflow) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepShipping {
		w.step--
	}
}

// GoTo jumps to an earlier step (the review page's Edit buttons).
// Forward jumps would bypass validation and are refused.
func (w *Workflow) GoTo(step Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if step < StepShipping || step > StepReview {
		return fmt.Errorf("no such step: %d", step)
	}
	if step > w.step {
		return ErrForwardJump
	}
	w.step = step
	return nil
}

// Quote prices the current cart.
func (w *Workflow) Quote() Quote {
	return Price(w.cart.Total(), w.pricing)
}

// PlaceOrder builds an order snapshot from the cart and submits it:
// through the backend when a token is present, into local history
// otherwise. The cart is cleared only after either path succeeds; a
// remote failure leaves everything in place for a retry.
func (w *Workflow) PlaceOrder(ctx context.Context) (order.Order, error) {
	items := w.cart.Items()
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	w.mu.Lock()
	shipping := w.shipping
	method := w.payment.Method
	w.mu.Unlock()

	quote := Price(w.cart.Total(), w.pricing)
	placed := order.Order{
		Items:           mapItems(items),
		ShippingAddress: mapAddress(shipping),
		PaymentMethod:   string(method),
		Total:           quote.Total,
		Status:          order.StatusPending,
		CreatedAt:       time.Now(),
	}

	token := w.session.Token(ctx)
	if token != "" {
		resp, err := w.placer.CreateOrder(ctx, token, mapOrderRequest(placed))
		if err != nil {
			w.log.Warn("remote order placement failed", zap.Error(err))
			return order.Order{}, fmt.Errorf("%w: %v", ErrPlacementFailed, err)
		}
		// Server-assigned identity is accepted as-is.
		placed.ID = resp.ID
		if resp.Status != "" {
			placed.Status = order.Status(resp.Status)
		}
	} else {
		placed.ID = fmt.Sprintf("ORD%d", time.Now().UnixMilli())
		stored, err := w.history.Append(ctx, placed)
		if err != nil {
			w.log.Warn("local order placement failed", zap.Error(err))
			return order.Order{}, fmt.Errorf("%w: %v", ErrPlacementFailed, err)
		}
		placed = stored
	}

	if err := w.cart.Clear(ctx); err != nil {
		// The order exists; a stale cart is recoverable on next load.
		w.log.Warn("cart clear after placement failed", zap.Error(err))
	}

	metrics.OrdersPlaced.Inc()
	w.log.Info("order placed",
		zap.String("order_id", placed.ID),
		zap.String("user", w.session.Current(ctx)),
		zap.Float64("total", placed.Total))
	return placed, nil
}
