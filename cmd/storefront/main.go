package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"stride-storefront/internal/api"
	"stride-storefront/internal/cart"
	"stride-storefront/internal/catalog"
	"stride-storefront/internal/checkout"
	"stride-storefront/internal/config"
	"stride-storefront/internal/kvstore"
	"stride-storefront/internal/logger"
	"stride-storefront/internal/order"
	"stride-storefront/internal/session"
	"stride-storefront/internal/user"
)

// The product page caps a single add at 10; the cart store itself does
// not, so the cap lives here at the input boundary.
const maxAddQuantity = 10

type app struct {
	cfg     *config.Config
	store   kvstore.Store
	client  *api.Client
	session *session.Manager
	cart    *cart.Store
	catalog *catalog.Service
	users   *user.Store
	history order.History
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer a.store.Close()

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) (*app, error) {
	var store kvstore.Store
	var err error
	if cfg.RedisAddr != "" {
		store, err = kvstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, logger.Named("kvstore"))
	} else {
		store, err = kvstore.OpenFile(cfg.StatePath, logger.Named("kvstore"))
	}
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, logger.Named("api"))
	sess := session.NewManager(store, client, cfg.SessionPollInterval, logger.Named("session"))
	cartStore := cart.NewStore(context.Background(), store, sess.Current(context.Background()), logger.Named("cart"))

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		session: sess,
		cart:    cartStore,
		catalog: catalog.NewService(client, logger.Named("catalog")),
		users:   user.NewStore(store, logger.Named("user")),
		history: order.NewHistory(store, logger.Named("orders")),
	}, nil
}

func (a *app) run(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "products":
		return a.cmdProducts(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "signup":
		return a.cmdSignup(ctx, args)
	case "logout":
		return a.session.Logout(ctx)
	case "whoami":
		fmt.Println(a.session.Current(ctx))
		return nil
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx)
	case "wishlist":
		return a.cmdWishlist(ctx, args)
	case "watch":
		return a.cmdWatch(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", verb)
	}
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, p := range a.catalog.List(ctx, *category) {
		fmt.Printf("%-8s %-28s %-12s %s\n", p.ID, p.Name, p.Category, catalog.FormatPrice(p.Price))
	}
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return err
	}
	a.cart.SwitchUser(ctx, a.session.Current(ctx))
	fmt.Println("logged in as", *email)
	return nil
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	country := fs.String("country", "India", "country")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("signup requires -email and -password")
	}

	err := a.session.Signup(ctx, api.SignupRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
		Country:   *country,
	})
	if err != nil {
		return err
	}

	// Keep the profile around for checkout prefill.
	if err := a.users.SaveProfile(ctx, user.Profile{
		FirstName: *first,
		LastName:  *last,
		Country:   *country,
	}); err != nil {
		return err
	}
	fmt.Println("account created, log in to continue")
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return nil
		}
		for _, it := range items {
			fmt.Printf("%-36s %-28s size %-4s x%-3d %s\n",
				it.ID, it.Product.Name, it.Size, it.Quantity,
				catalog.FormatPrice(it.Product.Price.Amount()*float64(it.Quantity)))
		}
		fmt.Printf("total: %s (%d items)\n", catalog.FormatPrice(a.cart.Total()), a.cart.Count())
		return nil

	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		size := fs.String("size", "", "shoe size")
		qty := fs.Int("qty", 1, "quantity")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *qty < 1 || *qty > maxAddQuantity {
			return fmt.Errorf("quantity must be between 1 and %d", maxAddQuantity)
		}

		p, ok := a.catalog.Get(ctx, *id)
		if !ok {
			return fmt.Errorf("no such product: %s", *id)
		}
		snap := cart.ProductSnapshot{
			Name:     p.Name,
			Category: p.Category,
			ImageURL: p.ImageURL,
			Price:    cart.Price(p.Price),
		}
		if err := a.cart.Add(ctx, p.ID, snap, *size, *qty); err != nil {
			return err
		}
		fmt.Printf("added %s (size %s) x%d\n", p.Name, *size, *qty)
		return nil

	case "rm":
		fs := flag.NewFlagSet("cart rm", flag.ExitOnError)
		id := fs.String("id", "", "line item id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return a.cart.Remove(ctx, *id)

	case "qty":
		fs := flag.NewFlagSet("cart qty", flag.ExitOnError)
		id := fs.String("id", "", "line item id")
		qty := fs.Int("qty", 1, "new quantity")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return a.cart.SetQuantity(ctx, *id, *qty)

	case "clear":
		return a.cart.Clear(ctx)

	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	pincode := fs.String("pincode", "", "PIN code")
	country := fs.String("country", "", "country")
	method := fs.String("method", "cod", "payment method: card, upi or cod")
	cardNumber := fs.String("card-number", "", "card number")
	cardName := fs.String("card-name", "", "name on card")
	expiry := fs.String("expiry", "", "card expiry MM/YY")
	cvv := fs.String("cvv", "", "card CVV")
	upiID := fs.String("upi", "", "UPI id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pricing := checkout.PricingConfig{
		TaxRate:               a.cfg.TaxRate,
		FreeShippingThreshold: a.cfg.FreeShippingThreshold,
		ShippingFee:           a.cfg.ShippingFee,
	}
	wf := checkout.New(a.cart, a.session, a.client, a.history, pricing, logger.Named("checkout"))

	profile := a.users.Profile(ctx)
	wf.Prefill(a.session.Current(ctx), checkout.Prefill{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
		Address:   profile.Address,
		Country:   profile.Country,
	})

	shipping := wf.Shipping()
	applyIfSet(&shipping.FirstName, *first)
	applyIfSet(&shipping.LastName, *last)
	applyIfSet(&shipping.Email, *email)
	applyIfSet(&shipping.Phone, *phone)
	applyIfSet(&shipping.Address, *address)
	applyIfSet(&shipping.City, *city)
	applyIfSet(&shipping.State, *state)
	applyIfSet(&shipping.Pincode, *pincode)
	applyIfSet(&shipping.Country, *country)
	wf.SetShipping(shipping)

	if err := wf.Next(); err != nil {
		return err
	}

	wf.SetPayment(checkout.PaymentInfo{
		Method:     checkout.PaymentMethod(*method),
		CardNumber: *cardNumber,
		CardName:   *cardName,
		ExpiryDate: *expiry,
		CVV:        *cvv,
		UPIID:      *upiID,
	})
	if err := wf.Next(); err != nil {
		return err
	}

	q := wf.Quote()
	fmt.Printf("subtotal %s, tax %s, shipping %s, total %s\n",
		catalog.FormatPrice(q.Subtotal), catalog.FormatPrice(q.Tax),
		catalog.FormatPrice(q.Shipping), catalog.FormatPrice(q.Total))

	placed, err := wf.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed, status %s\n", placed.ID, placed.Status)
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	if token := a.session.Token(ctx); token != "" {
		remote, err := a.client.Orders(ctx, token)
		if err == nil {
			for _, o := range remote {
				fmt.Printf("%-26s %-12s %s\n", o.ID, o.Status, catalog.FormatPrice(o.Total))
			}
			return nil
		}
		logger.L().Warn("remote order list failed, showing local history", zap.Error(err))
	}

	local, err := a.history.List(ctx)
	if err != nil {
		return err
	}
	if len(local) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range local {
		fmt.Printf("%-26s %-12s %s\n", o.ID, o.Status, catalog.FormatPrice(o.Total))
	}
	return nil
}

func (a *app) cmdWishlist(ctx context.Context, args []string) error {
	if len(args) == 2 && args[0] == "toggle" {
		added, err := a.users.ToggleWishlist(ctx, args[1])
		if err != nil {
			return err
		}
		if added {
			fmt.Println("added", args[1])
		} else {
			fmt.Println("removed", args[1])
		}
		return nil
	}

	for _, id := range a.users.Wishlist(ctx) {
		if p, ok := a.catalog.Get(ctx, id); ok {
			fmt.Printf("%-8s %s\n", p.ID, p.Name)
		} else {
			fmt.Println(id)
		}
	}
	return nil
}

// cmdWatch keeps the process alive following identity changes from
// other processes sharing the store, reloading the cart as they land.
func (a *app) cmdWatch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cancel := a.cart.Watch(a.session)
	defer cancel()

	unsub := a.session.OnChange(func(u string) {
		fmt.Printf("active user is now %s (%d items in cart)\n", u, a.cart.Count())
	})
	defer unsub()

	fmt.Printf("watching as %s, ctrl-c to stop\n", a.session.Current(ctx))
	a.session.Run(ctx)
	return nil
}

func applyIfSet(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command> [flags]

commands:
  products [-category C]       list the catalog
  login -email E -password P   authenticate against the backend
  signup -email E -password P  create an account
  logout                       drop the current session
  whoami                       print the active user
  cart [list|add|rm|qty|clear] manage the cart
  checkout [shipping/payment]  run the checkout workflow
  orders                       list order history
  wishlist [toggle ID]         manage the wishlist
  watch                        follow identity changes from other processes`)
}
