// Package providers defines the collaborator ports the assembler reads from.
//
// Every collaborator is an optional slot: a nil slot means the capability is
// not installed on this host and its fragment is simply absent. Present slots
// are queried through Fetch, which turns errors and panics into a
// CollaboratorError so one failing integration never blocks the others.
package providers

import (
	"context"
	"time"

	"datalayer/internal/datalayer/models"
	"datalayer/pkg/identity/contact"
)

// Source names, used in customDL_error_<source> keys, logs and metrics.
const (
	SourcePage          = "page"
	SourceSite          = "site"
	SourceTheme         = "theme"
	SourceUser          = "user"
	SourceStore         = "wc"
	SourceCart          = "cart"
	SourceCustomer      = "customer"
	SourceOrders        = "orders"
	SourceLastOrder     = "last_order"
	SourceSubscriptions = "subscriptions"
	SourceMemberships   = "memberships"
	SourcePoints        = "points"
	SourceWishlist      = "wishlist"
)

type PageProvider interface {
	PageContext(ctx context.Context) (*models.PageContext, error)
}

type SiteProvider interface {
	Site(ctx context.Context) (*models.Site, error)
}

type ThemeProvider interface {
	Theme(ctx context.Context) (*models.Theme, error)
}

// IdentityProvider reports the visitor's login state and account.
type IdentityProvider interface {
	Identity(ctx context.Context) (*Identity, error)
}

// Identity is the account of the current visitor. Only LoggedIn is
// meaningful for anonymous visitors.
type Identity struct {
	LoggedIn    bool
	ID          int64
	Username    string
	Email       string
	DisplayName string
	Roles       []string
	Registered  time.Time
}

// StoreProvider reports the store page context.
type StoreProvider interface {
	Store(ctx context.Context) (*models.Commerce, error)
}

// CustomerProvider supplies raw billing and shipping contact blocks.
type CustomerProvider interface {
	Customer(ctx context.Context, userID int64) (*Customer, error)
}

type Customer struct {
	Billing  contact.Block
	Shipping contact.Block
}

type OrderStatsProvider interface {
	OrderStats(ctx context.Context, userID int64) (*models.OrderStats, error)
}

// LastOrderProvider returns the most recent order, or nil when the customer
// has none.
type LastOrderProvider interface {
	LastOrder(ctx context.Context, userID int64) (*models.LastOrder, error)
}

type SubscriptionProvider interface {
	Subscriptions(ctx context.Context, userID int64) ([]Subscription, error)
}

// Subscription statuses counted in the summary.
const (
	SubscriptionActive    = "active"
	SubscriptionOnHold    = "on-hold"
	SubscriptionCancelled = "cancelled"
)

type Subscription struct {
	ID          int64
	Status      string
	Currency    string
	Total       float64
	NextPayment *string
}

type MembershipProvider interface {
	Memberships(ctx context.Context, userID int64) ([]models.Membership, error)
}

type PointsProvider interface {
	PointsBalance(ctx context.Context, userID int64) (int, error)
}

type WishlistProvider interface {
	WishlistCount(ctx context.Context, userID int64) (int, error)
}

// CartProvider returns the session cart, or nil when no cart is loaded.
type CartProvider interface {
	Cart(ctx context.Context) (*Cart, error)
}

// Cart is the raw cart state. Totals and variation attribute keys are
// unprefixed; the assembler namespaces them.
type Cart struct {
	Currency              *string
	Hash                  *string
	ItemsCount            *int
	ItemsWeight           *float64
	NeedsShipping         *bool
	Items                 []CartItem
	Coupons               []Coupon
	Fees                  []models.Fee
	Totals                map[string]any
	ChosenShippingMethods []string
}

type CartItem struct {
	Key          string
	ProductID    int64
	VariationID  int64
	SKU          *string
	Name         *string
	Type         *string
	Qty          int
	Price        *float64
	LineSubtotal float64
	LineTotal    float64
	LineTax      float64
	Categories   []string
	Tags         []string
	Variation    map[string]any
}

type Coupon struct {
	Code   string
	Amount *float64
}

// Commerce groups the store capability slots. A nil *Commerce means no store
// is installed: the wc and cart fragments are null and users are not
// enriched.
type Commerce struct {
	Store         StoreProvider
	Customer      CustomerProvider
	OrderStats    OrderStatsProvider
	LastOrder     LastOrderProvider
	Subscriptions SubscriptionProvider
	Memberships   MembershipProvider
	Points        PointsProvider
	Wishlist      WishlistProvider
	Cart          CartProvider
}

// Set is every collaborator consulted for one snapshot.
type Set struct {
	Page     PageProvider
	Site     SiteProvider
	Theme    ThemeProvider
	Identity IdentityProvider
	Commerce *Commerce
}
