package service

import (
	"context"
	"sync/atomic"

	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
)

type pageFunc func(context.Context) (*models.PageContext, error)

func (f pageFunc) PageContext(ctx context.Context) (*models.PageContext, error) { return f(ctx) }

type siteFunc func(context.Context) (*models.Site, error)

func (f siteFunc) Site(ctx context.Context) (*models.Site, error) { return f(ctx) }

type themeFunc func(context.Context) (*models.Theme, error)

func (f themeFunc) Theme(ctx context.Context) (*models.Theme, error) { return f(ctx) }

type identityFunc func(context.Context) (*providers.Identity, error)

func (f identityFunc) Identity(ctx context.Context) (*providers.Identity, error) { return f(ctx) }

type storeFunc func(context.Context) (*models.Commerce, error)

func (f storeFunc) Store(ctx context.Context) (*models.Commerce, error) { return f(ctx) }

type cartFunc func(context.Context) (*providers.Cart, error)

func (f cartFunc) Cart(ctx context.Context) (*providers.Cart, error) { return f(ctx) }

// addOns implements every per-user commerce port from plain fields and
// counts the calls it receives.
type addOns struct {
	calls atomic.Int32

	customer      *providers.Customer
	customerErr   error
	orders        *models.OrderStats
	ordersErr     error
	lastOrder     *models.LastOrder
	subscriptions []providers.Subscription
	memberships   []models.Membership
	points        int
	pointsPanic   bool
	wishlist      int
}

func (a *addOns) Customer(context.Context, int64) (*providers.Customer, error) {
	a.calls.Add(1)
	return a.customer, a.customerErr
}

func (a *addOns) OrderStats(context.Context, int64) (*models.OrderStats, error) {
	a.calls.Add(1)
	return a.orders, a.ordersErr
}

func (a *addOns) LastOrder(context.Context, int64) (*models.LastOrder, error) {
	a.calls.Add(1)
	return a.lastOrder, nil
}

func (a *addOns) Subscriptions(context.Context, int64) ([]providers.Subscription, error) {
	a.calls.Add(1)
	return a.subscriptions, nil
}

func (a *addOns) Memberships(context.Context, int64) ([]models.Membership, error) {
	a.calls.Add(1)
	return a.memberships, nil
}

func (a *addOns) PointsBalance(context.Context, int64) (int, error) {
	a.calls.Add(1)
	if a.pointsPanic {
		var m map[string]int
		m["points"] = 1
	}
	return a.points, nil
}

func (a *addOns) WishlistCount(context.Context, int64) (int, error) {
	a.calls.Add(1)
	return a.wishlist, nil
}

func (a *addOns) commerce() *providers.Commerce {
	return &providers.Commerce{
		Customer:      a,
		OrderStats:    a,
		LastOrder:     a,
		Subscriptions: a,
		Memberships:   a,
		Points:        a,
		Wishlist:      a,
	}
}

func ptr[T any](v T) *T { return &v }
