package inline

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"time"

	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
	"datalayer/internal/datalayer/service"
)

const (
	// isoLayout matches the offset style of order and membership dates,
	// e.g. 2025-03-05T14:30:00+00:00.
	isoLayout = "2006-01-02T15:04:05-07:00"
	// paymentLayout is the scheduled payment date format.
	paymentLayout = "2006-01-02 15:04:05"
)

// Adapter serves the collaborator ports from a decoded Body.
type Adapter struct {
	body Body
}

func New(body Body) *Adapter {
	return &Adapter{body: body}
}

// Set returns the slots the body describes. Sections that were not posted
// stay nil.
func (a *Adapter) Set() providers.Set {
	var set providers.Set
	b := a.body
	if b.Page != nil || a.reported(providers.SourcePage) {
		set.Page = a
	}
	if b.Site != nil || a.reported(providers.SourceSite) {
		set.Site = a
	}
	if b.Theme != nil || a.reported(providers.SourceTheme) {
		set.Theme = a
	}
	if b.User != nil || a.reported(providers.SourceUser) {
		set.Identity = a
	}

	c := b.Commerce
	if c == nil {
		return set
	}
	commerce := &providers.Commerce{}
	if c.Store != nil || a.reported(providers.SourceStore) {
		commerce.Store = a
	}
	if c.Customer != nil || a.reported(providers.SourceCustomer) {
		commerce.Customer = a
	}
	if c.OrderStats != nil || a.reported(providers.SourceOrders) {
		commerce.OrderStats = a
	}
	if c.LastOrder != nil || a.reported(providers.SourceLastOrder) {
		commerce.LastOrder = a
	}
	if c.Subscriptions != nil || a.reported(providers.SourceSubscriptions) {
		commerce.Subscriptions = a
	}
	if c.Memberships != nil || a.reported(providers.SourceMemberships) {
		commerce.Memberships = a
	}
	if c.Points != nil || a.reported(providers.SourcePoints) {
		commerce.Points = a
	}
	if c.Wishlist != nil || a.reported(providers.SourceWishlist) {
		commerce.Wishlist = a
	}
	if c.Cart != nil || a.reported(providers.SourceCart) {
		commerce.Cart = a
	}
	set.Commerce = commerce
	return set
}

// Request returns the non-slot inputs of the body.
func (a *Adapter) Request() service.Request {
	var req service.Request
	if a.body.URL != "" {
		if u, err := url.Parse(a.body.URL); err == nil {
			req.Query = u.Query()
		}
	}
	if len(a.body.Query) > 0 {
		if req.Query == nil {
			req.Query = url.Values{}
		}
		for k, v := range a.body.Query {
			req.Query.Set(k, v)
		}
	}
	if c := a.body.Client; c != nil {
		req.Client = service.Client{IP: c.IP, UserAgent: c.UserAgent, AcceptLanguage: c.AcceptLanguage}
	}
	return req
}

func (a *Adapter) reported(source string) bool {
	_, ok := a.body.Errors[source]
	return ok
}

// failure returns the error reported for source, if any.
func (a *Adapter) failure(source string) error {
	if msg, ok := a.body.Errors[source]; ok {
		return errors.New(msg)
	}
	return nil
}

func (a *Adapter) PageContext(context.Context) (*models.PageContext, error) {
	if err := a.failure(providers.SourcePage); err != nil {
		return nil, err
	}
	return a.body.Page, nil
}

func (a *Adapter) Site(context.Context) (*models.Site, error) {
	if err := a.failure(providers.SourceSite); err != nil {
		return nil, err
	}
	s := a.body.Site
	if s == nil {
		return nil, nil
	}
	return &models.Site{BlogID: s.BlogID, Name: s.Name, Locale: s.Locale, Home: s.Home, SiteURL: s.SiteURL}, nil
}

func (a *Adapter) Theme(context.Context) (*models.Theme, error) {
	if err := a.failure(providers.SourceTheme); err != nil {
		return nil, err
	}
	t := a.body.Theme
	if t == nil {
		return nil, nil
	}
	return &models.Theme{Name: t.Name, Version: t.Version, Stylesheet: t.Stylesheet, Template: t.Template}, nil
}

func (a *Adapter) Identity(context.Context) (*providers.Identity, error) {
	if err := a.failure(providers.SourceUser); err != nil {
		return nil, err
	}
	u := a.body.User
	if u == nil {
		return nil, nil
	}
	id := &providers.Identity{
		LoggedIn:    u.LoggedIn,
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       u.Roles,
	}
	if u.Registered != nil {
		id.Registered = *u.Registered
	}
	return id, nil
}

func (a *Adapter) Store(context.Context) (*models.Commerce, error) {
	if err := a.failure(providers.SourceStore); err != nil {
		return nil, err
	}
	s := a.body.Commerce.Store
	if s == nil {
		return nil, nil
	}
	return &models.Commerce{
		IsShop:     s.IsShop,
		IsProduct:  s.IsProduct,
		IsCart:     s.IsCart,
		IsCheckout: s.IsCheckout,
		IsAccount:  s.IsAccount,
		IsThankyou: s.IsThankyou,
		Currency:   s.Currency,
	}, nil
}

func (a *Adapter) Customer(context.Context, int64) (*providers.Customer, error) {
	if err := a.failure(providers.SourceCustomer); err != nil {
		return nil, err
	}
	c := a.body.Commerce.Customer
	if c == nil {
		return nil, nil
	}
	billing := c.Billing.Block()
	if billing.Email == nil {
		empty := ""
		billing.Email = &empty
	}
	// shipping blocks carry no email key
	shipping := c.Shipping.Block()
	shipping.Email = nil
	return &providers.Customer{Billing: billing, Shipping: shipping}, nil
}

func (a *Adapter) OrderStats(context.Context, int64) (*models.OrderStats, error) {
	if err := a.failure(providers.SourceOrders); err != nil {
		return nil, err
	}
	o := a.body.Commerce.OrderStats
	if o == nil {
		return nil, nil
	}
	return &models.OrderStats{TotalSpent: o.TotalSpent, OrderCount: o.OrderCount}, nil
}

func (a *Adapter) LastOrder(context.Context, int64) (*models.LastOrder, error) {
	if err := a.failure(providers.SourceLastOrder); err != nil {
		return nil, err
	}
	o := a.body.Commerce.LastOrder
	if o == nil {
		return nil, nil
	}
	items := make([]models.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, models.OrderItem(it))
	}
	return &models.LastOrder{
		ID:       o.ID,
		Number:   o.Number,
		Date:     format(o.Date, isoLayout),
		Status:   o.Status,
		Currency: o.Currency,
		Total:    o.Total,
		Items:    items,
	}, nil
}

func (a *Adapter) Subscriptions(context.Context, int64) ([]providers.Subscription, error) {
	if err := a.failure(providers.SourceSubscriptions); err != nil {
		return nil, err
	}
	subs := a.body.Commerce.Subscriptions
	if subs == nil {
		return nil, nil
	}
	out := make([]providers.Subscription, 0, len(*subs))
	for _, s := range *subs {
		out = append(out, providers.Subscription{
			ID:          s.ID,
			Status:      s.Status,
			Currency:    s.Currency,
			Total:       s.Total,
			NextPayment: format(s.NextPayment, paymentLayout),
		})
	}
	return out, nil
}

func (a *Adapter) Memberships(context.Context, int64) ([]models.Membership, error) {
	if err := a.failure(providers.SourceMemberships); err != nil {
		return nil, err
	}
	ms := a.body.Commerce.Memberships
	if ms == nil {
		return nil, nil
	}
	out := make([]models.Membership, 0, len(*ms))
	for _, m := range *ms {
		out = append(out, models.Membership{
			PlanID: m.PlanID,
			Status: m.Status,
			Start:  format(m.Start, isoLayout),
			End:    format(m.End, isoLayout),
		})
	}
	return out, nil
}

func (a *Adapter) PointsBalance(context.Context, int64) (int, error) {
	if err := a.failure(providers.SourcePoints); err != nil {
		return 0, err
	}
	if p := a.body.Commerce.Points; p != nil {
		return *p, nil
	}
	return 0, nil
}

func (a *Adapter) WishlistCount(context.Context, int64) (int, error) {
	if err := a.failure(providers.SourceWishlist); err != nil {
		return 0, err
	}
	if w := a.body.Commerce.Wishlist; w != nil {
		return *w, nil
	}
	return 0, nil
}

func (a *Adapter) Cart(context.Context) (*providers.Cart, error) {
	if err := a.failure(providers.SourceCart); err != nil {
		return nil, err
	}
	c := a.body.Commerce.Cart
	if c == nil {
		return nil, nil
	}

	items := make([]providers.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, providers.CartItem{
			Key:          it.Key,
			ProductID:    it.ProductID,
			VariationID:  it.VariationID,
			SKU:          it.SKU,
			Name:         it.Name,
			Type:         it.Type,
			Qty:          it.Qty,
			Price:        it.Price,
			LineSubtotal: it.LineSubtotal,
			LineTotal:    it.LineTotal,
			LineTax:      it.LineTax,
			Categories:   it.Categories,
			Tags:         it.Tags,
			Variation:    maps.Clone(it.Variation),
		})
	}
	coupons := make([]providers.Coupon, 0, len(c.Coupons))
	for _, cp := range c.Coupons {
		coupons = append(coupons, providers.Coupon(cp))
	}
	fees := make([]models.Fee, 0, len(c.Fees))
	for _, f := range c.Fees {
		fees = append(fees, models.Fee(f))
	}

	return &providers.Cart{
		Currency:              c.Currency,
		Hash:                  c.Hash,
		ItemsCount:            c.ItemsCount,
		ItemsWeight:           c.ItemsWeight,
		NeedsShipping:         c.NeedsShipping,
		Items:                 items,
		Coupons:               coupons,
		Fees:                  fees,
		Totals:                maps.Clone(c.Totals),
		ChosenShippingMethods: c.ChosenShippingMethods,
	}, nil
}

func format(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
