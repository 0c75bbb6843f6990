package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
	"datalayer/pkg/identity/contact"
	dlstrings "datalayer/pkg/platform/strings"
)

// maxSubscriptionExamples bounds the examples listed in the summary.
const maxSubscriptionExamples = 3

// user builds the identity fragment. A failing identity provider is recorded
// and the visitor is reported as logged out.
func (s *Service) user(ctx context.Context, snap *models.Snapshot, set providers.Set, ip string) *models.User {
	var id *providers.Identity
	if set.Identity != nil {
		var cerr *providers.CollaboratorError
		id, cerr = providers.Fetch(ctx, providers.SourceUser, set.Identity.Identity)
		s.recordFailure(ctx, snap, cerr)
	}

	u := &models.User{
		Roles:      []string{},
		LoginState: models.LoginStateLoggedOut,
	}
	if ip != "" {
		u.IP = &ip
	}
	if id == nil || !id.LoggedIn {
		return u
	}

	u.LoginState = models.LoginStateLoggedIn
	u.ID = &id.ID
	u.Username = &id.Username
	u.Email = &id.Email
	u.EmailHash = emailHash(id.Email)
	s.observeEmailHash(u.EmailHash)
	u.DisplayName = &id.DisplayName
	u.Roles = dlstrings.DedupeAndTrim(id.Roles)
	if !id.Registered.IsZero() {
		registered := id.Registered.Unix()
		u.Registered = &registered
	}

	if set.Commerce != nil {
		s.enrich(ctx, u, set.Commerce, id.ID)
	}
	return u
}

// slot holds the outcome of one enrichment fetch.
type slot[T any] struct {
	ran   bool
	value T
	err   *providers.CollaboratorError
}

func (sl *slot[T]) fetch(ctx context.Context, g *errgroup.Group, source string, fn func(context.Context) (T, error)) {
	sl.ran = true
	g.Go(func() error {
		sl.value, sl.err = providers.Fetch(ctx, source, fn)
		return nil
	})
}

// enrich fetches every present commerce add-on concurrently and merges the
// results into u in a fixed order. Fetches never fail the group; each
// failure is recorded on its own error key.
func (s *Service) enrich(ctx context.Context, u *models.User, c *providers.Commerce, userID int64) {
	ctx, span := tracer.Start(ctx, "datalayer.enrich_user")
	defer span.End()

	var (
		customer    slot[*providers.Customer]
		orders      slot[*models.OrderStats]
		lastOrder   slot[*models.LastOrder]
		subs        slot[[]providers.Subscription]
		memberships slot[[]models.Membership]
		points      slot[int]
		wishlist    slot[int]
	)

	g, gctx := errgroup.WithContext(ctx)
	if c.Customer != nil {
		customer.fetch(gctx, g, providers.SourceCustomer, func(ctx context.Context) (*providers.Customer, error) {
			return c.Customer.Customer(ctx, userID)
		})
	}
	if c.OrderStats != nil {
		orders.fetch(gctx, g, providers.SourceOrders, func(ctx context.Context) (*models.OrderStats, error) {
			return c.OrderStats.OrderStats(ctx, userID)
		})
	}
	if c.LastOrder != nil {
		lastOrder.fetch(gctx, g, providers.SourceLastOrder, func(ctx context.Context) (*models.LastOrder, error) {
			return c.LastOrder.LastOrder(ctx, userID)
		})
	}
	if c.Subscriptions != nil {
		subs.fetch(gctx, g, providers.SourceSubscriptions, func(ctx context.Context) ([]providers.Subscription, error) {
			return c.Subscriptions.Subscriptions(ctx, userID)
		})
	}
	if c.Memberships != nil {
		memberships.fetch(gctx, g, providers.SourceMemberships, func(ctx context.Context) ([]models.Membership, error) {
			return c.Memberships.Memberships(ctx, userID)
		})
	}
	if c.Points != nil {
		points.fetch(gctx, g, providers.SourcePoints, func(ctx context.Context) (int, error) {
			return c.Points.PointsBalance(ctx, userID)
		})
	}
	if c.Wishlist != nil {
		wishlist.fetch(gctx, g, providers.SourceWishlist, func(ctx context.Context) (int, error) {
			return c.Wishlist.WishlistCount(ctx, userID)
		})
	}
	_ = g.Wait()

	if customer.ran {
		if customer.err != nil {
			u.ErrorCustomer = s.userFailure(ctx, customer.err)
		} else if cust := customer.value; cust != nil {
			billing := contact.Enrich(cust.Billing)
			shipping := contact.Enrich(cust.Shipping)
			s.observeHashes(billing)
			s.observeHashes(shipping)
			u.Billing, u.Shipping = &billing, &shipping
		}
	}

	if orders.ran {
		if orders.err != nil {
			u.ErrorOrders = s.userFailure(ctx, orders.err)
		} else {
			u.Orders = orders.value
		}
	}

	if lastOrder.ran {
		if lastOrder.err != nil {
			u.ErrorLastOrder = s.userFailure(ctx, lastOrder.err)
		} else if lo := lastOrder.value; lo != nil {
			out := *lo
			if out.Items == nil {
				out.Items = []models.OrderItem{}
			}
			u.LastOrder = &out
		}
	}

	if subs.ran {
		if subs.err != nil {
			u.ErrorSubscriptions = s.userFailure(ctx, subs.err)
		} else {
			u.Subscriptions = summarizeSubscriptions(subs.value)
		}
	}

	if memberships.ran {
		if memberships.err != nil {
			u.ErrorMemberships = s.userFailure(ctx, memberships.err)
		} else {
			plans := memberships.value
			if plans == nil {
				plans = []models.Membership{}
			}
			u.Memberships = &plans
		}
	}

	if points.ran {
		if points.err != nil {
			u.ErrorPoints = s.userFailure(ctx, points.err)
		} else {
			u.PointsRewards = &models.PointsRewards{Points: points.value}
		}
	}

	if wishlist.ran {
		if wishlist.err != nil {
			u.ErrorWishlist = s.userFailure(ctx, wishlist.err)
		} else {
			u.Wishlist = &models.Wishlist{Count: wishlist.value}
		}
	}
}

// userFailure logs an enrichment failure and returns the message stored on
// the user fragment.
func (s *Service) userFailure(ctx context.Context, cerr *providers.CollaboratorError) string {
	s.logFailure(ctx, cerr)
	return cerr.Message
}

func summarizeSubscriptions(subs []providers.Subscription) *models.SubscriptionSummary {
	summary := &models.SubscriptionSummary{Examples: []models.SubscriptionExample{}}
	for _, sub := range subs {
		summary.Total++
		switch sub.Status {
		case providers.SubscriptionActive:
			summary.Active++
		case providers.SubscriptionOnHold:
			summary.OnHold++
		case providers.SubscriptionCancelled:
			summary.Cancelled++
		}
		if len(summary.Examples) < maxSubscriptionExamples {
			summary.Examples = append(summary.Examples, models.SubscriptionExample{
				ID:          sub.ID,
				Status:      sub.Status,
				Currency:    sub.Currency,
				Total:       sub.Total,
				NextPayment: sub.NextPayment,
			})
		}
	}
	return summary
}
