package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"datalayer/internal/datalayer/metrics"
	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
	"datalayer/pkg/identity/contact"
	"datalayer/pkg/requestcontext"
)

var fixedNow = time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)

type AssembleSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	service *Service
}

func TestAssembleSuite(t *testing.T) {
	suite.Run(t, new(AssembleSuite))
}

func (s *AssembleSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), fixedNow)
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.service = New(WithMetrics(s.metrics))
}

// decode renders v the way it goes on the wire.
func (s *AssembleSuite) decode(v any) map[string]any {
	raw, err := json.Marshal(v)
	s.Require().NoError(err)
	var out map[string]any
	s.Require().NoError(json.Unmarshal(raw, &out))
	return out
}

func (s *AssembleSuite) loggedIn() identityFunc {
	return func(context.Context) (*providers.Identity, error) {
		return &providers.Identity{
			LoggedIn:    true,
			ID:          42,
			Username:    "jdoe",
			Email:       " JDoe@Example.com ",
			DisplayName: "J Doe",
			Roles:       []string{"customer", " subscriber", "customer"},
			Registered:  time.Unix(1700000000, 0),
		}, nil
	}
}

func (s *AssembleSuite) TestMetaCarriesVersionAndRequestTime() {
	snap := s.service.Assemble(s.ctx, providers.Set{}, Request{})

	s.Require().NotNil(snap.Meta)
	s.Equal(models.DefaultSchemaVersion, snap.Meta.Version)
	s.Equal(fixedNow.Unix(), snap.Meta.GeneratedAt)
}

func (s *AssembleSuite) TestConfiguredSchemaVersion() {
	svc := New(WithConfig(Config{SchemaVersion: "4.0.0"}))
	snap := svc.Assemble(s.ctx, providers.Set{}, Request{})
	s.Equal("4.0.0", snap.Meta.Version)
}

func (s *AssembleSuite) TestNoCommerceLeavesCommerceAndCartNull() {
	snap, payload := s.service.Build(s.ctx, providers.Set{Identity: s.loggedIn()}, Request{})

	s.Nil(snap.Commerce)
	s.Nil(snap.Cart)

	wire := s.decode(payload)
	s.Contains(wire, "customDL_wc")
	s.Nil(wire["customDL_wc"])
	s.Contains(wire, "customDL_cart")
	s.Nil(wire["customDL_cart"])

	nested := wire["customDL"].(map[string]any)
	s.Contains(nested, "wc")
	s.Nil(nested["wc"])

	user := nested["user"].(map[string]any)
	s.NotContains(user, "customDL_billing")
	s.NotContains(user, "customDL_orders")
}

func (s *AssembleSuite) TestAbsentFragmentsAreNullInPayload() {
	payload := s.service.Project(s.service.Assemble(s.ctx, providers.Set{}, Request{}))
	wire := s.decode(payload)

	s.Equal(models.EventName, wire["event"])
	for _, key := range []string{"customDL_site", "customDL_theme", "customDL_wc", "customDL_cart"} {
		s.Contains(wire, key)
		s.Nil(wire[key], key)
	}
	s.Equal(map[string]any{}, wire["customDL_marketing"])
	s.NotNil(wire["customDL_meta"])
	s.NotNil(wire["customDL_device"])
	s.NotNil(wire["customDL_user"])
}

func (s *AssembleSuite) TestLegacyKeysOnlyWhenPresent() {
	s.Run("no page context", func() {
		wire := s.decode(s.service.Project(s.service.Assemble(s.ctx, providers.Set{}, Request{})))
		for _, key := range models.LegacyKeys {
			s.NotContains(wire, key)
		}
	})

	s.Run("page context supplied", func() {
		set := providers.Set{Page: pageFunc(func(context.Context) (*models.PageContext, error) {
			return &models.PageContext{Title: "Shop", Conditions: models.PageConditions{Search: true}, SearchTerm: "mug", FoundPosts: 4}, nil
		})}
		snap, payload := s.service.Build(s.ctx, set, Request{})

		wire := s.decode(payload)
		nested := s.decode(snap)
		for _, key := range models.LegacyKeys {
			s.Contains(wire, key)
			s.Contains(nested, key)
		}
		s.Equal("Shop", wire[models.KeyPageTitle])
		s.Equal("mug", wire[models.KeySiteSearchTerm])
		s.EqualValues(4, wire[models.KeySiteSearchResults])
	})

	s.Run("filter removed a legacy key", func() {
		svc := New(WithSnapshotFilter(func(snap models.Snapshot) models.Snapshot {
			delete(snap.Legacy, models.KeySiteSearchFrom)
			return snap
		}))
		set := providers.Set{Page: pageFunc(func(context.Context) (*models.PageContext, error) {
			return &models.PageContext{Title: "Home"}, nil
		})}
		_, payload := svc.Build(s.ctx, set, Request{})

		wire := s.decode(payload)
		s.NotContains(wire, models.KeySiteSearchFrom)
		s.Contains(wire, models.KeyPageTitle)
	})
}

func (s *AssembleSuite) TestCollaboratorFailuresBecomeErrorKeys() {
	set := providers.Set{
		Site: siteFunc(func(context.Context) (*models.Site, error) {
			return nil, errors.New("options table unavailable")
		}),
		Theme: themeFunc(func(context.Context) (*models.Theme, error) {
			panic("theme not loaded")
		}),
		Page: pageFunc(func(context.Context) (*models.PageContext, error) {
			return &models.PageContext{Title: "About"}, nil
		}),
		Commerce: &providers.Commerce{
			Cart: cartFunc(func(context.Context) (*providers.Cart, error) {
				return nil, errors.New("session expired")
			}),
		},
	}

	snap := s.service.Assemble(s.ctx, set, Request{})
	wire := s.decode(snap)

	s.Equal("options table unavailable", wire["customDL_error_site"])
	s.Equal("theme not loaded", wire["customDL_error_theme"])
	s.Equal("session expired", wire["customDL_error_cart"])
	s.Nil(wire["site"])
	s.Nil(wire["theme"])
	s.Nil(wire["cart"])
	s.Equal("About", wire[models.KeyPageTitle])

	s.Equal(1.0, promtest.ToFloat64(s.metrics.CollaboratorFailures.WithLabelValues("site", "failure")))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CollaboratorFailures.WithLabelValues("theme", "panic")))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.SnapshotsAssembled))
}

func (s *AssembleSuite) TestFailingIdentityReportsLoggedOut() {
	set := providers.Set{Identity: identityFunc(func(context.Context) (*providers.Identity, error) {
		return nil, errors.New("session store down")
	})}
	snap := s.service.Assemble(s.ctx, set, Request{Client: Client{IP: "203.0.113.7"}})

	s.Equal("session store down", snap.Errors[providers.SourceUser])
	s.Require().NotNil(snap.User)
	s.Equal(models.LoginStateLoggedOut, snap.User.LoginState)
	s.Equal("203.0.113.7", *snap.User.IP)
}

func (s *AssembleSuite) TestLoggedOutVisitor() {
	a := &addOns{}
	set := providers.Set{
		Identity: identityFunc(func(context.Context) (*providers.Identity, error) {
			return &providers.Identity{LoggedIn: false, Email: "ignored@example.com"}, nil
		}),
		Commerce: a.commerce(),
	}
	snap := s.service.Assemble(s.ctx, set, Request{})
	user := s.decode(snap)["user"].(map[string]any)

	s.Equal(models.LoginStateLoggedOut, user["customDL_loginState"])
	s.Equal([]any{}, user["customDL_roles"])
	s.Nil(user["customDL_id"])
	s.Nil(user["customDL_email"])
	s.Nil(user["customDL_emailHash"])
	s.Nil(user["customDL_registered"])
	s.Zero(a.calls.Load(), "logged-out visitors are never enriched")
}

func (s *AssembleSuite) TestLoggedInIdentity() {
	snap := s.service.Assemble(s.ctx, providers.Set{Identity: s.loggedIn()}, Request{})
	u := snap.User

	s.Require().NotNil(u)
	s.Equal(models.LoginStateLoggedIn, u.LoginState)
	s.Equal(int64(42), *u.ID)
	s.Equal(" JDoe@Example.com ", *u.Email)
	s.Equal(sha("jdoe@example.com"), *u.EmailHash)
	s.Equal([]string{"customer", "subscriber"}, u.Roles)
	s.Equal(int64(1700000000), *u.Registered)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.IdentityHashes.WithLabelValues("email", "hashed")))
}

func (s *AssembleSuite) TestEnrichment() {
	a := &addOns{
		customer: &providers.Customer{
			Billing: contact.Block{
				FirstName: "Ada",
				Email:     ptr(" Ada@Example.com "),
				Phone:     ptr("(415) 555-0100"),
				Country:   "US",
			},
			Shipping: contact.Block{FirstName: "Ada"},
		},
		ordersErr: errors.New("reports disabled"),
		lastOrder: &models.LastOrder{ID: 7, Number: "1007"},
		subscriptions: []providers.Subscription{
			{ID: 1, Status: providers.SubscriptionActive},
			{ID: 2, Status: providers.SubscriptionOnHold},
			{ID: 3, Status: providers.SubscriptionCancelled},
			{ID: 4, Status: providers.SubscriptionActive},
			{ID: 5, Status: "expired"},
		},
		memberships: nil,
		pointsPanic: true,
		wishlist:    3,
	}
	set := providers.Set{Identity: s.loggedIn(), Commerce: a.commerce()}

	snap := s.service.Assemble(s.ctx, set, Request{})
	u := snap.User
	s.Require().NotNil(u)

	s.Require().NotNil(u.Billing)
	s.Equal(sha("ada@example.com"), *u.Billing.EmailHash)
	s.Equal(sha("+14155550100"), *u.Billing.PhoneHash)
	s.Require().NotNil(u.Shipping)
	s.Nil(u.Shipping.EmailHash)

	s.Nil(u.Orders)
	s.Equal("reports disabled", u.ErrorOrders)

	s.Require().NotNil(u.LastOrder)
	s.Equal([]models.OrderItem{}, u.LastOrder.Items)

	s.Require().NotNil(u.Subscriptions)
	s.Equal(2, u.Subscriptions.Active)
	s.Equal(1, u.Subscriptions.OnHold)
	s.Equal(1, u.Subscriptions.Cancelled)
	s.Equal(5, u.Subscriptions.Total)
	s.Len(u.Subscriptions.Examples, maxSubscriptionExamples)

	s.Require().NotNil(u.Memberships)
	s.Empty(*u.Memberships)

	s.Nil(u.PointsRewards)
	s.NotEmpty(u.ErrorPoints)

	s.Equal(&models.Wishlist{Count: 3}, u.Wishlist)
	s.Empty(snap.Errors, "enrichment failures stay on the user fragment")

	user := s.decode(snap)["user"].(map[string]any)
	s.Equal([]any{}, user["customDL_memberships"])
	s.Equal("reports disabled", user["customDL_error_orders"])
	s.Contains(user, "customDL_error_points")
	s.NotContains(user, "customDL_error_customer")
}

func (s *AssembleSuite) TestEnrichmentIsDeterministic() {
	a := &addOns{
		customer:      &providers.Customer{Billing: contact.Block{FirstName: "Ada"}},
		orders:        &models.OrderStats{TotalSpent: 120.5, OrderCount: 3},
		subscriptions: []providers.Subscription{{ID: 1, Status: providers.SubscriptionActive}},
		points:        50,
		wishlist:      1,
	}
	set := providers.Set{Identity: s.loggedIn(), Commerce: a.commerce()}

	first, err := json.Marshal(s.service.Assemble(s.ctx, set, Request{}))
	s.Require().NoError(err)
	for range 10 {
		again, err := json.Marshal(s.service.Assemble(s.ctx, set, Request{}))
		s.Require().NoError(err)
		s.JSONEq(string(first), string(again))
	}
}

func (s *AssembleSuite) TestStoreAndCart() {
	set := providers.Set{Commerce: &providers.Commerce{
		Store: storeFunc(func(context.Context) (*models.Commerce, error) {
			return &models.Commerce{IsCart: true, Currency: ptr("EUR")}, nil
		}),
		Cart: cartFunc(func(context.Context) (*providers.Cart, error) {
			return &providers.Cart{
				Currency:   ptr("EUR"),
				ItemsCount: ptr(2),
				Items: []providers.CartItem{{
					Key:        "abc",
					ProductID:  10,
					Qty:        2,
					Categories: []string{"Mugs", ""},
					Variation:  map[string]any{"attribute_pa_color": []string{"red", "blue"}, "attribute_size": "L"},
				}},
				Totals: map[string]any{"total": "24.00"},
			}, nil
		}),
	}}

	snap := s.service.Assemble(s.ctx, set, Request{})
	s.Require().NotNil(snap.Commerce)
	s.True(snap.Commerce.IsCart)

	s.Require().NotNil(snap.Cart)
	s.Equal(map[string]any{"customDL_total": "24.00"}, snap.Cart.Totals)
	s.Require().Len(snap.Cart.Items, 1)
	item := snap.Cart.Items[0]
	s.Equal([]string{"Mugs"}, item.Categories)
	s.Equal([]string{}, item.Tags)
	s.Equal(map[string]string{
		"customDL_attribute_pa_color": "red,blue",
		"customDL_attribute_size":     "L",
	}, item.Attributes)

	cart := s.decode(snap)["cart"].(map[string]any)
	s.Equal([]any{}, cart["customDL_coupons"])
	s.Equal([]any{}, cart["customDL_fees"])
	s.Nil(cart["customDL_chosenShippingMethods"])
}

func (s *AssembleSuite) TestClientFallsBackToRequestContext() {
	ctx := requestcontext.WithClientMetadata(s.ctx, "198.51.100.4", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	ctx = requestcontext.WithAcceptLanguage(ctx, "fr-FR")

	snap := s.service.Assemble(ctx, providers.Set{}, Request{})

	s.Equal("198.51.100.4", *snap.User.IP)
	s.True(snap.Device.IsMobile)
	s.Equal("fr-FR", *snap.Device.Language)
}

func (s *AssembleSuite) TestMarketingFromQuery() {
	q := url.Values{"utm_source": {"news<b>letter</b>"}, "ref": {"x"}}
	snap := s.service.Assemble(s.ctx, providers.Set{}, Request{Query: q})
	s.Equal(models.Marketing{"customDL_utm_source": "newsletter"}, snap.Marketing)
}

func TestFilters(t *testing.T) {
	ctx := requestcontext.WithTime(context.Background(), fixedNow)

	t.Run("snapshot filters run in order on a clone", func(t *testing.T) {
		var order []string
		svc := New(
			WithSnapshotFilter(func(snap models.Snapshot) models.Snapshot {
				order = append(order, "first")
				snap.SetExtra("customDL_custom", "a")
				return snap
			}),
			WithSnapshotFilter(func(snap models.Snapshot) models.Snapshot {
				order = append(order, "second")
				snap.SetExtra("customDL_custom", snap.Extra["customDL_custom"].(string)+"b")
				return snap
			}),
		)

		raw := svc.Assemble(ctx, providers.Set{}, Request{})
		filtered := svc.Filter(raw)

		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, "ab", filtered.Extra["customDL_custom"])
		assert.Nil(t, raw.Extra)
	})

	t.Run("snapshot filter overrides reach the flat keys", func(t *testing.T) {
		pages := pageFunc(func(context.Context) (*models.PageContext, error) {
			return &models.PageContext{Title: "Home"}, nil
		})
		svc := New(WithSnapshotFilter(func(snap models.Snapshot) models.Snapshot {
			snap.SetExtra(models.KeyPageTitle, "Overridden")
			snap.SetExtra(models.KeyUser, map[string]any{"customDL_loginState": "x"})
			snap.SetExtra("customDL_abTest", "B")
			return snap
		}))

		_, payload := svc.Build(ctx, providers.Set{Page: pages}, Request{})
		wire := encode(t, payload)

		assert.Equal(t, "Overridden", wire[models.KeyPageTitle])
		assert.Equal(t, "Overridden", wire[models.KeySnapshot].(map[string]any)[models.KeyPageTitle])
		assert.Equal(t, map[string]any{"customDL_loginState": "x"}, wire[models.Key(models.KeyUser)])
		assert.NotContains(t, wire, "customDL_abTest")
	})

	t.Run("legacy key added by a filter is flattened", func(t *testing.T) {
		svc := New(WithSnapshotFilter(func(snap models.Snapshot) models.Snapshot {
			snap.SetExtra(models.KeySiteSearchTerm, "mug")
			return snap
		}))

		_, payload := svc.Build(ctx, providers.Set{}, Request{})
		wire := encode(t, payload)

		assert.Equal(t, "mug", wire[models.KeySiteSearchTerm])
		assert.NotContains(t, wire, models.KeyPageTitle)
	})

	t.Run("payload filter sees the snapshot", func(t *testing.T) {
		svc := New(WithPayloadFilter(func(p models.Payload, snap models.Snapshot) models.Payload {
			p.SetExtra("customDL_loginState", snap.User.LoginState)
			return p
		}))

		_, payload := svc.Build(ctx, providers.Set{}, Request{})
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		var wire map[string]any
		require.NoError(t, json.Unmarshal(raw, &wire))
		assert.Equal(t, models.LoginStateLoggedOut, wire["customDL_loginState"])
	})
}

func encode(t *testing.T, payload models.Payload) map[string]any {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	return wire
}

func TestEnrichContact(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	svc := New(WithMetrics(m))

	in := contact.Block{Email: ptr(" User@Example.com ")}
	out := svc.EnrichContact(context.Background(), in)

	require.NotNil(t, out.EmailHash)
	assert.Equal(t, sha("user@example.com"), *out.EmailHash)
	assert.Nil(t, in.EmailHash)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.IdentityHashes.WithLabelValues("email", "hashed")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.IdentityHashes.WithLabelValues("personal_name", "null")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	svc := New()
	assert.NotPanics(t, func() {
		svc.Build(context.Background(), providers.Set{Site: siteFunc(func(context.Context) (*models.Site, error) {
			return nil, errors.New("x")
		})}, Request{})
	})
}

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
