package models

import "datalayer/pkg/identity/contact"

// Meta identifies the schema and the moment the snapshot was generated.
type Meta struct {
	Version     string `json:"customDL_version"`
	GeneratedAt int64  `json:"customDL_generatedAt"`
}

type Site struct {
	BlogID  int    `json:"customDL_blogId"`
	Name    string `json:"customDL_name"`
	Locale  string `json:"customDL_locale"`
	Home    string `json:"customDL_home"`
	SiteURL string `json:"customDL_siteurl"`
}

type Theme struct {
	Name       string `json:"customDL_name"`
	Version    string `json:"customDL_version"`
	Stylesheet string `json:"customDL_stylesheet"`
	Template   string `json:"customDL_template"`
}

// Device is derived from the browser request headers.
type Device struct {
	IsMobile  bool    `json:"customDL_isMobile"`
	UserAgent *string `json:"customDL_userAgent"`
	Language  *string `json:"customDL_language"`
}

// Marketing maps prefixed campaign parameter names to their values. It is
// always emitted as an object, never null.
type Marketing map[string]string

// User is the visitor identity plus any commerce enrichment. Enrichment keys
// are only present when the matching collaborator is available; a failing
// collaborator leaves its error message under the matching Error field.
type User struct {
	ID          *int64   `json:"customDL_id"`
	Username    *string  `json:"customDL_username"`
	Email       *string  `json:"customDL_email"`
	EmailHash   *string  `json:"customDL_emailHash"`
	DisplayName *string  `json:"customDL_displayName"`
	Roles       []string `json:"customDL_roles"`
	Registered  *int64   `json:"customDL_registered"`
	LoginState  string   `json:"customDL_loginState"`
	// IP must never be forwarded to ad platforms or hashed.
	IP *string `json:"customDL_ip"`

	Billing       *contact.Block       `json:"customDL_billing,omitempty"`
	Shipping      *contact.Block       `json:"customDL_shipping,omitempty"`
	Orders        *OrderStats          `json:"customDL_orders,omitempty"`
	LastOrder     *LastOrder           `json:"customDL_lastOrder,omitempty"`
	Subscriptions *SubscriptionSummary `json:"customDL_subscriptions,omitempty"`
	Memberships   *[]Membership        `json:"customDL_memberships,omitempty"`
	PointsRewards *PointsRewards       `json:"customDL_pointsRewards,omitempty"`
	Wishlist      *Wishlist            `json:"customDL_wishlist,omitempty"`

	ErrorCustomer      string `json:"customDL_error_customer,omitempty"`
	ErrorOrders        string `json:"customDL_error_orders,omitempty"`
	ErrorLastOrder     string `json:"customDL_error_last_order,omitempty"`
	ErrorSubscriptions string `json:"customDL_error_subscriptions,omitempty"`
	ErrorMemberships   string `json:"customDL_error_memberships,omitempty"`
	ErrorPoints        string `json:"customDL_error_points,omitempty"`
	ErrorWishlist      string `json:"customDL_error_wishlist,omitempty"`
}

const (
	LoginStateLoggedIn  = "logged-in"
	LoginStateLoggedOut = "logged-out"
)

type OrderStats struct {
	TotalSpent float64 `json:"customDL_totalSpent"`
	OrderCount int     `json:"customDL_orderCount"`
}

type LastOrder struct {
	ID       int64       `json:"customDL_id"`
	Number   string      `json:"customDL_number"`
	Date     *string     `json:"customDL_date"`
	Status   string      `json:"customDL_status"`
	Currency string      `json:"customDL_currency"`
	Total    float64     `json:"customDL_total"`
	Items    []OrderItem `json:"customDL_items"`
}

type OrderItem struct {
	ProductID   int64   `json:"customDL_productId"`
	VariationID int64   `json:"customDL_variationId"`
	Name        string  `json:"customDL_name"`
	Qty         int     `json:"customDL_qty"`
	Total       float64 `json:"customDL_total"`
}

type SubscriptionSummary struct {
	Active    int                   `json:"customDL_active"`
	OnHold    int                   `json:"customDL_onHold"`
	Cancelled int                   `json:"customDL_cancelled"`
	Total     int                   `json:"customDL_total"`
	Examples  []SubscriptionExample `json:"customDL_examples"`
}

type SubscriptionExample struct {
	ID          int64   `json:"customDL_id"`
	Status      string  `json:"customDL_status"`
	Currency    string  `json:"customDL_currency"`
	Total       float64 `json:"customDL_total"`
	NextPayment *string `json:"customDL_nextPayment"`
}

type Membership struct {
	PlanID int64   `json:"customDL_planId"`
	Status string  `json:"customDL_status"`
	Start  *string `json:"customDL_start"`
	End    *string `json:"customDL_end"`
}

type PointsRewards struct {
	Points int `json:"customDL_points"`
}

type Wishlist struct {
	Count int `json:"customDL_count"`
}

// Commerce is the store page context, emitted under the wc key.
type Commerce struct {
	IsShop     bool    `json:"customDL_isShop"`
	IsProduct  bool    `json:"customDL_isProduct"`
	IsCart     bool    `json:"customDL_isCart"`
	IsCheckout bool    `json:"customDL_isCheckout"`
	IsAccount  bool    `json:"customDL_isAccount"`
	IsThankyou bool    `json:"customDL_isThankyou"`
	Currency   *string `json:"customDL_currency"`
}

type Cart struct {
	Currency              *string        `json:"customDL_currency"`
	Hash                  *string        `json:"customDL_hash"`
	ItemsCount            *int           `json:"customDL_itemsCount"`
	ItemsWeight           *float64       `json:"customDL_itemsWeight"`
	NeedsShipping         *bool          `json:"customDL_needsShipping"`
	Items                 []CartItem     `json:"customDL_items"`
	Coupons               []Coupon       `json:"customDL_coupons"`
	Fees                  []Fee          `json:"customDL_fees"`
	Totals                map[string]any `json:"customDL_totals"`
	ChosenShippingMethods []string       `json:"customDL_chosenShippingMethods"`
}

type CartItem struct {
	Key          string            `json:"customDL_key"`
	ProductID    int64             `json:"customDL_productId"`
	VariationID  int64             `json:"customDL_variationId"`
	SKU          *string           `json:"customDL_sku"`
	Name         *string           `json:"customDL_name"`
	Type         *string           `json:"customDL_type"`
	Qty          int               `json:"customDL_qty"`
	Price        *float64          `json:"customDL_price"`
	LineSubtotal float64           `json:"customDL_lineSubtotal"`
	LineTotal    float64           `json:"customDL_lineTotal"`
	LineTax      float64           `json:"customDL_lineTax"`
	Categories   []string          `json:"customDL_categories"`
	Tags         []string          `json:"customDL_tags"`
	Attributes   map[string]string `json:"customDL_attributes"`
}

type Coupon struct {
	Code   string   `json:"customDL_code"`
	Amount *float64 `json:"customDL_amount"`
}

type Fee struct {
	Name  string  `json:"customDL_name"`
	Total float64 `json:"customDL_total"`
	Tax   float64 `json:"customDL_tax"`
}
