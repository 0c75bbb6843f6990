// Package inline backs the collaborator slots with a page view description
// posted by the host. A section left out of the body is an absent slot.
package inline

import (
	"time"

	"datalayer/internal/datalayer/models"
	"datalayer/pkg/identity/contact"
	"datalayer/pkg/identity/normalize"
)

// Body describes one page view.
type Body struct {
	// URL is the landing URL; its query feeds the campaign parameters.
	URL string `json:"url"`
	// Query is merged over the URL query when both are given.
	Query map[string]string `json:"query"`

	Client *Client `json:"client"`

	Page     *models.PageContext `json:"page"`
	Site     *Site               `json:"site"`
	Theme    *Theme              `json:"theme"`
	User     *User               `json:"user"`
	Commerce *Commerce           `json:"commerce"`

	// Errors reports collaborator failures the host ran into, keyed by
	// source. The matching slot fails with the message.
	Errors map[string]string `json:"errors"`
}

// Client overrides the browser headers of the request itself.
type Client struct {
	IP             string `json:"ip"`
	UserAgent      string `json:"user_agent"`
	AcceptLanguage string `json:"accept_language"`
}

type Site struct {
	BlogID  int    `json:"blog_id"`
	Name    string `json:"name"`
	Locale  string `json:"locale"`
	Home    string `json:"home"`
	SiteURL string `json:"site_url"`
}

type Theme struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Stylesheet string `json:"stylesheet"`
	Template   string `json:"template"`
}

type User struct {
	LoggedIn    bool       `json:"logged_in"`
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Roles       []string   `json:"roles"`
	Registered  *time.Time `json:"registered"`
}

// Commerce is the store section. A nil section means no store is installed.
type Commerce struct {
	Store         *Store          `json:"store"`
	Customer      *Customer       `json:"customer"`
	OrderStats    *OrderStats     `json:"order_stats"`
	LastOrder     *LastOrder      `json:"last_order"`
	Subscriptions *[]Subscription `json:"subscriptions"`
	Memberships   *[]Membership   `json:"memberships"`
	Points        *int            `json:"points"`
	Wishlist      *int            `json:"wishlist"`
	Cart          *Cart           `json:"cart"`
}

type Store struct {
	IsShop     bool    `json:"is_shop"`
	IsProduct  bool    `json:"is_product"`
	IsCart     bool    `json:"is_cart"`
	IsCheckout bool    `json:"is_checkout"`
	IsAccount  bool    `json:"is_account"`
	IsThankyou bool    `json:"is_thankyou"`
	Currency   *string `json:"currency"`
}

type Customer struct {
	Billing  Contact `json:"billing"`
	Shipping Contact `json:"shipping"`
}

// Contact is a raw contact record. Values may be of any JSON type, they are
// coerced to strings. A null or missing email or phone stays absent.
type Contact struct {
	FirstName any `json:"first_name"`
	LastName  any `json:"last_name"`
	Company   any `json:"company"`
	Email     any `json:"email"`
	Phone     any `json:"phone"`
	Address1  any `json:"address_1"`
	Address2  any `json:"address_2"`
	City      any `json:"city"`
	State     any `json:"state"`
	Postcode  any `json:"postcode"`
	Country   any `json:"country"`
}

// Block converts c to an unenriched contact block.
func (c Contact) Block() contact.Block {
	return contact.Block{
		FirstName: normalize.Coerce(c.FirstName),
		LastName:  normalize.Coerce(c.LastName),
		Company:   normalize.Coerce(c.Company),
		Email:     optional(c.Email),
		Phone:     optional(c.Phone),
		Address1:  normalize.Coerce(c.Address1),
		Address2:  normalize.Coerce(c.Address2),
		City:      normalize.Coerce(c.City),
		State:     normalize.Coerce(c.State),
		Postcode:  normalize.Coerce(c.Postcode),
		Country:   normalize.Coerce(c.Country),
	}
}

func optional(v any) *string {
	if v == nil {
		return nil
	}
	s := normalize.Coerce(v)
	return &s
}

type OrderStats struct {
	TotalSpent float64 `json:"total_spent"`
	OrderCount int     `json:"order_count"`
}

type LastOrder struct {
	ID       int64       `json:"id"`
	Number   string      `json:"number"`
	Date     *time.Time  `json:"date"`
	Status   string      `json:"status"`
	Currency string      `json:"currency"`
	Total    float64     `json:"total"`
	Items    []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	VariationID int64   `json:"variation_id"`
	Name        string  `json:"name"`
	Qty         int     `json:"qty"`
	Total       float64 `json:"total"`
}

type Subscription struct {
	ID          int64      `json:"id"`
	Status      string     `json:"status"`
	Currency    string     `json:"currency"`
	Total       float64    `json:"total"`
	NextPayment *time.Time `json:"next_payment"`
}

type Membership struct {
	PlanID int64      `json:"plan_id"`
	Status string     `json:"status"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type Cart struct {
	Currency              *string        `json:"currency"`
	Hash                  *string        `json:"hash"`
	ItemsCount            *int           `json:"items_count"`
	ItemsWeight           *float64       `json:"items_weight"`
	NeedsShipping         *bool          `json:"needs_shipping"`
	Items                 []CartItem     `json:"items"`
	Coupons               []Coupon       `json:"coupons"`
	Fees                  []Fee          `json:"fees"`
	Totals                map[string]any `json:"totals"`
	ChosenShippingMethods []string       `json:"chosen_shipping_methods"`
}

type CartItem struct {
	Key          string         `json:"key"`
	ProductID    int64          `json:"product_id"`
	VariationID  int64          `json:"variation_id"`
	SKU          *string        `json:"sku"`
	Name         *string        `json:"name"`
	Type         *string        `json:"type"`
	Qty          int            `json:"qty"`
	Price        *float64       `json:"price"`
	LineSubtotal float64        `json:"line_subtotal"`
	LineTotal    float64        `json:"line_total"`
	LineTax      float64        `json:"line_tax"`
	Categories   []string       `json:"categories"`
	Tags         []string       `json:"tags"`
	Variation    map[string]any `json:"variation"`
}

type Coupon struct {
	Code   string   `json:"code"`
	Amount *float64 `json:"amount"`
}

type Fee struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Tax   float64 `json:"tax"`
}
