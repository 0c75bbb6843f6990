package service

import (
	"strings"

	"datalayer/internal/datalayer/models"
	"datalayer/internal/datalayer/providers"
	"datalayer/pkg/identity/normalize"
	dlstrings "datalayer/pkg/platform/strings"
)

// cartSnapshot maps the raw cart to its wire fragment. Totals and variation
// attribute keys are namespaced; list fields are never null.
func cartSnapshot(c *providers.Cart) *models.Cart {
	if c == nil {
		return nil
	}

	items := make([]models.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, models.CartItem{
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
			Categories:   dlstrings.Compact(it.Categories),
			Tags:         dlstrings.Compact(it.Tags),
			Attributes:   variationAttributes(it.Variation),
		})
	}

	coupons := make([]models.Coupon, 0, len(c.Coupons))
	for _, cp := range c.Coupons {
		coupons = append(coupons, models.Coupon{Code: cp.Code, Amount: cp.Amount})
	}

	fees := c.Fees
	if fees == nil {
		fees = []models.Fee{}
	}

	totals := models.PrefixKeys(c.Totals)
	if totals == nil {
		totals = map[string]any{}
	}

	return &models.Cart{
		Currency:              c.Currency,
		Hash:                  c.Hash,
		ItemsCount:            c.ItemsCount,
		ItemsWeight:           c.ItemsWeight,
		NeedsShipping:         c.NeedsShipping,
		Items:                 items,
		Coupons:               coupons,
		Fees:                  fees,
		Totals:                totals,
		ChosenShippingMethods: c.ChosenShippingMethods,
	}
}

// variationAttributes namespaces the attribute keys and flattens list values
// into a comma separated string.
func variationAttributes(variation map[string]any) map[string]string {
	out := make(map[string]string, len(variation))
	for k, v := range variation {
		out[models.Key(k)] = attributeValue(v)
	}
	return out
}

func attributeValue(v any) string {
	switch vv := v.(type) {
	case []string:
		return strings.Join(vv, ",")
	case []any:
		parts := make([]string, len(vv))
		for i, p := range vv {
			parts[i] = normalize.Coerce(p)
		}
		return strings.Join(parts, ",")
	default:
		return normalize.Coerce(v)
	}
}
