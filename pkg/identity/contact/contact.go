// Package contact models billing and shipping style contact records and adds
// one identity hash per hashable attribute.
package contact

import (
	"datalayer/pkg/identity/hasher"
	"datalayer/pkg/identity/normalize"
)

// Block is a contact record as supplied by a commerce provider, together with
// the hashes added by Enrich. Company and Address2 are never hashed.
//
// Email is a pointer because shipping blocks carry no email at all and the
// key is omitted for them; Phone is a pointer because some providers cannot
// supply a shipping phone, which is emitted as null.
type Block struct {
	FirstName string  `json:"customDL_firstName"`
	LastName  string  `json:"customDL_lastName"`
	Company   string  `json:"customDL_company"`
	Email     *string `json:"customDL_email,omitempty"`
	Phone     *string `json:"customDL_phone"`
	Address1  string  `json:"customDL_address1"`
	Address2  string  `json:"customDL_address2"`
	City      string  `json:"customDL_city"`
	State     string  `json:"customDL_state"`
	Postcode  string  `json:"customDL_postcode"`
	Country   string  `json:"customDL_country"`

	FirstNameHash *string `json:"customDL_firstNameHash"`
	LastNameHash  *string `json:"customDL_lastNameHash"`
	EmailHash     *string `json:"customDL_emailHash"`
	PhoneHash     *string `json:"customDL_phoneHash"`
	Address1Hash  *string `json:"customDL_address1Hash"`
	CityHash      *string `json:"customDL_cityHash"`
	StateHash     *string `json:"customDL_stateHash"`
	PostcodeHash  *string `json:"customDL_postcodeHash"`
	CountryHash   *string `json:"customDL_countryHash"`
}

// Hash describes one hashed attribute of an enriched block.
type Hash struct {
	Attribute string
	Kind      normalize.Kind
	Value     *string
}

// Enrich returns a copy of b with every hash field computed from the raw
// attributes. Hash fields already present on b are recomputed, so enriching
// an enriched block is a no-op.
func Enrich(b Block) Block {
	country := b.Country

	b.FirstNameHash = hasher.Field(b.FirstName, normalize.KindPersonalName, "")
	b.LastNameHash = hasher.Field(b.LastName, normalize.KindPersonalName, "")
	b.EmailHash = hasher.Field(b.Email, normalize.KindEmail, "")
	b.PhoneHash = hasher.Field(b.Phone, normalize.KindPhone, country)
	b.Address1Hash = hasher.Field(b.Address1, normalize.KindAddressLine, "")
	b.CityHash = hasher.Field(b.City, normalize.KindCity, "")
	b.StateHash = hasher.Field(b.State, normalize.KindRegion, "")
	b.PostcodeHash = hasher.Field(b.Postcode, normalize.KindPostcode, "")
	b.CountryHash = hasher.Field(country, normalize.KindCountryCode, "")

	return b
}

// Hashes lists the nine hash attributes of b in wire order.
func (b Block) Hashes() []Hash {
	return []Hash{
		{"firstName", normalize.KindPersonalName, b.FirstNameHash},
		{"lastName", normalize.KindPersonalName, b.LastNameHash},
		{"email", normalize.KindEmail, b.EmailHash},
		{"phone", normalize.KindPhone, b.PhoneHash},
		{"address1", normalize.KindAddressLine, b.Address1Hash},
		{"city", normalize.KindCity, b.CityHash},
		{"state", normalize.KindRegion, b.StateHash},
		{"postcode", normalize.KindPostcode, b.PostcodeHash},
		{"country", normalize.KindCountryCode, b.CountryHash},
	}
}
