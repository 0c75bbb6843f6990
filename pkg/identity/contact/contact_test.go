package contact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func ptr(s string) *string { return &s }

type EnrichSuite struct {
	suite.Suite
	billing Block
}

func TestEnrichSuite(t *testing.T) {
	suite.Run(t, new(EnrichSuite))
}

func (s *EnrichSuite) SetupTest() {
	s.billing = Block{
		FirstName: " Ada ",
		LastName:  "LOVELACE",
		Company:   "Analytical Engines Ltd.",
		Email:     ptr(" User@Example.com "),
		Phone:     ptr("(415) 555-0100"),
		Address1:  "123 Main St., Apt #4",
		Address2:  "Floor 2",
		City:      "San  Francisco",
		State:     "CA",
		Postcode:  "94103-1234",
		Country:   "us",
	}
}

func (s *EnrichSuite) TestAttachesHashOfNormalizedValues() {
	got := Enrich(s.billing)

	s.Require().NotNil(got.EmailHash)
	s.Equal(sha("user@example.com"), *got.EmailHash)
	s.Equal(sha("ada"), *got.FirstNameHash)
	s.Equal(sha("lovelace"), *got.LastNameHash)
	s.Equal(sha("+14155550100"), *got.PhoneHash, "phone uses the block country as hint")
	s.Equal(sha("123 main st apt 4"), *got.Address1Hash)
	s.Equal(sha("san francisco"), *got.CityHash)
	s.Equal(sha("ca"), *got.StateHash)
	s.Equal(sha("941031234"), *got.PostcodeHash)
	s.Equal(sha("US"), *got.CountryHash)
}

func (s *EnrichSuite) TestPassesThroughUnhashedAttributes() {
	got := Enrich(s.billing)

	s.Equal("Analytical Engines Ltd.", got.Company)
	s.Equal("Floor 2", got.Address2)
	s.Equal(" Ada ", got.FirstName, "raw values are kept as supplied")
}

func (s *EnrichSuite) TestDoesNotMutateInput() {
	original := s.billing
	_ = Enrich(s.billing)

	s.Nil(s.billing.EmailHash)
	s.Equal(original, s.billing)
}

func (s *EnrichSuite) TestIsSafeToReapply() {
	once := Enrich(s.billing)
	twice := Enrich(once)
	s.Equal(once, twice)
}

func (s *EnrichSuite) TestAbsentFieldsDegradeToNullHashes() {
	got := Enrich(Block{})
	for _, h := range got.Hashes() {
		s.Nil(h.Value, h.Attribute)
	}
}

func TestShippingBlockWithoutEmail(t *testing.T) {
	shipping := Enrich(Block{
		FirstName: "Ada",
		Address1:  "1 Dock Rd",
		Country:   "GB",
		Postcode:  "ec1a 1bb",
	})

	assert.Nil(t, shipping.EmailHash)
	assert.Nil(t, shipping.PhoneHash)
	require.NotNil(t, shipping.PostcodeHash)
	assert.Equal(t, sha("EC1A1BB"), *shipping.PostcodeHash)

	raw, err := json.Marshal(shipping)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "customDL_email")
	assert.Contains(t, decoded, "customDL_emailHash")
	assert.Nil(t, decoded["customDL_emailHash"])
	assert.Contains(t, decoded, "customDL_phone")
	assert.Nil(t, decoded["customDL_phone"])
}

func TestHashesListsNineAttributes(t *testing.T) {
	hashes := Enrich(Block{City: "Paris"}).Hashes()
	require.Len(t, hashes, 9)
	assert.Equal(t, "firstName", hashes[0].Attribute)
	assert.Equal(t, "country", hashes[8].Attribute)
	assert.Equal(t, sha("paris"), *hashes[5].Value)
}
