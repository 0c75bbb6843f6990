package hasher

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalayer/pkg/identity/normalize"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSum(t *testing.T) {
	t.Run("empty value has no digest", func(t *testing.T) {
		assert.Nil(t, Sum(""))
	})

	t.Run("known vector", func(t *testing.T) {
		got := Sum("abc")
		require.NotNil(t, got)
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", *got)
	})

	t.Run("deterministic fixed-length hex", func(t *testing.T) {
		first := Sum("user@example.com")
		second := Sum("user@example.com")
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
		assert.Len(t, *first, DigestLength)
		assert.Regexp(t, hexDigest, *first)
	})

	t.Run("different values differ", func(t *testing.T) {
		assert.NotEqual(t, *Sum("a"), *Sum("b"))
	})
}

func TestField(t *testing.T) {
	t.Run("hashes the normalized form", func(t *testing.T) {
		got := Field(" User@Example.com ", normalize.KindEmail, "")
		require.NotNil(t, got)
		assert.Equal(t, *Sum("user@example.com"), *got)
	})

	t.Run("phone uses the country hint", func(t *testing.T) {
		got := Field("(415) 555-0100", normalize.KindPhone, "US")
		require.NotNil(t, got)
		assert.Equal(t, *Sum("+14155550100"), *got)
	})

	t.Run("absent input has no digest", func(t *testing.T) {
		assert.Nil(t, Field(nil, normalize.KindCity, ""))
		assert.Nil(t, Field("   ", normalize.KindPersonalName, ""))
		assert.Nil(t, Field("--", normalize.KindPostcode, ""))
	})
}
