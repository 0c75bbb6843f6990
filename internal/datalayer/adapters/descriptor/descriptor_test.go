package descriptor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalayer/internal/datalayer/providers"
)

var (
	_ providers.SiteProvider  = (*Descriptor)(nil)
	_ providers.ThemeProvider = (*Descriptor)(nil)
)

const doc = `
site:
  name: Example Shop
  locale: en_US
  home: https://shop.example/
theme:
  name: Storefront
  version: 4.5.1
  stylesheet: storefront-child
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	d, err := LoadFile(path)
	require.NoError(t, err)

	site, err := d.Site(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, site.BlogID)
	assert.Equal(t, "Example Shop", site.Name)
	assert.Equal(t, "https://shop.example/", site.SiteURL, "site url defaults to home")

	theme, err := d.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.5.1", theme.Version)
	assert.Equal(t, "storefront-child", theme.Template)
}

func TestMissingSections(t *testing.T) {
	d, err := Parse([]byte("site:\n  name: Only Site\n"))
	require.NoError(t, err)

	theme, err := d.Theme(context.Background())
	require.NoError(t, err)
	assert.Nil(t, theme)
}

func TestErrors(t *testing.T) {
	_, err := Parse([]byte("site: [unclosed"))
	assert.ErrorContains(t, err, "parse site descriptor")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read site descriptor")
}
