// Package descriptor serves the site and theme fragments from a static YAML
// file, for hosts that do not post them with every page view.
//
//	site:
//	  blog_id: 1
//	  name: Example Shop
//	  locale: en_US
//	  home: https://shop.example/
//	theme:
//	  name: Storefront
//	  version: 4.5.1
package descriptor

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"datalayer/internal/datalayer/models"
)

// Descriptor is the parsed file.
type Descriptor struct {
	SiteInfo  *Site  `yaml:"site"`
	ThemeInfo *Theme `yaml:"theme"`
}

type Site struct {
	BlogID  int    `yaml:"blog_id"`
	Name    string `yaml:"name"`
	Locale  string `yaml:"locale"`
	Home    string `yaml:"home"`
	SiteURL string `yaml:"site_url"`
}

type Theme struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Stylesheet string `yaml:"stylesheet"`
	Template   string `yaml:"template"`
}

func (d *Descriptor) defaults() {
	if s := d.SiteInfo; s != nil {
		if s.BlogID <= 0 {
			s.BlogID = 1
		}
		if s.SiteURL == "" {
			s.SiteURL = s.Home
		}
	}
	if t := d.ThemeInfo; t != nil && t.Template == "" {
		t.Template = t.Stylesheet
	}
}

// Parse decodes a descriptor document.
func Parse(data []byte) (*Descriptor, error) {
	d := &Descriptor{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse site descriptor: %w", err)
	}
	d.defaults()
	return d, nil
}

// LoadFile reads a descriptor from path.
func LoadFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site descriptor: %w", err)
	}
	return Parse(data)
}

// Site implements providers.SiteProvider.
func (d *Descriptor) Site(context.Context) (*models.Site, error) {
	s := d.SiteInfo
	if s == nil {
		return nil, nil
	}
	return &models.Site{BlogID: s.BlogID, Name: s.Name, Locale: s.Locale, Home: s.Home, SiteURL: s.SiteURL}, nil
}

// Theme implements providers.ThemeProvider.
func (d *Descriptor) Theme(context.Context) (*models.Theme, error) {
	t := d.ThemeInfo
	if t == nil {
		return nil, nil
	}
	return &models.Theme{Name: t.Name, Version: t.Version, Stylesheet: t.Stylesheet, Template: t.Template}, nil
}
