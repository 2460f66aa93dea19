// Package debloat knows which vendor packages are safe to remove and
// removes them from a device one at a time.
package debloat

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Package is one removable preinstalled app.
type Package struct {
	Name    string `yaml:"name" json:"name"`
	Package string `yaml:"package" json:"package"`
	Desc    string `yaml:"desc" json:"desc"`
	Brand   string `yaml:"brand" json:"brand"`
}

// Catalog is an ordered list of removable packages.
type Catalog struct {
	Packages []Package `yaml:"packages"`
}

// brandAliases maps sub-brands reported by ro.product.brand to the
// catalog brand that covers them.
var brandAliases = map[string]string{
	"redmi": "xiaomi",
	"poco":  "xiaomi",
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// All returns every package in catalog order.
func (c *Catalog) All() []Package {
	return c.Packages
}

// ByBrand returns the packages for brand, matched case-insensitively.
func (c *Catalog) ByBrand(brand string) []Package {
	want := normalizeBrand(brand)
	var out []Package
	for _, p := range c.Packages {
		if normalizeBrand(p.Brand) == want {
			out = append(out, p)
		}
	}
	return out
}

// Search matches keyword against name, package, description and brand.
func (c *Catalog) Search(keyword string) []Package {
	kw := strings.ToLower(keyword)
	var out []Package
	for _, p := range c.Packages {
		if strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Package), kw) ||
			strings.Contains(strings.ToLower(p.Desc), kw) ||
			strings.Contains(strings.ToLower(p.Brand), kw) {
			out = append(out, p)
		}
	}
	return out
}

// Brands returns the distinct brands, sorted.
func (c *Catalog) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range c.Packages {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

func normalizeBrand(b string) string {
	b = strings.ToLower(strings.TrimSpace(b))
	if alias, ok := brandAliases[b]; ok {
		return alias
	}
	return b
}
