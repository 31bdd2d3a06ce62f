package analytics

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Property is one tracked website.
type Property struct {
	Name        string `mapstructure:"name"`
	PropertyID  string `mapstructure:"property_id"`
	Credentials string `mapstructure:"credentials"`
}

// Resource is the report resource name, e.g. "properties/471303810".
func (p Property) Resource() string {
	return "properties/" + p.PropertyID
}

// Registry maps website names to their property. It is read-only once built.
type Registry struct {
	properties map[string]Property
	names      []string
}

func NewRegistry(properties ...Property) (*Registry, error) {
	r := &Registry{
		properties: make(map[string]Property, len(properties)),
	}
	for _, p := range properties {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, ok := r.properties[p.Name]; ok {
			return nil, fmt.Errorf("duplicate website %q in registry", p.Name)
		}
		r.properties[p.Name] = p
		r.names = append(r.names, p.Name)
	}
	return r, nil
}

// LoadRegistry reads the "properties" list from a config file.
func LoadRegistry(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var properties []Property
	if err := v.UnmarshalKey("properties", &properties); err != nil {
		return nil, fmt.Errorf("decoding registry %s: %w", path, err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("registry %s has no properties", path)
	}
	return NewRegistry(properties...)
}

func (p Property) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("registry entry without a name")
	case p.PropertyID == "" || strings.IndexFunc(p.PropertyID, func(r rune) bool { return r < '0' || r > '9' }) >= 0:
		return fmt.Errorf("website %q has invalid property id %q", p.Name, p.PropertyID)
	case p.Credentials == "":
		return fmt.Errorf("website %q has no credentials reference", p.Name)
	}
	return nil
}

// Lookup fails with UnknownWebsite when name is not registered.
func (r *Registry) Lookup(name string) (Property, error) {
	p, ok := r.properties[name]
	if !ok {
		return Property{}, NewError(UnknownWebsite, "unknown website %q", name)
	}
	return p, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.properties[name]
	return ok
}

// Names lists the websites in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
