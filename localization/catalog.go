package localization

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed messages.*.toml
var defaultMessages embed.FS

// Catalog holds one flattened table per language. Values are string or
// []string. A Catalog is read-only once loaded and safe to share.
type Catalog struct {
	tables map[Language]map[string]any
}

// ParityError lists keys that exist in the primary table but not in
// another language, and the reverse.
type ParityError struct {
	Missing map[Language][]string
	Extra   map[Language][]string
}

func (e *ParityError) Error() string {
	var parts []string
	for _, lang := range Supported {
		if keys := e.Missing[lang]; len(keys) > 0 {
			parts = append(parts, fmt.Sprintf("%s missing %d keys (%s)", lang, len(keys), strings.Join(keys, ", ")))
		}
		if keys := e.Extra[lang]; len(keys) > 0 {
			parts = append(parts, fmt.Sprintf("%s has %d unknown keys (%s)", lang, len(keys), strings.Join(keys, ", ")))
		}
	}
	return "translation tables out of parity: " + strings.Join(parts, "; ")
}

// NewCatalog builds a catalog from already flat tables.
func NewCatalog(tables map[Language]map[string]any) *Catalog {
	c := &Catalog{tables: make(map[Language]map[string]any, len(tables))}
	for lang, table := range tables {
		copied := make(map[string]any, len(table))
		for k, v := range table {
			copied[k] = v
		}
		c.tables[lang] = copied
	}
	return c
}

// Default loads the tables embedded in the binary.
func Default() (*Catalog, error) {
	return LoadFS(defaultMessages)
}

// LoadDir reads messages.<lang>.toml files from dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads messages.<lang>.toml for every supported language.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{tables: make(map[Language]map[string]any, len(Supported))}
	for _, lang := range Supported {
		name := fmt.Sprintf("messages.%s.toml", lang)
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		table := make(map[string]any)
		if err := flatten("", raw, table); err != nil {
			return nil, fmt.Errorf("flatten %s: %w", name, err)
		}
		c.tables[lang] = table
	}
	return c, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case []string:
			out[key] = append([]string(nil), val...)
		case []any:
			list := make([]string, 0, len(val))
			for i, item := range val {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("key %q item %d: expected string, got %T", key, i, item)
				}
				list = append(list, s)
			}
			out[key] = list
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: unsupported value type %T", key, v)
		}
	}
	return nil
}

// Lookup returns the raw value for key in lang.
func (c *Catalog) Lookup(lang Language, key string) (any, bool) {
	table, ok := c.tables[lang]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// Table returns a copy of one language table.
func (c *Catalog) Table(lang Language) map[string]any {
	table := c.tables[lang]
	out := make(map[string]any, len(table))
	for k, v := range table {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Keys returns the sorted key set of one language.
func (c *Catalog) Keys(lang Language) []string {
	keys := make([]string, 0, len(c.tables[lang]))
	for k := range c.tables[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckParity compares every language against Primary. It returns nil
// or a *ParityError.
func (c *Catalog) CheckParity() error {
	primary := c.tables[Primary]
	perr := &ParityError{Missing: map[Language][]string{}, Extra: map[Language][]string{}}
	for _, lang := range Supported {
		if lang == Primary {
			continue
		}
		table := c.tables[lang]
		for _, k := range c.Keys(Primary) {
			if _, ok := table[k]; !ok {
				perr.Missing[lang] = append(perr.Missing[lang], k)
			}
		}
		for _, k := range c.Keys(lang) {
			if _, ok := primary[k]; !ok {
				perr.Extra[lang] = append(perr.Extra[lang], k)
			}
		}
	}
	if len(perr.Missing) == 0 && len(perr.Extra) == 0 {
		return nil
	}
	return perr
}
