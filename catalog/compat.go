package catalog

import (
	"strings"

	"github.com/wingsengineering/wingsweb/models"
)

// CompatibleParts returns the parts listing an engine model that contains
// engine, case-insensitively, in snapshot order.
func CompatibleParts(items []models.Part, engine string) []models.Part {
	needle := strings.ToLower(strings.TrimSpace(engine))
	if needle == "" {
		return nil
	}
	out := []models.Part{}
	for _, p := range items {
		for _, e := range p.CompatibleWith {
			if contains(e, needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// EngineModels lists every distinct engine model named by the catalog.
func EngineModels(items []models.Part) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range items {
		for _, e := range p.CompatibleWith {
			e = strings.TrimSpace(e)
			key := strings.ToLower(e)
			if e == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
