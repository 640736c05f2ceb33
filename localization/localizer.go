package localization

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/metrics"
)

var ErrNotInitialized = errors.New("localizer used before initialization")

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Params maps placeholder names to values. Values are formatted with %v.
type Params map[string]any

// LanguageStore persists the active language for one visitor.
type LanguageStore interface {
	LoadLanguage() (Language, bool)
	SaveLanguage(lang Language) error
}

// MemoryLanguageStore keeps the language in process memory.
type MemoryLanguageStore struct {
	mu   sync.Mutex
	lang Language
	set  bool
}

func (s *MemoryLanguageStore) LoadLanguage() (Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang, s.set
}

func (s *MemoryLanguageStore) SaveLanguage(lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang, s.set = lang, true
	return nil
}

// Localizer resolves UI text for one visitor session. It is not safe for
// concurrent use; build one per request or session.
type Localizer struct {
	catalog *Catalog
	lang    Language
	store   LanguageStore
	logger  *zap.Logger
}

// NewLocalizer binds a catalog to a session. The starting language is the
// stored one when the store has a choice, else lang.
func NewLocalizer(catalog *Catalog, lang Language, store LanguageStore, logger *zap.Logger) *Localizer {
	if store == nil {
		store = &MemoryLanguageStore{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if saved, ok := store.LoadLanguage(); ok {
		if parsed, err := ParseLanguage(string(saved)); err == nil {
			lang = parsed
		}
	}
	if _, err := ParseLanguage(string(lang)); err != nil {
		lang = Primary
	}
	return &Localizer{catalog: catalog, lang: lang, store: store, logger: logger}
}

func (l *Localizer) ready() {
	if l == nil || l.catalog == nil {
		panic(ErrNotInitialized)
	}
}

// Language returns the active language.
func (l *Localizer) Language() Language {
	l.ready()
	return l.lang
}

// SetLanguage switches the active language and persists it. Later
// lookups see the new language; nothing already resolved is updated.
func (l *Localizer) SetLanguage(lang Language) error {
	l.ready()
	parsed, err := ParseLanguage(string(lang))
	if err != nil {
		return fmt.Errorf("set language %q: %w", lang, err)
	}
	l.lang = parsed
	if err := l.store.SaveLanguage(parsed); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}

// Resolve returns the string or []string stored under key for the active
// language. String values get {name} placeholders replaced from params;
// tokens without a param stay verbatim. List values are returned as-is.
// A missing key is reported and the key itself is returned.
func (l *Localizer) Resolve(key string, params Params) any {
	l.ready()
	v, ok := l.catalog.Lookup(l.lang, key)
	if !ok {
		l.missing(key)
		return key
	}
	switch val := v.(type) {
	case string:
		return substitute(val, params)
	case []string:
		return append([]string(nil), val...)
	}
	l.missing(key)
	return key
}

// T resolves key as text. Several Params are merged left to right.
func (l *Localizer) T(key string, params ...Params) string {
	var merged Params
	switch len(params) {
	case 0:
	case 1:
		merged = params[0]
	default:
		merged = Params{}
		for _, p := range params {
			for k, v := range p {
				merged[k] = v
			}
		}
	}
	switch val := l.Resolve(key, merged).(type) {
	case string:
		return val
	default:
		l.logger.Warn("list translation used as text", zap.String("key", key), zap.String("lang", string(l.lang)))
		return key
	}
}

// List resolves a list-valued key. A string value becomes a single item.
func (l *Localizer) List(key string) []string {
	switch val := l.Resolve(key, nil).(type) {
	case []string:
		return val
	case string:
		return []string{val}
	}
	return nil
}

// TOr returns the string under key, or fallback without reporting a miss.
func (l *Localizer) TOr(key, fallback string) string {
	l.ready()
	if v, ok := l.catalog.Lookup(l.lang, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// FacetName returns the localized label of a category facet, or name
// when the active language has no label for it.
func (l *Localizer) FacetName(id, name string) string {
	return l.TOr("facets."+id, name)
}

// Table returns the active language table.
func (l *Localizer) Table() map[string]any {
	l.ready()
	return l.catalog.Table(l.lang)
}

func (l *Localizer) missing(key string) {
	metrics.MissingTranslations.WithLabelValues(string(l.lang)).Inc()
	l.logger.Warn("translation key missing", zap.String("key", key), zap.String("lang", string(l.lang)))
}

func substitute(s string, params Params) string {
	if len(params) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(token string) string {
		if v, ok := params[token[1:len(token)-1]]; ok {
			return fmt.Sprint(v)
		}
		return token
	})
}
