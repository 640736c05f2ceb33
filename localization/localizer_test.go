package localization

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testCatalog() *Catalog {
	return NewCatalog(map[Language]map[string]any{
		English: {
			"nav.home":          "Home",
			"products.showing":  "Showing {start}-{end} of {total}",
			"products.lowStock": "Low Stock: {quantity} ({unknown})",
			"about.features":    []string{"Genuine parts", "24/7 support"},
			"facets.electrical": "Electrical",
		},
		Swahili: {
			"nav.home":          "Nyumbani",
			"products.showing":  "Inaonyesha {start}-{end} kati ya {total}",
			"products.lowStock": "Hisa Chache: {quantity} ({unknown})",
			"about.features":    []string{"Vipuri halisi", "Msaada 24/7"},
			"facets.electrical": "Umeme",
		},
	})
}

func TestResolveMissingKeyReturnsKey(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	loc := NewLocalizer(testCatalog(), English, nil, zap.New(core))

	assert.NotPanics(t, func() {
		assert.Equal(t, "no.such.key", loc.Resolve("no.such.key", nil))
	})
	assert.Equal(t, "no.such.key", loc.T("no.such.key"))

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "translation key missing", entry.Message)
	assert.Equal(t, "no.such.key", entry.ContextMap()["key"])
	assert.Equal(t, "en", entry.ContextMap()["lang"])
}

func TestResolvePrefixOfKeyIsMissing(t *testing.T) {
	loc := NewLocalizer(testCatalog(), English, nil, nil)
	assert.Equal(t, "products", loc.T("products"))
	assert.Equal(t, "nav.home.extra", loc.T("nav.home.extra"))
}

func TestResolveSubstitutesPlaceholders(t *testing.T) {
	loc := NewLocalizer(testCatalog(), English, nil, nil)

	got := loc.Resolve("products.showing", Params{"start": "1", "end": "10", "total": "42"})
	assert.Equal(t, "Showing 1-10 of 42", got)

	assert.Equal(t, "Showing 1-10 of 42", loc.T("products.showing", Params{"start": 1, "end": 10}, Params{"total": 42}))
}

func TestResolveLeavesUnmatchedTokens(t *testing.T) {
	loc := NewLocalizer(testCatalog(), English, nil, nil)
	assert.Equal(t, "Low Stock: 3 ({unknown})", loc.T("products.lowStock", Params{"quantity": 3}))
	assert.Equal(t, "Showing {start}-{end} of {total}", loc.T("products.showing"))
}

func TestResolveListValue(t *testing.T) {
	loc := NewLocalizer(testCatalog(), English, nil, nil)

	got := loc.Resolve("about.features", Params{"x": "y"})
	assert.Equal(t, []string{"Genuine parts", "24/7 support"}, got)
	assert.Equal(t, []string{"Genuine parts", "24/7 support"}, loc.List("about.features"))
	assert.Equal(t, []string{"Home"}, loc.List("nav.home"))

	// Callers may not mutate the table through the returned slice.
	got.([]string)[0] = "changed"
	assert.Equal(t, "Genuine parts", loc.List("about.features")[0])

	assert.Equal(t, "about.features", loc.T("about.features"))
}

func TestSetLanguageSwitchesFutureLookups(t *testing.T) {
	store := &MemoryLanguageStore{}
	loc := NewLocalizer(testCatalog(), English, store, nil)
	assert.Equal(t, "Home", loc.T("nav.home"))

	require.NoError(t, loc.SetLanguage(Swahili))
	assert.Equal(t, Swahili, loc.Language())
	assert.Equal(t, "Nyumbani", loc.T("nav.home"))

	saved, ok := store.LoadLanguage()
	require.True(t, ok)
	assert.Equal(t, Swahili, saved)

	// A later session with the same store starts in Swahili.
	next := NewLocalizer(testCatalog(), English, store, nil)
	assert.Equal(t, Swahili, next.Language())
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	loc := NewLocalizer(testCatalog(), English, nil, nil)
	err := loc.SetLanguage("fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
	assert.Equal(t, English, loc.Language())
}

func TestNewLocalizerUnknownStartFallsBackToPrimary(t *testing.T) {
	loc := NewLocalizer(testCatalog(), "de", nil, nil)
	assert.Equal(t, English, loc.Language())
}

func TestUninitializedLocalizerPanics(t *testing.T) {
	var nilLoc *Localizer
	assert.PanicsWithValue(t, ErrNotInitialized, func() { nilLoc.T("nav.home") })

	var zero Localizer
	assert.PanicsWithValue(t, ErrNotInitialized, func() { zero.Resolve("nav.home", nil) })
}

func TestFacetName(t *testing.T) {
	loc := NewLocalizer(testCatalog(), Swahili, nil, nil)
	assert.Equal(t, "Umeme", loc.FacetName("electrical", "Electrical"))
	assert.Equal(t, "Turbochargers", loc.FacetName("turbochargers", "Turbochargers"))
}

func TestDefaultCatalogParity(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.CheckParity())

	loc := NewLocalizer(c, Swahili, nil, nil)
	assert.Equal(t, "Nyumbani", loc.T("nav.home"))
	assert.Equal(t, "Ombi la Nukuu", loc.T("contact.form.requestType.quote"))
	assert.Equal(t, "Aina ya Ombi", loc.T("contact.form.requestType"))
	assert.Equal(t, "Vichujio", loc.FacetName("filters", "Filters"))
	assert.Len(t, loc.List("about.features"), 6)

	require.NoError(t, loc.SetLanguage(English))
	assert.Equal(t, "Showing 1-8 of 25", loc.T("products.showing", Params{"start": 1, "end": 8, "total": 25}))
}

func TestCheckParityReportsMissingAndExtra(t *testing.T) {
	c := NewCatalog(map[Language]map[string]any{
		English: {"a": "A", "b": "B"},
		Swahili: {"a": "A", "c": "C"},
	})
	err := c.CheckParity()
	require.Error(t, err)

	var perr *ParityError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []string{"b"}, perr.Missing[Swahili])
	assert.Equal(t, []string{"c"}, perr.Extra[Swahili])
	assert.Contains(t, err.Error(), "sw missing 1 keys (b)")
}

func TestLoadFSFlattensNestedTables(t *testing.T) {
	fsys := fstest.MapFS{
		"messages.en.toml": {Data: []byte("[nav]\nhome = \"Home\"\n[contact.form]\nrequestType = \"Type\"\n\"requestType.quote\" = \"Quote\"\n[about]\nfeatures = [\"a\", \"b\"]\n")},
		"messages.sw.toml": {Data: []byte("[nav]\nhome = \"Nyumbani\"\n")},
	}
	c, err := LoadFS(fsys)
	require.NoError(t, err)

	v, ok := c.Lookup(English, "contact.form.requestType.quote")
	require.True(t, ok)
	assert.Equal(t, "Quote", v)

	v, ok = c.Lookup(English, "about.features")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	assert.Equal(t, []string{"nav.home"}, c.Keys(Swahili))
}

func TestLoadFSRejectsNonStringLeaves(t *testing.T) {
	fsys := fstest.MapFS{
		"messages.en.toml": {Data: []byte("count = 3\n")},
		"messages.sw.toml": {Data: []byte("")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value type")
}

func TestLoadFSMissingFile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"messages.en.toml": {Data: []byte("")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messages.sw.toml")
}
