package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingsengineering/wingsweb/models"
)

func TestFacets(t *testing.T) {
	facets := Facets(sampleParts())
	require.Len(t, facets, 8)

	assert.Equal(t, Facet{ID: AllFacet, Name: "All Parts", Count: 8}, facets[0])
	assert.Equal(t, Facet{ID: "filters", Name: "Filters", Count: 2}, facets[1])
	assert.Equal(t, Facet{ID: "fuel-system", Name: "Fuel System", Count: 1}, facets[2])
	assert.Equal(t, Facet{ID: "gaskets-seals", Name: "Gaskets & Seals", Count: 1}, facets[3])
	assert.Equal(t, "parts", facets[5].Name)
}

func TestResolveFacet(t *testing.T) {
	facets := Facets(sampleParts())

	f, ok := ResolveFacet(facets, "gaskets-seals")
	require.True(t, ok)
	assert.Equal(t, "Gaskets & Seals", f.Name)

	f, ok = ResolveFacet(facets, "Fuel System")
	require.True(t, ok)
	assert.Equal(t, "fuel-system", f.ID)

	_, ok = ResolveFacet(facets, AllFacet)
	assert.False(t, ok)
	_, ok = ResolveFacet(facets, "")
	assert.False(t, ok)
	_, ok = ResolveFacet(facets, "turbo")
	assert.False(t, ok)
}

func TestBrands(t *testing.T) {
	assert.Equal(t, []string{"Gates", "Lister Petter", "Perkins"}, Brands(sampleParts()))
	assert.Empty(t, Brands(nil))
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		part models.Part
		want string
	}{
		{newPart("a", "A", withStock(11)), StatusInStock},
		{newPart("a", "A", withStock(10)), StatusLowStock},
		{newPart("a", "A", withStock(1)), StatusLowStock},
		{newPart("a", "A", withStock(0), withLead(10)), StatusAvailableSoon},
		{newPart("a", "A", withStock(0), withLead(0)), StatusAvailableSoon},
		{newPart("a", "A", withStock(0), withLead(11)), StatusOutOfStock},
		{newPart("a", "A", withStock(0)), StatusOutOfStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StockStatus(tc.part))
	}
}

func TestCompatibleParts(t *testing.T) {
	got := CompatibleParts(sampleParts(), " lpw4 ")
	assert.Equal(t, []string{"p1", "p3", "p8"}, ids(got))

	assert.Empty(t, CompatibleParts(sampleParts(), "CAT 3306"))
	assert.Nil(t, CompatibleParts(sampleParts(), "  "))
}

func TestEngineModels(t *testing.T) {
	items := []models.Part{
		newPart("a", "A", withCompat("LPW4", "lpw4", "TS1")),
		newPart("b", "B", withCompat("LPA2", " ")),
	}
	assert.Equal(t, []string{"LPW4", "TS1", "LPA2"}, EngineModels(items))
}
