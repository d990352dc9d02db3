package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ListingDetailResponse/1.0.0", generateKeyFromPath("api/listing-detail/v1.json"))
	assert.Equal(t, "StatsResponse/1.0.0", generateKeyFromPath("api/stats/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("api/stats.json"))
}

func TestAllSchemasCompiled(t *testing.T) {
	for _, key := range []string{ListingsResponse, ListingDetailResponse, StatsResponse, NeighborhoodsResponse, SourcesResponse} {
		_, ok := compiledSchemas[key+"/"+V1]
		assert.True(t, ok, key)
	}
}

func TestValidate_Listings(t *testing.T) {
	valid := `[{"id": 1, "fuente": "zonaprop", "url": "https://x.test/1", "precio": 350000, "mascotas": null, "latitud": -32.9}]`
	require.NoError(t, Validate(ListingsResponse, V1, []byte(valid)))
	require.NoError(t, Validate(ListingsResponse, V1, []byte(`[]`)))

	missingID := `[{"fuente": "zonaprop", "url": "https://x.test/1"}]`
	assert.Error(t, Validate(ListingsResponse, V1, []byte(missingID)))

	wrongType := `[{"id": 1, "fuente": "zonaprop", "url": "u", "precio": "caro"}]`
	assert.Error(t, Validate(ListingsResponse, V1, []byte(wrongType)))

	assert.Error(t, Validate(ListingsResponse, V1, []byte(`{"detail": "oops"}`)))
}

func TestValidate_StatsAndAggregations(t *testing.T) {
	stats := `{"total_propiedades": 10, "por_fuente": [{"fuente": "argenprop", "cantidad": 10}], "precio_promedio": null, "precio_min": 1, "precio_max": 2}`
	require.NoError(t, Validate(StatsResponse, V1, []byte(stats)))

	require.NoError(t, Validate(NeighborhoodsResponse, V1, []byte(`[{"barrio": "Centro", "cantidad": 4}]`)))
	assert.Error(t, Validate(SourcesResponse, V1, []byte(`[{"barrio": "Centro", "cantidad": 4}]`)))
}

func TestValidate_Errors(t *testing.T) {
	assert.Error(t, Validate("UnknownResponse", V1, []byte(`{}`)))
	assert.Error(t, Validate(StatsResponse, V1, []byte(`not json`)))
}
