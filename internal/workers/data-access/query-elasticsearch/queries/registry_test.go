package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPagination(t *testing.T) {
	tests := []struct {
		name       string
		from, size int
		wantFrom   int
		wantSize   int
	}{
		{"defaults when unset", 0, 0, 0, 20},
		{"passes valid values through", 40, 25, 40, 25},
		{"caps size at 100", 0, 500, 0, 100},
		{"negative size falls back to default", 0, -5, 0, 20},
		{"negative from resets to zero", -10, 10, 0, 10},
		{"size of exactly 100 is untouched", 0, 100, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, size := ClampPagination(tt.from, tt.size)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestExtractPagination_WireAndInProcessValues(t *testing.T) {
	// Values decoded from job variables arrive as float64.
	from, size := extractPagination(map[string]interface{}{
		"from": float64(30),
		"size": float64(15),
	})
	assert.Equal(t, 30, from)
	assert.Equal(t, 15, size)

	// Values built by the handler arrive as int.
	from, size = extractPagination(map[string]interface{}{
		"from": 60,
		"size": 10,
	})
	assert.Equal(t, 60, from)
	assert.Equal(t, 10, size)

	// Missing keys read as zero so the clamp applies the defaults.
	from, size = extractPagination(map[string]interface{}{})
	assert.Equal(t, 0, from)
	assert.Equal(t, 0, size)
}

func TestBuildQuery_CarriesPagination(t *testing.T) {
	eq := ElasticsearchQuery{
		Index:     "programs",
		QueryType: "program_search",
		Filters:   map[string]interface{}{},
	}
	eq.Pagination.From = 40
	eq.Pagination.Size = 25

	req, err := BuildQuery(nil, eq)
	require.NoError(t, err)
	require.NotNil(t, req.From)
	require.NotNil(t, req.Size)
	assert.Equal(t, 40, *req.From)
	assert.Equal(t, 25, *req.Size)
}
