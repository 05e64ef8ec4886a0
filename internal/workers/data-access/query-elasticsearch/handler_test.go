package queryelasticsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions-workers/internal/common/logger"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	})
	require.NoError(t, err)

	return NewHandler(&Config{Timeout: 5 * time.Second}, esClient, logger.NewTestLogger(t))
}

func TestHandler_Execute_NilInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)

	assert.Error(t, err)
}

func TestHandler_Execute_MissingIndex(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		QueryType: "program_search",
		Filters:   map[string]interface{}{},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexNotFound))
}

func TestHandler_Execute_UnknownQueryType(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		IndexName: "programs",
		QueryType: "scholarship_search",
		Filters:   map[string]interface{}{},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchQueryFailed))
}

func TestHandler_Execute_PaginationReachesSearchRequest(t *testing.T) {
	var gotFrom, gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		gotSize = r.URL.Query().Get("size")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"took":3,"hits":{"total":{"value":1},"max_score":1.0,"hits":[{"_source":{"name":"MSc Data Science"}}]}}`))
	}))
	defer server.Close()

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)
	h := NewHandler(&Config{Timeout: 5 * time.Second}, esClient, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		IndexName:  "programs",
		QueryType:  "program_search",
		Filters:    map[string]interface{}{},
		Pagination: Pagination{From: 40, Size: 500},
	})

	require.NoError(t, err)
	assert.Equal(t, "40", gotFrom)
	assert.Equal(t, "100", gotSize, "size above the cap should be clamped")
	assert.Equal(t, int64(1), output.TotalHits)
}

func TestMapErrorToCode(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		err      error
		expected string
	}{
		{ErrIndexNotFound, "INDEX_NOT_FOUND"},
		{ErrSearchTimeout, "SEARCH_TIMEOUT"},
		{ErrSearchQueryFailed, "SEARCH_QUERY_FAILED"},
		{ErrElasticsearchConnectionFailed, "ELASTICSEARCH_CONNECTION_FAILED"},
		{errors.New("other"), "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, h.mapErrorToCode(tt.err))
	}
}
