package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// extractPagination reads from/size out of a pagination map. Values arrive
// as float64 when the map came off the wire and as int when built in process.
func extractPagination(pagination map[string]interface{}) (from, size int) {
	toInt := func(v interface{}) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case float64:
			return int(n), true
		}
		return 0, false
	}

	if v, ok := toInt(pagination["from"]); ok {
		from = v
	}
	if v, ok := toInt(pagination["size"]); ok {
		size = v
	}
	return from, size
}

// ClampPagination bounds a page request: from is never negative, size
// stays within [1, 100] and falls back to 20 when unset or non-positive.
func ClampPagination(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size > 100 {
		size = 100
	}
	if size < 1 {
		size = 20
	}
	return from, size
}

func Execute(ctx context.Context, esClient *elasticsearch.Client, input map[string]interface{}) (*QueryResult, error) {
	eq := ElasticsearchQuery{
		Index:      input["indexName"].(string),
		QueryType:  input["queryType"].(string),
		Filters:    input["filters"].(map[string]interface{}),
		Pagination: struct{ From, Size int }{0, 20},
	}

	if programID, ok := input["programId"].(string); ok {
		eq.ProgramID = programID
	}
	if universityID, ok := input["universityId"].(string); ok {
		eq.UniversityID = universityID
	}
	if pagination, ok := input["pagination"].(map[string]interface{}); ok {
		from, size := extractPagination(pagination)
		eq.Pagination.From, eq.Pagination.Size = ClampPagination(from, size)
	}

	req, err := BuildQuery(esClient, eq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits := r["hits"].(map[string]interface{})
	total := hits["total"].(map[string]interface{})["value"].(float64)
	maxScore := 0.0
	if ms, ok := hits["max_score"].(float64); ok {
		maxScore = ms
	}

	var data []map[string]interface{}
	for _, hit := range hits["hits"].([]interface{}) {
		source := hit.(map[string]interface{})["_source"].(map[string]interface{})
		data = append(data, source)
	}

	return &QueryResult{
		Data:      data,
		TotalHits: int64(total),
		MaxScore:  maxScore,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
