package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// ElasticsearchQuery defines the structure of a query request
type ElasticsearchQuery struct {
	Index        string
	QueryType    string
	Filters      map[string]interface{}
	ProgramID    string
	UniversityID string
	Pagination   struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, eq ElasticsearchQuery) (*esapi.SearchRequest, error) {
	if eq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch eq.QueryType {
	case "program_search":
		queryBody = buildProgramSearchQuery(eq)
	case "similar_programs":
		queryBody = buildSimilarProgramsQuery(eq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, eq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{eq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &eq.Pagination.From,
		Size:   &eq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildProgramSearchQuery builds the main program discovery query dynamically
func buildProgramSearchQuery(eq ElasticsearchQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := eq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "university_name^2", "discipline"},
				"type":   "best_fields",
			},
		})
	}

	if discipline, ok := eq.Filters["discipline"].(string); ok && discipline != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"discipline": discipline},
		})
	}

	if country, ok := eq.Filters["country"].(string); ok && country != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"country": country},
		})
	}

	if degreeLevel, ok := eq.Filters["degreeLevel"].(string); ok && degreeLevel != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"degree_level": degreeLevel},
		})
	}

	if intake, ok := eq.Filters["intakeTerm"].(string); ok && intake != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"intake_terms": intake},
		})
	}

	if maxTuition, ok := numberFilter(eq.Filters["maxTuition"]); ok && maxTuition > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"tuition_per_year": map[string]interface{}{"lte": maxTuition},
			},
		})
	}

	if minIELTS, ok := numberFilter(eq.Filters["minIelts"]); ok && minIELTS > 0 {
		// Programs whose requirement is at or below the student's score.
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"ielts_requirement": map[string]interface{}{"lte": minIELTS},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"ranking": map[string]interface{}{"order": "asc"}},
		},
	}
}

// buildSimilarProgramsQuery finds programs resembling a given one, for
// "you may also like" suggestions after a rejection or deferral.
func buildSimilarProgramsQuery(eq ElasticsearchQuery) map[string]interface{} {
	query := map[string]interface{}{
		"more_like_this": map[string]interface{}{
			"fields": []string{"name", "discipline", "university_name"},
			"like": []interface{}{
				map[string]interface{}{"_id": eq.ProgramID},
			},
			"min_term_freq":   1,
			"max_query_terms": 12,
		},
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{query},
	}
	if eq.UniversityID != "" {
		// Exclude the university the student was already rejected by.
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"university_id": eq.UniversityID},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func numberFilter(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
