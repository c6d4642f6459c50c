// internal/sources/news.go
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"alignment-engine/internal/common/logger"
)

var (
	ErrNewsSearchFailed  = errors.New("NEWS_SEARCH_FAILED")
	ErrNewsSearchTimeout = errors.New("NEWS_SEARCH_TIMEOUT")
)

// NewsIndex reads recent articles for a ticker out of Elasticsearch.
type NewsIndex struct {
	client   *elasticsearch.Client
	index    string
	maxAge   time.Duration
	maxItems int
	logger   logger.Logger
}

func NewNewsIndex(client *elasticsearch.Client, index string, maxAge time.Duration, maxItems int, log logger.Logger) *NewsIndex {
	return &NewsIndex{
		client:   client,
		index:    index,
		maxAge:   maxAge,
		maxItems: maxItems,
		logger:   log.WithFields(map[string]interface{}{"component": "news-index"}),
	}
}

// GetNews returns recent articles for a symbol, newest first, capped at the
// configured size. No hits means no coverage and returns (nil, nil).
func (n *NewsIndex) GetNews(ctx context.Context, symbol string) ([]NewsArticle, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"symbol": symbol},
					},
					map[string]interface{}{
						"range": map[string]interface{}{
							"published_at": map[string]interface{}{
								"gte": time.Now().Add(-n.maxAge).Format(time.RFC3339),
							},
						},
					},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"published_at": map[string]interface{}{"order": "desc"}},
		},
	}

	body, _ := json.Marshal(queryBody)
	size := n.maxItems

	req := esapi.SearchRequest{
		Index: []string{n.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, n.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrNewsSearchTimeout
		}
		return nil, fmt.Errorf("%w: search %s: %v", ErrNewsSearchFailed, symbol, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search %s: status %s", ErrNewsSearchFailed, symbol, res.Status())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source NewsArticle `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("%w: decode response for %s: %v", ErrNewsSearchFailed, symbol, err)
	}

	if len(searchResult.Hits.Hits) == 0 {
		return nil, nil
	}

	articles := make([]NewsArticle, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		articles = append(articles, hit.Source)
	}
	return articles, nil
}
