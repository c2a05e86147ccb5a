package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/ecofinds/backend/internal/models"
)

// Search runs a fuzzy multi_match over the listings index and returns
// the total hit count with one page of listings.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Listing, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Listing `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	listings := make([]models.Listing, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		listings[i] = hit.Source
	}
	return r.Hits.Total.Value, listings, nil
}

// IndexListing mirrors a listing document into the search index.
func IndexListing(ctx context.Context, es *elasticsearch.Client, index string, listing *models.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	res, err := es.Index(
		index,
		strings.NewReader(string(data)),
		es.Index.WithDocumentID(listing.ID.String()),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index listing: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index listing: %s", res.Status())
	}
	return nil
}

// RemoveListing drops a listing document from the search index.
func RemoveListing(ctx context.Context, es *elasticsearch.Client, index string, id uuid.UUID) error {
	res, err := es.Delete(
		index,
		id.String(),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete listing document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete listing document: %s", res.Status())
	}
	return nil
}
