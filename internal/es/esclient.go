package es

import (
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ecofinds/backend/internal/config"
)

// NewClient connects to Elasticsearch. Search is optional: callers get
// (nil, nil) when no ES_URL is configured and fall back to the database.
func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}
