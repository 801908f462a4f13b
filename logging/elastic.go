package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

// elasticTimeLayout produces the "YYYY-MM-DDTHH:MM:SS±HHMM" document format.
const elasticTimeLayout = "2006-01-02T15:04:05-0700"

type elasticDocument struct {
	Message  string `json:"message"`
	Level    string `json:"level"`
	CallTree string `json:"call_tree"`
	TS       string `json:"ts"`
}

// ElasticsearchSink indexes one document per record into a fixed index.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchSink builds a sink for the instance at url, authenticating
// with an API key. The connection is not verified here.
func NewElasticsearchSink(url, apiKey, index string) (*ElasticsearchSink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticsearchSink{client: client, index: index}, nil
}

// Write indexes the record under a fresh document ID.
func (s *ElasticsearchSink) Write(rec *Record) error {
	doc := elasticDocument{
		Message:  rec.Message,
		Level:    rec.Level.String(),
		CallTree: rec.CallPath,
		TS:       rec.Timestamp.Format(elasticTimeLayout),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: uuid.NewString(),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: elasticsearch returned %s", ErrSinkWrite, res.Status())
	}
	return nil
}
