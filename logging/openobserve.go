package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openObserveDefaultOrg = "default"
	openObserveTimeout    = 30 * time.Second
)

type openObserveDocument struct {
	Level    string `json:"level"`
	Message  string `json:"message"`
	CallTree string `json:"call_tree"`
	Datetime string `json:"datetime"`
}

// OpenObserveSink posts records to the OpenObserve JSON ingestion endpoint
// using basic authentication. OpenObserve has no official Go client, so the
// sink carries its own HTTP plumbing.
type OpenObserveSink struct {
	client   *http.Client
	baseURL  string
	org      string
	stream   string
	user     string
	password string
}

// NewOpenObserveSink builds a sink for the instance at url, targeting a
// stream in the default organization. The connection is not verified here.
func NewOpenObserveSink(url, user, password, stream string) *OpenObserveSink {
	return &OpenObserveSink{
		client:   &http.Client{Timeout: openObserveTimeout},
		baseURL:  strings.TrimRight(url, "/"),
		org:      openObserveDefaultOrg,
		stream:   stream,
		user:     user,
		password: password,
	}
}

// Write posts the record as a one-element batch.
func (s *OpenObserveSink) Write(rec *Record) error {
	doc := openObserveDocument{
		Level:    rec.Level.String(),
		Message:  rec.Message,
		CallTree: rec.CallPath,
		Datetime: rec.Timestamp.Format(time.RFC3339),
	}
	body, err := json.Marshal([]openObserveDocument{doc})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	endpoint := fmt.Sprintf("%s/api/%s/%s/_json", s.baseURL, s.org, s.stream)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.user, s.password)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: openobserve returned %d: %s",
			ErrSinkWrite, resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
