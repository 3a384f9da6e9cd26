package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	ierr "github.com/flexprice/billrun/internal/errors"
	"github.com/flexprice/billrun/internal/httpclient"
	"github.com/flexprice/billrun/internal/logger"
)

// Record is one row of a datastore table. Fields carry raw JSON values with
// no schema guarantees; callers normalize them through internal/types.
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// Client is the minimal datastore contract this job depends on: equality
// filtered listing, point reads and partial field updates.
type Client interface {
	// ListRecords returns all records of a table matching the filter formula.
	// An empty formula returns every record.
	ListRecords(ctx context.Context, table, filterFormula string) ([]Record, error)

	// GetRecord retrieves one record by id
	GetRecord(ctx context.Context, table, id string) (*Record, error)

	// UpdateRecord patches only the given fields of a record, leaving the
	// rest untouched. The datastore applies the patch atomically.
	UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) (*Record, error)
}

type client struct {
	http    httpclient.Client
	baseURL string
	baseID  string
	apiKey  string
	logger  *logger.Logger
}

// NewClient creates a datastore client for one base
func NewClient(http httpclient.Client, baseURL, baseID, apiKey string, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: baseURL,
		baseID:  baseID,
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (c *client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
}

func (c *client) ListRecords(ctx context.Context, table, filterFormula string) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		q := url.Values{}
		if filterFormula != "" {
			q.Set("filterByFormula", filterFormula)
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		reqURL := c.tableURL(table)
		if len(q) > 0 {
			reqURL += "?" + q.Encode()
		}

		resp, err := c.http.Send(ctx, &httpclient.Request{
			Method:  http.MethodGet,
			URL:     reqURL,
			Headers: c.headers(),
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Failed to list records from table %s", table).
				Mark(ierr.ErrDatastore)
		}

		var page listResponse
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Datastore returned an unparsable list response").
				Mark(ierr.ErrDatastore)
		}

		records = append(records, page.Records...)
		if page.Offset == "" {
			c.logger.Debugw("listed records", "table", table, "count", len(records))
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s/%s", c.tableURL(table), id),
		Headers: c.headers(),
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, ierr.WithError(err).
				WithHintf("Record %s not found in table %s", id, table).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHintf("Failed to fetch record %s from table %s", id, table).
			Mark(ierr.ErrDatastore)
	}

	var record Record
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Datastore returned an unparsable record").
			Mark(ierr.ErrDatastore)
	}

	return &record, nil
}

func (c *client) UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) (*Record, error) {
	body, err := json.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode record update").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("%s/%s", c.tableURL(table), id),
		Headers: c.headers(),
		Body:    body,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to update record %s in table %s", id, table).
			Mark(ierr.ErrDatastore)
	}

	var record Record
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Datastore returned an unparsable record").
			Mark(ierr.ErrDatastore)
	}

	return &record, nil
}
