package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
)

// DefaultPowerBIURL is the Power BI REST API root.
const DefaultPowerBIURL = "https://api.powerbi.com/v1.0/myorg"

// PowerBISink replaces the rows of a Power BI push dataset table.
type PowerBISink struct {
	WorkspaceID string
	DatasetID   string
	Table       string
	Token       string

	// Rename maps column names to the dataset's field names.
	Rename map[string]string

	// BatchSize is rows per POST. Zero means fleetloader.DefaultBatchSize.
	BatchSize int

	BaseURL    string
	HTTPClient *http.Client
}

var _ fleetloader.Sink = (*PowerBISink)(nil)

type powerBIRows struct {
	Rows []map[string]any `json:"rows"`
}

// Replace deletes every row of the table, then posts t in batches. The first
// failed batch stops delivery; earlier batches stay delivered.
func (s *PowerBISink) Replace(ctx context.Context, t *fleetloader.Table) error {
	l := log.Ctx(ctx)

	if err := s.do(ctx, http.MethodDelete, nil); err != nil {
		return xerrors.Errorf("failed to clear rows: %w", err)
	}
	l.Debug().Str("table", s.Table).Msg("power bi rows cleared")

	records := t.Records(s.Rename)
	for i, b := range fleetloader.Batches(len(records), s.BatchSize) {
		body, err := json.Marshal(powerBIRows{Rows: records[b[0]:b[1]]})
		if err != nil {
			return xerrors.Errorf("failed to marshal batch %d: %w", i+1, err)
		}

		if err := s.do(ctx, http.MethodPost, body); err != nil {
			return xerrors.Errorf("failed to push batch %d: %w", i+1, err)
		}
		l.Info().Int("batch", i+1).Int("size", b[1]-b[0]).Msg("batch delivered")
	}

	l.Info().Str("table", s.Table).Int("rows", len(records)).Msg("sink replaced")

	return nil
}

func (s *PowerBISink) rowsURL() string {
	base := s.BaseURL
	if base == "" {
		base = DefaultPowerBIURL
	}
	return fmt.Sprintf("%s/groups/%s/datasets/%s/tables/%s/rows",
		base, url.PathEscape(s.WorkspaceID), url.PathEscape(s.DatasetID), url.PathEscape(s.Table))
}

func (s *PowerBISink) do(ctx context.Context, method string, body []byte) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.rowsURL(), r)
	if err != nil {
		return xerrors.Errorf("failed to build http request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c := s.HTTPClient
	if c == nil {
		c = http.DefaultClient
	}

	resp, err := c.Do(req)
	if err != nil {
		return xerrors.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return xerrors.Errorf("%s %s returned status %d (%s)", method, s.Table, resp.StatusCode, msg)
	}

	return nil
}
