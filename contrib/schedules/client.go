package schedules

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"golang.org/x/xerrors"
)

// DefaultBaseURL is the carrier API root.
const DefaultBaseURL = "https://api.maersk.com"

// DefaultRate keeps requests under five per second.
var DefaultRate = rate.Every(200 * time.Millisecond)

// Schedule is the vessel-schedules response.
type Schedule struct {
	Vessel struct {
		Name string `json:"vesselName"`
		IMO  string `json:"vesselIMONumber"`
	} `json:"vessel"`
	Calls []Call `json:"vesselCalls"`
}

// Call is a port call.
type Call struct {
	Facility struct {
		PortName       string `json:"portName"`
		UNLocationCode string `json:"UNLocationCode"`
		CountryName    string `json:"countryName"`
	} `json:"facility"`
	Schedules []struct {
		EventType string `json:"transportEventTypeCode"`
		DateTime  string `json:"classifierDateTime"`
	} `json:"callSchedules"`
}

// Arrival returns the arrival time, the first call schedule unless one is
// marked ARRI.
func (c Call) Arrival() string {
	return c.event("ARRI", 0)
}

// Departure returns the departure time, the second call schedule unless one
// is marked DEPA.
func (c Call) Departure() string {
	return c.event("DEPA", 1)
}

func (c Call) event(code string, pos int) string {
	for _, s := range c.Schedules {
		if s.EventType == code {
			return s.DateTime
		}
	}
	if pos < len(c.Schedules) {
		return c.Schedules[pos].DateTime
	}
	return ""
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	IMO        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return "IMO: " + e.IMO + " // Error code: " + strconv.Itoa(e.StatusCode)
}

// Client calls the vessel-schedules API.
type Client struct {
	ConsumerKey string
	CarrierCode string

	BaseURL    string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

// NewClient builds a Client paced at DefaultRate.
func NewClient(consumerKey, carrierCode string) *Client {
	return &Client{
		ConsumerKey: consumerKey,
		CarrierCode: carrierCode,
		limiter:     rate.NewLimiter(DefaultRate, 1),
	}
}

// VesselSchedule fetches the schedule of one vessel. startDate may be empty.
func (c *Client) VesselSchedule(ctx context.Context, imo, startDate, dateRange string) (*Schedule, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, xerrors.Errorf("rate limiter: %w", err)
		}
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	q := url.Values{}
	q.Set("vesselIMONumber", imo)
	q.Set("carrierCodes", c.CarrierCode)
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	q.Set("dateRange", dateRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/schedules/vessel-schedules?"+q.Encode(), nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to build http request: %w", err)
	}
	req.Header.Set("Consumer-Key", c.ConsumerKey)

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{IMO: imo, StatusCode: resp.StatusCode}
	}

	var s Schedule
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, xerrors.Errorf("failed to decode schedule of %s: %w", imo, err)
	}

	return &s, nil
}
