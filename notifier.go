package fleetloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Notifier notifies results for each event.
type Notifier interface {
	Notify(context.Context, *Result) error
}

// Result is a result for each event.
type Result struct {
	Event Event
	Job   *Job

	// Table is nil when the job failed before extraction finished.
	Table *Table
	Error error
}

// SlackNotifier is a notifier for Slack.
type SlackNotifier struct {
	Channel   string
	IconEmoji string
	Username  string
	Token     string

	HTTPClient *http.Client
}

type slackMessage struct {
	Channel   string `json:"channel"`
	IconEmoji string `json:"icon_emoji,omitempty"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
}

type slackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Notify notifies results to Slack channel.
func (n *SlackNotifier) Notify(ctx context.Context, r *Result) error {
	l := log.Ctx(ctx)

	m := &slackMessage{
		Channel:   n.Channel,
		IconEmoji: n.IconEmoji,
		Text:      slackText(r),
		Username:  n.Username,
	}
	l.Debug().Msgf("m = %+v", m)

	if err := n.postMessage(ctx, m); err != nil {
		return xerrors.Errorf("slack postMessage failed: %w", err)
	}

	return nil
}

func slackText(r *Result) string {
	if r.Error != nil {
		return fmt.Sprintf("%s job failed to load %s: %s", r.Job.Name, r.Event.Name, r.Error)
	}

	text := fmt.Sprintf("%s job successfully loaded %d rows from %s", r.Job.Name, r.Table.Len(), r.Event.Name)
	if r.Table == nil {
		return text
	}

	if len(r.Table.Skips) > 0 {
		skips := make([]string, len(r.Table.Skips))
		for i, s := range r.Table.Skips {
			skips[i] = fmt.Sprintf("%s (%s)", s.Sheet, s.Reason)
		}
		text += "\nskipped sheets: " + strings.Join(skips, ", ")
	}

	if len(r.Table.Errors) > 0 {
		text += "\nerrors: " + strings.Join(r.Table.Errors, "; ")
	}

	return text
}

func (n *SlackNotifier) postMessage(ctx context.Context, m *slackMessage) error {
	l := log.Ctx(ctx)

	reqJSON, err := json.Marshal(m)
	if err != nil {
		return xerrors.Errorf("failed to marshal json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://slack.com/api/chat.postMessage", bytes.NewReader(reqJSON))
	if err != nil {
		return xerrors.Errorf("failed to build http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.Token)

	c := n.HTTPClient
	if c == nil {
		c = http.DefaultClient
	}

	resp, err := c.Do(req)
	if err != nil {
		return xerrors.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return xerrors.Errorf("failed to read response body: %w", err)
	}

	l.Debug().Msgf("body = %s", body)

	if resp.StatusCode >= 400 {
		return xerrors.Errorf(
			"slack request failed with status code %d (%s)", resp.StatusCode, body)
	}

	var sres slackResponse
	if err := json.Unmarshal(body, &sres); err != nil {
		return xerrors.Errorf("failed to unmarshal response body: %w", err)
	}

	if !sres.OK {
		return xerrors.Errorf("failed to send message: %s", sres.Error)
	}

	return nil
}
