// Package lolesports fetches match schedules from the esports GraphQL API
// using its persisted homeEvents query.
package lolesports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"

// upstreamTimeLayout matches what the API expects for event date bounds.
const upstreamTimeLayout = "2006-01-02T15:04:05.000Z"

type Config struct {
	BaseURL       string
	OperationName string
	QueryHash     string
	Locale        string
	Sport         string
	Leagues       []string
	PageSize      int
	Retries       int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	Timeout       time.Duration
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   *event.Payload `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client implements ports.EventFetcher.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if cfg.OperationName == "" {
		cfg.OperationName = "homeEvents"
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	retryWait := cfg.RetryWait

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries-1).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetHeader("Accept", "*/*").
		SetHeader("Accept-Language", "en-US,en;q=0.9,vi;q=0.8").
		SetHeader("Apollographql-Client-Name", "Esports Web").
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Content-Type", "application/json").
		SetHeader("Referer", "https://lolesports.com/en-GB").
		SetHeader("User-Agent", userAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		}).
		// Rate limited responses wait three times the base delay before the next attempt.
		SetRetryAfter(func(_ *resty.Client, r *resty.Response) (time.Duration, error) {
			if r != nil && r.StatusCode() == http.StatusTooManyRequests {
				return 3 * retryWait, nil
			}
			return 0, nil
		})

	return &Client{http: c, cfg: cfg, logger: logger}
}

// FetchEvents returns the events in r sorted by ascending start time.
func (c *Client) FetchEvents(ctx context.Context, r event.DateRange) ([]event.Event, error) {
	start, err := event.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", event.ErrInvalidRange, r.StartDate)
	}
	end, err := event.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", event.ErrInvalidRange, r.EndDate)
	}

	variables, err := json.Marshal(map[string]any{
		"hl":             c.cfg.Locale,
		"sport":          c.cfg.Sport,
		"eventDateStart": start.UTC().Format(upstreamTimeLayout),
		"eventDateEnd":   end.UTC().Format(upstreamTimeLayout),
		"eventState":     []event.State{event.StateInProgress, event.StateCompleted, event.StateUnstarted},
		"eventType":      "all",
		"vodType":        []string{"recap"},
		"pageSize":       c.cfg.PageSize,
		"leagues":        c.cfg.Leagues,
	})
	if err != nil {
		return nil, fmt.Errorf("encode variables: %w", err)
	}
	extensions, err := json.Marshal(map[string]any{
		"persistedQuery": map[string]any{"version": 1, "sha256Hash": c.cfg.QueryHash},
	})
	if err != nil {
		return nil, fmt.Errorf("encode extensions: %w", err)
	}

	var out graphQLResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"operationName": c.cfg.OperationName,
			"variables":     string(variables),
			"extensions":    string(extensions),
		}).
		SetResult(&out).
		Get("")
	if err != nil {
		c.logError("esports API request failed", r, 0, err)
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	if resp.IsError() {
		err = fmt.Errorf("fetch events: unexpected status %d", resp.StatusCode())
		c.logError("esports API returned error status", r, resp.StatusCode(), err)
		return nil, err
	}

	if len(out.Errors) > 0 && c.logger != nil {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		c.logger.WithFields(logrus.Fields{
			"start_date": r.StartDate,
			"end_date":   r.EndDate,
			"errors":     msgs,
		}).Warn("esports API returned GraphQL errors")
	}

	events := event.ParseEvents(out.Data)
	event.SortByTime(events, false)

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"start_date": r.StartDate,
			"end_date":   r.EndDate,
			"count":      len(events),
			"attempts":   resp.Request.Attempt,
		}).Info("fetched events from esports API")
	}
	return events, nil
}

func (c *Client) logError(msg string, r event.DateRange, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.WithFields(logrus.Fields{
		"start_date":  r.StartDate,
		"end_date":    r.EndDate,
		"status_code": status,
	}).WithError(err).Error(msg)
}
