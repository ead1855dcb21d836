package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Google Calendar allows roughly 10 queries/sec per user; stay under it.
const (
	defaultRateLimit = rate.Limit(5)
	defaultRateBurst = 5
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
	limiter *rate.Limiter
}

// NewClientFromCredentialsFile creates a Calendar client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	// Try service account first
	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		tokenSource := config.TokenSource(ctx)
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return newClient(svc), nil
	}

	// Fallback: try OAuth2 installed app credentials
	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	// For OAuth2 Desktop app: use a static token if token.json exists
	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: run scripts/gcal-auth first")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	tokenSource := oauthConfig.TokenSource(ctx, &tok)
	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}

	return newClient(svc), nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return newClient(svc), nil
}

func newClient(svc *calendar.Service) *Client {
	return &Client{
		service: svc,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}
}

// CreateEvent creates a new single Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return fromAPIEvent(created), nil
}

// CreateRecurringEvent creates a recurring Google Calendar event. The
// start and end times define the first occurrence; the RRULE defines the
// repetition.
func (c *Client) CreateRecurringEvent(ctx context.Context, req CreateRecurringEventRequest) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		Recurrence: []string{req.RRule},
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring event: %w", err)
	}

	return fromAPIEvent(created), nil
}

// UpdateEvent patches an existing Google Calendar event. Only non-nil
// fields of the patch are sent.
func (c *Client) UpdateEvent(ctx context.Context, req UpdateEventRequest) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	patch := &calendar.Event{}
	if req.Patch.Summary != nil {
		patch.Summary = *req.Patch.Summary
	}
	if req.Patch.Description != nil {
		patch.Description = *req.Patch.Description
	}
	if req.Patch.Location != nil {
		patch.Location = *req.Patch.Location
	}
	if req.Patch.StartTime != nil {
		patch.Start = &calendar.EventDateTime{
			DateTime: req.Patch.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		}
	}
	if req.Patch.EndTime != nil {
		patch.End = &calendar.EventDateTime{
			DateTime: req.Patch.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		}
	}
	if req.Patch.RRule != nil {
		patch.Recurrence = []string{*req.Patch.RRule}
	}

	updated, err := c.service.Events.Patch(calendarID(req.CalendarID), req.EventID, patch).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}

	return fromAPIEvent(updated), nil
}

// DeleteEvent deletes a Google Calendar event.
func (c *Client) DeleteEvent(ctx context.Context, req DeleteEventRequest) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := c.service.Events.Delete(calendarID(req.CalendarID), req.EventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// ListEvents lists events in the given time range, expanding recurring
// events into single instances ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 250
	}

	call := c.service.Events.List(calendarID(req.CalendarID)).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults)

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, *fromAPIEvent(item))
	}
	return events, nil
}

// FreeBusy returns the busy intervals of the calendar in the given range.
func (c *Client) FreeBusy(ctx context.Context, req FreeBusyRequest) ([]BusyInterval, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	id := calendarID(req.CalendarID)
	query := &calendar.FreeBusyRequest{
		TimeMin: req.TimeMin.Format(time.RFC3339),
		TimeMax: req.TimeMax.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: id}},
	}

	result, err := c.service.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	cal, ok := result.Calendars[id]
	if !ok {
		return nil, nil
	}

	intervals := make([]BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse busy start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("failed to parse busy end %q: %w", period.End, err)
		}
		intervals = append(intervals, BusyInterval{Start: start, End: end})
	}
	return intervals, nil
}

func calendarID(id string) string {
	if id == "" {
		return "primary"
	}
	return id
}

func fromAPIEvent(e *calendar.Event) *Event {
	out := &Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		HtmlLink:    e.HtmlLink,
		Recurrence:  e.Recurrence,
	}
	if e.Start != nil && e.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
			out.StartTime = t
		}
	}
	if e.End != nil && e.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, e.End.DateTime); err == nil {
			out.EndTime = t
		}
	}
	return out
}
