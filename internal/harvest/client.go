// Package harvest talks to the Harvest Forecast API and turns
// scheduling assignments into items that can be placed on the day grid.
package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dayplan/internal/dateutil"
	"dayplan/internal/store"
)

// DefaultBaseURL is the production Forecast endpoint.
const DefaultBaseURL = "https://api.forecastapp.com"

// ErrNotConfigured is returned when the client is missing credentials.
var ErrNotConfigured = errors.New("harvest: account id, access token and user id must be set")

// Assignment is a Forecast scheduling assignment.
type Assignment struct {
	ID         int64  `json:"id"`
	PersonID   int64  `json:"person_id"`
	ProjectID  int64  `json:"project_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Allocation int64  `json:"allocation"` // seconds
	Notes      string `json:"notes"`
}

// Project is a Forecast project record.
type Project struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ClientID int64  `json:"client_id"`
	Color    string `json:"color"`
	Code     string `json:"code"`
}

// Client is a Forecast client (customer) record.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Item is an assignment normalized for grid placement.
type Item struct {
	ID             string
	Title          string
	Description    string
	DurationHours  float64
	SuggestedColor int
	ProjectName    string
	ClientName     string
	Raw            string // originating assignment as JSON
}

// Forecast is an HTTP client for the Forecast API. Construct one with
// New and pass it where needed; nothing in this package holds a global
// instance.
type Forecast struct {
	baseURL     string
	accountID   string
	accessToken string
	userID      string
	httpClient  *http.Client
}

// Config carries the credentials and endpoint for a Forecast client.
type Config struct {
	BaseURL     string
	AccountID   string
	AccessToken string
	UserID      string
	HTTPClient  *http.Client
}

// New creates a Forecast client. BaseURL defaults to the production
// endpoint and HTTPClient to a client with a 15s timeout.
func New(cfg Config) (*Forecast, error) {
	if cfg.AccountID == "" || cfg.AccessToken == "" || cfg.UserID == "" {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Forecast{
		baseURL:     cfg.BaseURL,
		accountID:   cfg.AccountID,
		accessToken: cfg.AccessToken,
		userID:      cfg.UserID,
		httpClient:  cfg.HTTPClient,
	}, nil
}

func (f *Forecast) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("harvest: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.accessToken)
	req.Header.Set("Forecast-Account-ID", f.accountID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("harvest: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("harvest: %s: unexpected status %s", endpoint, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("harvest: %s: decode: %w", endpoint, err)
	}
	return nil
}

// Assignments fetches the configured user's assignments overlapping the
// inclusive date range.
func (f *Forecast) Assignments(ctx context.Context, startDate, endDate string) ([]Assignment, error) {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("person_id", f.userID)

	var body struct {
		Assignments []Assignment `json:"assignments"`
	}
	if err := f.get(ctx, "/assignments?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body.Assignments, nil
}

// Projects fetches all projects visible to the account.
func (f *Forecast) Projects(ctx context.Context) ([]Project, error) {
	var body struct {
		Projects []Project `json:"projects"`
	}
	if err := f.get(ctx, "/projects", &body); err != nil {
		return nil, err
	}
	return body.Projects, nil
}

// Clients fetches all client records for the account.
func (f *Forecast) Clients(ctx context.Context) ([]Client, error) {
	var body struct {
		Clients []Client `json:"clients"`
	}
	if err := f.get(ctx, "/clients", &body); err != nil {
		return nil, err
	}
	return body.Clients, nil
}

// TaskItems fetches the assignments for one day and joins in project
// and client context, normalized for placement.
func (f *Forecast) TaskItems(ctx context.Context, day time.Time) ([]Item, error) {
	date := dateutil.DayKey(day)

	assignments, err := f.Assignments(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	projects, err := f.Projects(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := f.Clients(ctx)
	if err != nil {
		return nil, err
	}

	projectByID := make(map[int64]Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}
	clientByID := make(map[int64]Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}

	items := make([]Item, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, normalize(a, projectByID, clientByID))
	}
	return items, nil
}

func normalize(a Assignment, projects map[int64]Project, clients map[int64]Client) Item {
	hours := float64(a.Allocation) / 3600

	title := "Unknown Project"
	projectName := title
	clientName := ""
	color := 0
	if p, ok := projects[a.ProjectID]; ok {
		title = p.Name
		projectName = p.Name
		color = paletteIndex(p.Color)
		if c, ok := clients[p.ClientID]; ok {
			clientName = c.Name
		}
	}

	desc := a.Notes
	if desc == "" {
		desc = fmt.Sprintf("%.2fh scheduled", hours)
	}

	raw, _ := json.Marshal(a)

	return Item{
		ID:             fmt.Sprintf("harvest-%d", a.ID),
		Title:          title,
		Description:    desc,
		DurationHours:  hours,
		SuggestedColor: color,
		ProjectName:    projectName,
		ClientName:     clientName,
		Raw:            string(raw),
	}
}

// paletteIndex maps a project's hex color onto the fixed palette. The
// mapping only needs to be deterministic, not faithful.
func paletteIndex(hex string) int {
	sum := 0
	for i := 0; i < len(hex); i++ {
		sum += int(hex[i])
	}
	return sum % store.PaletteSize
}
