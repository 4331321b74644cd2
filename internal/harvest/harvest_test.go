package harvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplan/internal/store"
	"dayplan/internal/task"
)

func forecastStub(t *testing.T) (*httptest.Server, *Forecast) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "acct-1", r.Header.Get("Forecast-Account-ID"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/assignments":
			assert.Equal(t, "person-9", r.URL.Query().Get("person_id"))
			w.Write([]byte(`{"assignments":[
				{"id":101,"person_id":9,"project_id":1,"start_date":"2024-03-11","end_date":"2024-03-11","allocation":9000,"notes":"sprint work"},
				{"id":102,"person_id":9,"project_id":2,"start_date":"2024-03-11","end_date":"2024-03-11","allocation":3600}
			]}`))
		case "/projects":
			w.Write([]byte(`{"projects":[
				{"id":1,"name":"Apollo","client_id":10,"color":"#ff0000"},
				{"id":2,"name":"Borealis","client_id":11,"color":"#00ff00"}
			]}`))
		case "/clients":
			w.Write([]byte(`{"clients":[{"id":10,"name":"Acme"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f, err := New(Config{
		BaseURL:     srv.URL,
		AccountID:   "acct-1",
		AccessToken: "token-123",
		UserID:      "person-9",
		HTTPClient:  srv.Client(),
	})
	require.NoError(t, err)
	return srv, f
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{AccountID: "a", AccessToken: "t"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTaskItems(t *testing.T) {
	_, f := forecastStub(t)

	day := time.Date(2024, 3, 11, 12, 0, 0, 0, time.Local)
	items, err := f.TaskItems(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "harvest-101", first.ID)
	assert.Equal(t, "Apollo", first.Title)
	assert.Equal(t, "sprint work", first.Description)
	assert.InDelta(t, 2.5, first.DurationHours, 1e-9)
	assert.Equal(t, "Acme", first.ClientName)
	assert.Contains(t, first.Raw, `"id":101`)

	// No notes: the description falls back to the scheduled hours.
	second := items[1]
	assert.Equal(t, "1.00h scheduled", second.Description)
	assert.Equal(t, "Borealis", second.ProjectName)
	assert.Empty(t, second.ClientName)
}

func TestTaskItemsUnknownProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/assignments":
			w.Write([]byte(`{"assignments":[{"id":1,"project_id":99,"allocation":1800}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	f, err := New(Config{BaseURL: srv.URL, AccountID: "a", AccessToken: "t", UserID: "u"})
	require.NoError(t, err)

	items, err := f.TaskItems(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Unknown Project", items[0].Title)
}

func TestAssignmentsErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	f, err := New(Config{BaseURL: srv.URL, AccountID: "a", AccessToken: "t", UserID: "u"})
	require.NoError(t, err)

	_, err = f.Assignments(context.Background(), "2024-03-11", "2024-03-11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func placeStore() *store.Store {
	ms := int64(1700000000000)
	return store.New(nil, store.WithNow(func() time.Time {
		ms += 1000
		return time.UnixMilli(ms)
	}))
}

func TestPlaceItemRoundsDurationUp(t *testing.T) {
	st := placeStore()

	// 2.5h occupies ceil(2.5 * 4) = 10 slots.
	item := Item{Title: "Apollo", DurationHours: 2.5, SuggestedColor: 3, Raw: `{"id":101}`}
	tk, err := PlaceItem(st, item, "2024-03-11", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, tk.StartSlot)
	assert.Equal(t, 20, tk.EndSlot)
	assert.Equal(t, task.SourceHarvest, tk.Source)
	assert.Equal(t, `{"id":101}`, tk.HarvestData)

	// 1.1h needs a fifth slot.
	tk, err = PlaceItem(st, Item{Title: "B", DurationHours: 1.1}, "2024-03-11", 30)
	require.NoError(t, err)
	assert.Equal(t, 35, tk.EndSlot)
}

func TestPlaceItemClampsToGridEnd(t *testing.T) {
	st := placeStore()

	tk, err := PlaceItem(st, Item{Title: "late", DurationHours: 4}, "2024-03-11", 60)
	require.NoError(t, err)
	assert.Equal(t, 60, tk.StartSlot)
	assert.Equal(t, 68, tk.EndSlot)
}

func TestPlaceItemRefusedOnConflict(t *testing.T) {
	st := placeStore()
	blocker, err := task.New("2024-03-11", 12, 16, "busy", "", 0)
	require.NoError(t, err)
	st.Create(blocker)

	_, err = PlaceItem(st, Item{Title: "Apollo", DurationHours: 1}, "2024-03-11", 10)
	assert.ErrorIs(t, err, task.ErrSlotConflict)
	assert.Len(t, st.All(), 1)
}
