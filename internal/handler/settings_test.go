package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/go-chi/chi/v5"
)

type mockSettingsStore struct {
	getStoreSettingsFn    func(ctx context.Context) (database.StoreSettings, error)
	updateStoreSettingsFn func(ctx context.Context, arg database.UpdateStoreSettingsParams) (database.StoreSettings, error)
}

func (m *mockSettingsStore) GetStoreSettings(ctx context.Context) (database.StoreSettings, error) {
	return m.getStoreSettingsFn(ctx)
}

func (m *mockSettingsStore) UpdateStoreSettings(ctx context.Context, arg database.UpdateStoreSettingsParams) (database.StoreSettings, error) {
	return m.updateStoreSettingsFn(ctx, arg)
}

func defaultSettings() database.StoreSettings {
	return database.StoreSettings{
		ID:           1,
		StoreName:    "Gabzab Food House",
		Contact:      "09171234567",
		Address:      "Poblacion",
		OpenTime:     "09:00",
		CloseTime:    "21:00",
		ManualStatus: "auto",
	}
}

// clock builds a fixed local time at the given hour and minute.
func clock(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestIsOpenNow(t *testing.T) {
	cases := []struct {
		name     string
		open     string
		close    string
		manual   string
		now      time.Time
		wantOpen bool
	}{
		{"inside hours", "09:00", "21:00", "auto", clock(12, 0), true},
		{"at opening minute", "09:00", "21:00", "auto", clock(9, 0), true},
		{"at closing minute", "09:00", "21:00", "auto", clock(21, 0), false},
		{"before opening", "09:00", "21:00", "auto", clock(8, 59), false},
		{"after closing", "09:00", "21:00", "auto", clock(22, 30), false},
		{"overnight before midnight", "18:00", "02:00", "auto", clock(23, 0), true},
		{"overnight after midnight", "18:00", "02:00", "auto", clock(1, 30), true},
		{"overnight closed daytime", "18:00", "02:00", "auto", clock(10, 0), false},
		{"manual open overrides hours", "09:00", "21:00", "open", clock(3, 0), true},
		{"manual closed overrides hours", "09:00", "21:00", "closed", clock(12, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := defaultSettings()
			s.OpenTime = tc.open
			s.CloseTime = tc.close
			s.ManualStatus = tc.manual
			if got := isOpenNow(s, tc.now); got != tc.wantOpen {
				t.Errorf("isOpenNow = %v, want %v", got, tc.wantOpen)
			}
		})
	}
}

func TestStatusEndpoint(t *testing.T) {
	h := NewSettingsHandler(&mockSettingsStore{
		getStoreSettingsFn: func(context.Context) (database.StoreSettings, error) {
			return defaultSettings(), nil
		},
	}, "https://m.me/gabzab")
	h.now = func() time.Time { return clock(12, 0) }

	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)

	rr := do(r, newJSONRequest(t, http.MethodGet, "/status", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp statusResponse
	decodeBody(t, rr, &resp)
	if !resp.IsOpen || resp.Status != "open" {
		t.Errorf("is_open/status = %v/%q, want open", resp.IsOpen, resp.Status)
	}
	if resp.OpensAt != "9:00 AM" {
		t.Errorf("opens_at = %q, want 9:00 AM", resp.OpensAt)
	}
	if resp.ClosesAt != "9:00 PM" {
		t.Errorf("closes_at = %q, want 9:00 PM", resp.ClosesAt)
	}
}

func TestGetSettingsIncludesMessengerURL(t *testing.T) {
	h := NewSettingsHandler(&mockSettingsStore{
		getStoreSettingsFn: func(context.Context) (database.StoreSettings, error) {
			return defaultSettings(), nil
		},
	}, "https://m.me/gabzab")

	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)

	rr := do(r, newJSONRequest(t, http.MethodGet, "/settings", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp settingsResponse
	decodeBody(t, rr, &resp)
	if resp.MessengerURL != "https://m.me/gabzab" {
		t.Errorf("messenger_url = %q", resp.MessengerURL)
	}
	if resp.StoreName != "Gabzab Food House" {
		t.Errorf("store_name = %q", resp.StoreName)
	}
}

func TestUpdateSettings(t *testing.T) {
	var captured database.UpdateStoreSettingsParams
	h := NewSettingsHandler(&mockSettingsStore{
		updateStoreSettingsFn: func(_ context.Context, arg database.UpdateStoreSettingsParams) (database.StoreSettings, error) {
			captured = arg
			return database.StoreSettings{
				StoreName:    arg.StoreName,
				Contact:      arg.Contact,
				Address:      arg.Address,
				OpenTime:     arg.OpenTime,
				CloseTime:    arg.CloseTime,
				ManualStatus: arg.ManualStatus,
			}, nil
		},
	}, "https://m.me/gabzab")

	r := chi.NewRouter()
	h.RegisterAdminRoutes(r)

	rr := do(r, newJSONRequest(t, http.MethodPut, "/settings", map[string]string{
		"store_name":    "Gabzab Food House",
		"contact":       "09170000000",
		"address":       "New Site",
		"open_time":     "10:00",
		"close_time":    "22:00",
		"manual_status": "closed",
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if captured.OpenTime != "10:00" || captured.CloseTime != "22:00" {
		t.Errorf("hours = %s-%s, want 10:00-22:00", captured.OpenTime, captured.CloseTime)
	}
	if captured.ManualStatus != "closed" {
		t.Errorf("manual_status = %q, want closed", captured.ManualStatus)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	h := NewSettingsHandler(&mockSettingsStore{}, "")
	r := chi.NewRouter()
	h.RegisterAdminRoutes(r)

	valid := map[string]string{
		"store_name":    "Gabzab Food House",
		"open_time":     "09:00",
		"close_time":    "21:00",
		"manual_status": "auto",
	}
	mutate := func(key, value string) map[string]string {
		body := make(map[string]string, len(valid))
		for k, v := range valid {
			body[k] = v
		}
		if value == "" {
			delete(body, key)
		} else {
			body[key] = value
		}
		return body
	}

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing store name", mutate("store_name", "")},
		{"bad open time", mutate("open_time", "9am")},
		{"bad close time", mutate("close_time", "25:00")},
		{"bad manual status", mutate("manual_status", "maybe")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, newJSONRequest(t, http.MethodPut, "/settings", tc.body))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
		})
	}
}
