package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type mockPaymentStore struct {
	listPaymentSettingsFn         func(ctx context.Context) ([]database.PaymentSetting, error)
	listActivePaymentSettingsFn   func(ctx context.Context) ([]database.PaymentSetting, error)
	setPaymentSettingActiveFn     func(ctx context.Context, arg database.SetPaymentSettingActiveParams) (database.PaymentSetting, error)
	updatePaymentSettingDetailsFn func(ctx context.Context, arg database.UpdatePaymentSettingDetailsParams) (database.PaymentSetting, error)
}

func (m *mockPaymentStore) ListPaymentSettings(ctx context.Context) ([]database.PaymentSetting, error) {
	return m.listPaymentSettingsFn(ctx)
}

func (m *mockPaymentStore) ListActivePaymentSettings(ctx context.Context) ([]database.PaymentSetting, error) {
	return m.listActivePaymentSettingsFn(ctx)
}

func (m *mockPaymentStore) SetPaymentSettingActive(ctx context.Context, arg database.SetPaymentSettingActiveParams) (database.PaymentSetting, error) {
	return m.setPaymentSettingActiveFn(ctx, arg)
}

func (m *mockPaymentStore) UpdatePaymentSettingDetails(ctx context.Context, arg database.UpdatePaymentSettingDetailsParams) (database.PaymentSetting, error) {
	return m.updatePaymentSettingDetailsFn(ctx, arg)
}

func newPaymentRouter(store PaymentStore) chi.Router {
	r := chi.NewRouter()
	h := NewPaymentHandler(store)
	h.RegisterAdminRoutes(r)
	return r
}

func TestListActivePaymentMethods(t *testing.T) {
	r := chi.NewRouter()
	NewPaymentHandler(&mockPaymentStore{
		listActivePaymentSettingsFn: func(context.Context) ([]database.PaymentSetting, error) {
			return []database.PaymentSetting{{
				ID:            "gcash",
				Name:          "GCash",
				IsActive:      true,
				AccountName:   pgtype.Text{String: "Gabzab FH", Valid: true},
				AccountNumber: pgtype.Text{String: "09171234567", Valid: true},
			}}, nil
		},
	}).RegisterPublicRoutes(r)

	rr := do(r, newJSONRequest(t, http.MethodGet, "/payment-methods", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp []paymentMethodResponse
	decodeBody(t, rr, &resp)
	if len(resp) != 1 {
		t.Fatalf("got %d methods, want 1", len(resp))
	}
	if resp[0].AccountName == nil || *resp[0].AccountName != "Gabzab FH" {
		t.Errorf("account_name = %v", resp[0].AccountName)
	}
	if resp[0].QrURL != nil {
		t.Errorf("qr_url = %v, want null", *resp[0].QrURL)
	}
}

func TestSetPaymentMethodActive(t *testing.T) {
	var captured database.SetPaymentSettingActiveParams
	router := newPaymentRouter(&mockPaymentStore{
		setPaymentSettingActiveFn: func(_ context.Context, arg database.SetPaymentSettingActiveParams) (database.PaymentSetting, error) {
			captured = arg
			return database.PaymentSetting{ID: arg.ID, Name: "GCash", IsActive: arg.IsActive}, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPatch, "/payment-methods/gcash/active",
		map[string]bool{"is_active": false}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if captured.ID != "gcash" || captured.IsActive {
		t.Errorf("captured = %+v, want gcash deactivated", captured)
	}
}

func TestSetPaymentMethodActiveNotFound(t *testing.T) {
	router := newPaymentRouter(&mockPaymentStore{
		setPaymentSettingActiveFn: func(context.Context, database.SetPaymentSettingActiveParams) (database.PaymentSetting, error) {
			return database.PaymentSetting{}, pgx.ErrNoRows
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPatch, "/payment-methods/ghost/active",
		map[string]bool{"is_active": true}))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestUpdatePaymentMethodDetails(t *testing.T) {
	var captured database.UpdatePaymentSettingDetailsParams
	router := newPaymentRouter(&mockPaymentStore{
		updatePaymentSettingDetailsFn: func(_ context.Context, arg database.UpdatePaymentSettingDetailsParams) (database.PaymentSetting, error) {
			captured = arg
			return database.PaymentSetting{
				ID:            arg.ID,
				Name:          "GCash",
				IsActive:      true,
				AccountName:   arg.AccountName,
				AccountNumber: arg.AccountNumber,
				QrURL:         arg.QrURL,
			}, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPatch, "/payment-methods/gcash", map[string]string{
		"account_name":   "Gabzab FH",
		"account_number": "09171234567",
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if !captured.AccountName.Valid || captured.AccountName.String != "Gabzab FH" {
		t.Errorf("account_name = %+v", captured.AccountName)
	}
	// Blank fields store as NULL, not empty strings.
	if captured.QrURL.Valid {
		t.Errorf("qr_url = %+v, want null", captured.QrURL)
	}
}
