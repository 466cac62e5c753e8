package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockCategoryStore struct {
	listCategoriesFn func(ctx context.Context) ([]database.Category, error)
	createCategoryFn func(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	updateCategoryFn func(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	deleteCategoryFn func(ctx context.Context, id string) (string, error)
}

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]database.Category, error) {
	return m.listCategoriesFn(ctx)
}

func (m *mockCategoryStore) CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error) {
	return m.createCategoryFn(ctx, arg)
}

func (m *mockCategoryStore) UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error) {
	return m.updateCategoryFn(ctx, arg)
}

func (m *mockCategoryStore) DeleteCategory(ctx context.Context, id string) (string, error) {
	return m.deleteCategoryFn(ctx, id)
}

func newCategoryRouter(store CategoryStore) chi.Router {
	r := chi.NewRouter()
	NewCategoryHandler(store).RegisterAdminRoutes(r)
	return r
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rice Meals":      "rice-meals",
		"  Silog Combos ": "silog-combos",
		"A&W Floats":      "a-w-floats",
		"Wings":           "wings",
		"Add-Ons!!!":      "add-ons",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListCategories(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{
		listCategoriesFn: func(context.Context) ([]database.Category, error) {
			return []database.Category{
				{ID: "wings", Name: "Wings", SortOrder: 1, CreatedAt: time.Now()},
				{ID: "rice-meals", Name: "Rice Meals", SortOrder: 2, CreatedAt: time.Now()},
			}, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodGet, "/categories", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp []categoryResponse
	decodeBody(t, rr, &resp)
	if len(resp) != 2 {
		t.Fatalf("got %d categories, want 2", len(resp))
	}
	if resp[0].ID != "wings" || resp[1].ID != "rice-meals" {
		t.Errorf("categories out of order: %q, %q", resp[0].ID, resp[1].ID)
	}
}

func TestCreateCategorySlugsID(t *testing.T) {
	var captured database.CreateCategoryParams
	router := newCategoryRouter(&mockCategoryStore{
		createCategoryFn: func(_ context.Context, arg database.CreateCategoryParams) (database.Category, error) {
			captured = arg
			return database.Category{ID: arg.ID, Name: arg.Name, SortOrder: arg.SortOrder}, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPost, "/categories", map[string]interface{}{
		"name":       "  Rice Meals ",
		"sort_order": 3,
	}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if captured.ID != "rice-meals" {
		t.Errorf("id = %q, want rice-meals", captured.ID)
	}
	if captured.Name != "Rice Meals" {
		t.Errorf("name = %q, want trimmed Rice Meals", captured.Name)
	}
	if captured.SortOrder != 3 {
		t.Errorf("sort_order = %d, want 3", captured.SortOrder)
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{})

	rr := do(router, newJSONRequest(t, http.MethodPost, "/categories", map[string]string{"name": "   "}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUpdateCategoryKeepsSlug(t *testing.T) {
	var captured database.UpdateCategoryParams
	router := newCategoryRouter(&mockCategoryStore{
		updateCategoryFn: func(_ context.Context, arg database.UpdateCategoryParams) (database.Category, error) {
			captured = arg
			return database.Category{ID: arg.ID, Name: arg.Name, SortOrder: arg.SortOrder}, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPut, "/categories/rice-meals", map[string]interface{}{
		"name":       "Rice Bowls",
		"sort_order": 1,
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	// Renaming never rewrites the slug.
	if captured.ID != "rice-meals" {
		t.Errorf("id = %q, want rice-meals", captured.ID)
	}
	if captured.Name != "Rice Bowls" {
		t.Errorf("name = %q, want Rice Bowls", captured.Name)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{
		updateCategoryFn: func(context.Context, database.UpdateCategoryParams) (database.Category, error) {
			return database.Category{}, pgx.ErrNoRows
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodPut, "/categories/ghost", map[string]string{"name": "Ghost"}))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDeleteCategory(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{
		deleteCategoryFn: func(_ context.Context, id string) (string, error) {
			return id, nil
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodDelete, "/categories/wings", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
}

func TestDeleteCategoryStillReferenced(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{
		deleteCategoryFn: func(context.Context, string) (string, error) {
			return "", &pgconn.PgError{Code: "23503"}
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodDelete, "/categories/wings", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if msg := errorMessage(t, rr); msg != "category still has menu items" {
		t.Errorf("error = %q", msg)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	router := newCategoryRouter(&mockCategoryStore{
		deleteCategoryFn: func(context.Context, string) (string, error) {
			return "", pgx.ErrNoRows
		},
	})

	rr := do(router, newJSONRequest(t, http.MethodDelete, "/categories/ghost", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
