package database

import "context"

const listCategories = `
SELECT id, name, sort_order, created_at
FROM categories
ORDER BY sort_order ASC, created_at ASC
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const createCategory = `
INSERT INTO categories (id, name, sort_order)
VALUES ($1, $2, $3)
RETURNING id, name, sort_order, created_at
`

type CreateCategoryParams struct {
	ID        string
	Name      string
	SortOrder int32
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, createCategory, arg.ID, arg.Name, arg.SortOrder).
		Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt)
	return c, err
}

const updateCategory = `
UPDATE categories
SET name = $2, sort_order = $3
WHERE id = $1
RETURNING id, name, sort_order, created_at
`

type UpdateCategoryParams struct {
	ID        string
	Name      string
	SortOrder int32
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, updateCategory, arg.ID, arg.Name, arg.SortOrder).
		Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt)
	return c, err
}

const deleteCategory = `
DELETE FROM categories
WHERE id = $1
RETURNING id
`

// DeleteCategory is a hard delete; the admin UI guards it with a confirmation.
func (q *Queries) DeleteCategory(ctx context.Context, id string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deleteCategory, id).Scan(&deleted)
	return deleted, err
}
