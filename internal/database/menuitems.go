package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const menuItemColumns = `id, name, description, price, promo_price, category_id,
image, out_of_stock, sort_order, variations, flavors, addons, dining_options, created_at`

func scanMenuItem(row interface{ Scan(dest ...any) error }) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.PromoPrice, &m.CategoryID,
		&m.Image, &m.OutOfStock, &m.SortOrder,
		&m.Variations, &m.Flavors, &m.Addons, &m.DiningOptions, &m.CreatedAt,
	)
	return m, err
}

const listMenuItems = `
SELECT ` + menuItemColumns + `
FROM menu_items
ORDER BY sort_order ASC, created_at DESC
`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, listMenuItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const getMenuItem = `
SELECT ` + menuItemColumns + `
FROM menu_items
WHERE id = $1
`

func (q *Queries) GetMenuItem(ctx context.Context, id uuid.UUID) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRow(ctx, getMenuItem, id))
}

const createMenuItem = `
INSERT INTO menu_items (name, description, price, promo_price, category_id,
	image, out_of_stock, sort_order, variations, flavors, addons, dining_options)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + menuItemColumns + `
`

type CreateMenuItemParams struct {
	Name          string
	Description   pgtype.Text
	Price         pgtype.Numeric
	PromoPrice    pgtype.Numeric
	CategoryID    string
	Image         pgtype.Text
	OutOfStock    bool
	SortOrder     int32
	Variations    []byte
	Flavors       []byte
	Addons        []byte
	DiningOptions []byte
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRow(ctx, createMenuItem,
		arg.Name, arg.Description, arg.Price, arg.PromoPrice, arg.CategoryID,
		arg.Image, arg.OutOfStock, arg.SortOrder,
		arg.Variations, arg.Flavors, arg.Addons, arg.DiningOptions,
	))
}

const updateMenuItem = `
UPDATE menu_items
SET name = $2, description = $3, price = $4, promo_price = $5, category_id = $6,
	image = $7, out_of_stock = $8, sort_order = $9,
	variations = $10, flavors = $11, addons = $12, dining_options = $13
WHERE id = $1
RETURNING ` + menuItemColumns + `
`

type UpdateMenuItemParams struct {
	ID            uuid.UUID
	Name          string
	Description   pgtype.Text
	Price         pgtype.Numeric
	PromoPrice    pgtype.Numeric
	CategoryID    string
	Image         pgtype.Text
	OutOfStock    bool
	SortOrder     int32
	Variations    []byte
	Flavors       []byte
	Addons        []byte
	DiningOptions []byte
}

func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRow(ctx, updateMenuItem,
		arg.ID, arg.Name, arg.Description, arg.Price, arg.PromoPrice, arg.CategoryID,
		arg.Image, arg.OutOfStock, arg.SortOrder,
		arg.Variations, arg.Flavors, arg.Addons, arg.DiningOptions,
	))
}

const deleteMenuItem = `
DELETE FROM menu_items
WHERE id = $1
RETURNING id
`

// DeleteMenuItem is a hard delete; the admin UI guards it with a confirmation.
func (q *Queries) DeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var deleted uuid.UUID
	err := q.db.QueryRow(ctx, deleteMenuItem, id).Scan(&deleted)
	return deleted, err
}
