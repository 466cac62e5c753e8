package database

import "context"

const listOrderTypes = `
SELECT id, name, is_active
FROM order_types
ORDER BY id ASC
`

func (q *Queries) ListOrderTypes(ctx context.Context) ([]OrderType, error) {
	return q.queryOrderTypes(ctx, listOrderTypes)
}

const listActiveOrderTypes = `
SELECT id, name, is_active
FROM order_types
WHERE is_active = true
ORDER BY id ASC
`

func (q *Queries) ListActiveOrderTypes(ctx context.Context) ([]OrderType, error) {
	return q.queryOrderTypes(ctx, listActiveOrderTypes)
}

func (q *Queries) queryOrderTypes(ctx context.Context, sql string) ([]OrderType, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderType
	for rows.Next() {
		var ot OrderType
		if err := rows.Scan(&ot.ID, &ot.Name, &ot.IsActive); err != nil {
			return nil, err
		}
		items = append(items, ot)
	}
	return items, rows.Err()
}

const getOrderType = `
SELECT id, name, is_active
FROM order_types
WHERE id = $1
`

func (q *Queries) GetOrderType(ctx context.Context, id string) (OrderType, error) {
	var ot OrderType
	err := q.db.QueryRow(ctx, getOrderType, id).Scan(&ot.ID, &ot.Name, &ot.IsActive)
	return ot, err
}

const setOrderTypeActive = `
UPDATE order_types
SET is_active = $2
WHERE id = $1
RETURNING id, name, is_active
`

type SetOrderTypeActiveParams struct {
	ID       string
	IsActive bool
}

// SetOrderTypeActive toggles availability; fulfillment types are never
// hard-deleted.
func (q *Queries) SetOrderTypeActive(ctx context.Context, arg SetOrderTypeActiveParams) (OrderType, error) {
	var ot OrderType
	err := q.db.QueryRow(ctx, setOrderTypeActive, arg.ID, arg.IsActive).
		Scan(&ot.ID, &ot.Name, &ot.IsActive)
	return ot, err
}
