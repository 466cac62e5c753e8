package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, order_type, payment_method, status, total_amount,
items, customer_details, created_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderType, &o.PaymentMethod, &o.Status, &o.TotalAmount,
		&o.Items, &o.CustomerDetails, &o.CreatedAt,
	)
	return o, err
}

const createOrder = `
INSERT INTO orders (order_type, payment_method, status, total_amount, items, customer_details)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + orderColumns + `
`

type CreateOrderParams struct {
	OrderType       string
	PaymentMethod   string
	Status          string
	TotalAmount     pgtype.Numeric
	Items           []byte
	CustomerDetails []byte
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, createOrder,
		arg.OrderType, arg.PaymentMethod, arg.Status, arg.TotalAmount,
		arg.Items, arg.CustomerDetails,
	))
}

const listOrders = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type ListOrdersParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const getOrder = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const updateOrderStatus = `
UPDATE orders
SET status = $2
WHERE id = $1
RETURNING ` + orderColumns + `
`

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status))
}

const countOrdersByStatus = `
SELECT status, COUNT(*)
FROM orders
WHERE created_at >= CURRENT_DATE
GROUP BY status
`

// CountOrdersTodayByStatus returns today's order counts keyed by status.
func (q *Queries) CountOrdersTodayByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.Query(ctx, countOrdersByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

const sumOrdersToday = `
SELECT COALESCE(SUM(total_amount), 0)
FROM orders
WHERE created_at >= CURRENT_DATE AND status <> 'CANCELLED'
`

// SumOrdersToday returns today's revenue, excluding cancelled orders.
func (q *Queries) SumOrdersToday(ctx context.Context) (pgtype.Numeric, error) {
	var total pgtype.Numeric
	err := q.db.QueryRow(ctx, sumOrdersToday).Scan(&total)
	return total, err
}
