package database

import (
	"context"

	"github.com/google/uuid"
)

const getCart = `
SELECT token, lines, updated_at
FROM carts
WHERE token = $1
`

func (q *Queries) GetCart(ctx context.Context, token uuid.UUID) (Cart, error) {
	var c Cart
	err := q.db.QueryRow(ctx, getCart, token).Scan(&c.Token, &c.Lines, &c.UpdatedAt)
	return c, err
}

const upsertCart = `
INSERT INTO carts (token, lines, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (token) DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()
RETURNING token, lines, updated_at
`

type UpsertCartParams struct {
	Token uuid.UUID
	Lines []byte
}

// UpsertCart stores the full serialized line sequence; the cart is rewritten
// on every mutation.
func (q *Queries) UpsertCart(ctx context.Context, arg UpsertCartParams) (Cart, error) {
	var c Cart
	err := q.db.QueryRow(ctx, upsertCart, arg.Token, arg.Lines).
		Scan(&c.Token, &c.Lines, &c.UpdatedAt)
	return c, err
}

const deleteCart = `
DELETE FROM carts
WHERE token = $1
`

func (q *Queries) DeleteCart(ctx context.Context, token uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteCart, token)
	return err
}
