package database

import "context"

const getAdminUserByUsername = `
SELECT id, username, hashed_password, created_at
FROM admin_users
WHERE username = $1
`

func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (AdminUser, error) {
	var u AdminUser
	err := q.db.QueryRow(ctx, getAdminUserByUsername, username).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.CreatedAt)
	return u, err
}

const createAdminUser = `
INSERT INTO admin_users (username, hashed_password)
VALUES ($1, $2)
RETURNING id, username, hashed_password, created_at
`

type CreateAdminUserParams struct {
	Username       string
	HashedPassword string
}

func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (AdminUser, error) {
	var u AdminUser
	err := q.db.QueryRow(ctx, createAdminUser, arg.Username, arg.HashedPassword).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.CreatedAt)
	return u, err
}
