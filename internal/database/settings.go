package database

import "context"

const getStoreSettings = `
SELECT id, store_name, contact, address, open_time, close_time, manual_status
FROM store_settings
WHERE id = 1
`

// GetStoreSettings returns the singleton settings row.
func (q *Queries) GetStoreSettings(ctx context.Context) (StoreSettings, error) {
	var s StoreSettings
	err := q.db.QueryRow(ctx, getStoreSettings).Scan(
		&s.ID, &s.StoreName, &s.Contact, &s.Address,
		&s.OpenTime, &s.CloseTime, &s.ManualStatus,
	)
	return s, err
}

const updateStoreSettings = `
UPDATE store_settings
SET store_name = $1, contact = $2, address = $3,
	open_time = $4, close_time = $5, manual_status = $6
WHERE id = 1
RETURNING id, store_name, contact, address, open_time, close_time, manual_status
`

type UpdateStoreSettingsParams struct {
	StoreName    string
	Contact      string
	Address      string
	OpenTime     string
	CloseTime    string
	ManualStatus string
}

func (q *Queries) UpdateStoreSettings(ctx context.Context, arg UpdateStoreSettingsParams) (StoreSettings, error) {
	var s StoreSettings
	err := q.db.QueryRow(ctx, updateStoreSettings,
		arg.StoreName, arg.Contact, arg.Address,
		arg.OpenTime, arg.CloseTime, arg.ManualStatus,
	).Scan(
		&s.ID, &s.StoreName, &s.Contact, &s.Address,
		&s.OpenTime, &s.CloseTime, &s.ManualStatus,
	)
	return s, err
}
