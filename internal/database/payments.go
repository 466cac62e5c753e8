package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const paymentSettingColumns = `id, name, is_active, account_name, account_number, qr_url, created_at`

func scanPaymentSetting(row interface{ Scan(dest ...any) error }) (PaymentSetting, error) {
	var p PaymentSetting
	err := row.Scan(&p.ID, &p.Name, &p.IsActive, &p.AccountName, &p.AccountNumber, &p.QrURL, &p.CreatedAt)
	return p, err
}

const listPaymentSettings = `
SELECT ` + paymentSettingColumns + `
FROM payment_settings
ORDER BY created_at ASC
`

func (q *Queries) ListPaymentSettings(ctx context.Context) ([]PaymentSetting, error) {
	return q.queryPaymentSettings(ctx, listPaymentSettings)
}

const listActivePaymentSettings = `
SELECT ` + paymentSettingColumns + `
FROM payment_settings
WHERE is_active = true
ORDER BY created_at ASC
`

func (q *Queries) ListActivePaymentSettings(ctx context.Context) ([]PaymentSetting, error) {
	return q.queryPaymentSettings(ctx, listActivePaymentSettings)
}

func (q *Queries) queryPaymentSettings(ctx context.Context, sql string) ([]PaymentSetting, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PaymentSetting
	for rows.Next() {
		p, err := scanPaymentSetting(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getPaymentSetting = `
SELECT ` + paymentSettingColumns + `
FROM payment_settings
WHERE id = $1
`

func (q *Queries) GetPaymentSetting(ctx context.Context, id string) (PaymentSetting, error) {
	return scanPaymentSetting(q.db.QueryRow(ctx, getPaymentSetting, id))
}

const setPaymentSettingActive = `
UPDATE payment_settings
SET is_active = $2
WHERE id = $1
RETURNING ` + paymentSettingColumns + `
`

type SetPaymentSettingActiveParams struct {
	ID       string
	IsActive bool
}

// SetPaymentSettingActive toggles availability; payment methods are never
// hard-deleted.
func (q *Queries) SetPaymentSettingActive(ctx context.Context, arg SetPaymentSettingActiveParams) (PaymentSetting, error) {
	return scanPaymentSetting(q.db.QueryRow(ctx, setPaymentSettingActive, arg.ID, arg.IsActive))
}

const updatePaymentSettingDetails = `
UPDATE payment_settings
SET account_name = $2, account_number = $3, qr_url = $4
WHERE id = $1
RETURNING ` + paymentSettingColumns + `
`

type UpdatePaymentSettingDetailsParams struct {
	ID            string
	AccountName   pgtype.Text
	AccountNumber pgtype.Text
	QrURL         pgtype.Text
}

func (q *Queries) UpdatePaymentSettingDetails(ctx context.Context, arg UpdatePaymentSettingDetailsParams) (PaymentSetting, error) {
	return scanPaymentSetting(q.db.QueryRow(ctx, updatePaymentSettingDetails,
		arg.ID, arg.AccountName, arg.AccountNumber, arg.QrURL))
}
