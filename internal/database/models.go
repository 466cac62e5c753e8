package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Category struct {
	ID        string
	Name      string
	SortOrder int32
	CreatedAt time.Time
}

// MenuItem carries the customization axes as raw JSONB documents; the menu
// package decodes them, since two schema shapes for variations coexist.
type MenuItem struct {
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
	CreatedAt     time.Time
}

type Order struct {
	ID              uuid.UUID
	OrderType       string
	PaymentMethod   string
	Status          string
	TotalAmount     pgtype.Numeric
	Items           []byte
	CustomerDetails []byte
	CreatedAt       time.Time
}

type StoreSettings struct {
	ID           int32
	StoreName    string
	Contact      string
	Address      string
	OpenTime     string
	CloseTime    string
	ManualStatus string
}

type PaymentSetting struct {
	ID            string
	Name          string
	IsActive      bool
	AccountName   pgtype.Text
	AccountNumber pgtype.Text
	QrURL         pgtype.Text
	CreatedAt     time.Time
}

type OrderType struct {
	ID       string
	Name     string
	IsActive bool
}

type AdminUser struct {
	ID             uuid.UUID
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}

type Cart struct {
	Token     uuid.UUID
	Lines     []byte
	UpdatedAt time.Time
}
