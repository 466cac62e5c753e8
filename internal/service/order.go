package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/cart"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/enum"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/format"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Errors returned by the checkout service.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingName         = errors.New("customer name is required")
	ErrMissingPhone        = errors.New("phone number is required")
	ErrMissingAddress      = errors.New("delivery address is required")
	ErrMissingInstructions = errors.New("pickup instructions are required")
	ErrMissingTable        = errors.New("table number is required")
	ErrOrderTypeInactive   = errors.New("order type is not available")
	ErrPaymentInactive     = errors.New("payment method is not available")
	ErrItemUnavailable     = errors.New("item is no longer on the menu")
	ErrItemOutOfStock      = errors.New("item is out of stock")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CheckoutStore defines the DB methods needed to place an order.
// Satisfied by *database.Queries (and its WithTx variant).
type CheckoutStore interface {
	GetCart(ctx context.Context, token uuid.UUID) (database.Cart, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
	GetOrderType(ctx context.Context, id string) (database.OrderType, error)
	GetPaymentSetting(ctx context.Context, id string) (database.PaymentSetting, error)
	GetStoreSettings(ctx context.Context) (database.StoreSettings, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	DeleteCart(ctx context.Context, token uuid.UUID) error
}

// NewCheckoutStore creates a CheckoutStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewCheckoutStore func(db database.DBTX) CheckoutStore

// CheckoutRequest is the validated input for placing an order.
type CheckoutRequest struct {
	CartToken     uuid.UUID
	OrderType     string
	PaymentMethod string
	CustomerName  string
	Phone         string
	Address       string
	Landmark      string
	Instructions  string
	TableNumber   string
}

// CustomerDetails is the per-order customer snapshot stored alongside the
// order and echoed in the summary.
type CustomerDetails struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	TableNumber  string `json:"table_number,omitempty"`
}

// CheckoutResult is the placed order plus the hand-off artifacts: the
// plain-text summary the customer pastes into Messenger, and the deep link
// that opens the conversation.
type CheckoutResult struct {
	Order        database.Order
	Lines        []cart.Line
	Summary      string
	MessengerURL string
}

// OrderService handles checkout business logic.
type OrderService struct {
	pool         TxBeginner
	store        CheckoutStore
	newStore     NewCheckoutStore
	messengerURL string
	now          func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, store CheckoutStore, newStore NewCheckoutStore, messengerURL string) *OrderService {
	return &OrderService{
		pool:         pool,
		store:        store,
		newStore:     newStore,
		messengerURL: messengerURL,
		now:          time.Now,
	}
}

// Checkout validates the request against the live catalog, inserts the order
// and clears the cart atomically, and builds the Messenger hand-off summary.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, ErrMissingPhone
	}

	orderType, err := s.store.GetOrderType(ctx, req.OrderType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderTypeInactive
		}
		return nil, fmt.Errorf("get order type: %w", err)
	}
	if !orderType.IsActive {
		return nil, ErrOrderTypeInactive
	}

	switch orderType.ID {
	case enum.OrderTypeDelivery:
		if strings.TrimSpace(req.Address) == "" {
			return nil, ErrMissingAddress
		}
	case enum.OrderTypePickup:
		if strings.TrimSpace(req.Instructions) == "" {
			return nil, ErrMissingInstructions
		}
	case enum.OrderTypeDineIn:
		if strings.TrimSpace(req.TableNumber) == "" {
			return nil, ErrMissingTable
		}
	}

	payment, err := s.store.GetPaymentSetting(ctx, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentInactive
		}
		return nil, fmt.Errorf("get payment setting: %w", err)
	}
	if !payment.IsActive {
		return nil, ErrPaymentInactive
	}

	stored, err := s.store.GetCart(ctx, req.CartToken)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	c := cart.Load(stored.Lines)
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	lines := c.Lines()

	// Stock is re-checked at submission: an item pulled or flagged after it
	// entered the cart blocks the whole order.
	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.Label)
		}
		item, err := s.store.GetMenuItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.Label)
			}
			return nil, fmt.Errorf("get menu item: %w", err)
		}
		if item.OutOfStock {
			return nil, fmt.Errorf("%w: %s", ErrItemOutOfStock, item.Name)
		}
	}

	total := c.Total()

	details := CustomerDetails{
		Name:  strings.TrimSpace(req.CustomerName),
		Phone: strings.TrimSpace(req.Phone),
	}
	switch orderType.ID {
	case enum.OrderTypeDelivery:
		details.Address = strings.TrimSpace(req.Address)
		details.Landmark = strings.TrimSpace(req.Landmark)
	case enum.OrderTypePickup:
		details.Instructions = strings.TrimSpace(req.Instructions)
	case enum.OrderTypeDineIn:
		details.TableNumber = strings.TrimSpace(req.TableNumber)
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal customer details: %w", err)
	}

	settings, err := s.store.GetStoreSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get store settings: %w", err)
	}

	order, err := s.checkoutTx(ctx, req.CartToken, database.CreateOrderParams{
		OrderType:       orderType.ID,
		PaymentMethod:   payment.ID,
		Status:          enum.OrderStatusPending,
		TotalAmount:     decimalToNumeric(total),
		Items:           itemsJSON,
		CustomerDetails: detailsJSON,
	})
	if err != nil {
		return nil, err
	}

	summary := buildSummary(settings.StoreName, localRef(s.now()), order.ID, details, orderType.Name, payment.Name, lines, total)

	return &CheckoutResult{
		Order:        order,
		Lines:        lines,
		Summary:      summary,
		MessengerURL: s.messengerURL,
	}, nil
}

// checkoutTx inserts the order and clears the cart in one transaction.
func (s *OrderService) checkoutTx(ctx context.Context, token uuid.UUID, params database.CreateOrderParams) (database.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	store := s.newStore(tx)

	order, err := store.CreateOrder(ctx, params)
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := store.DeleteCart(ctx, token); err != nil {
		return database.Order{}, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return order, nil
}

// localRef derives the human-readable order reference from the submission
// time. The backend order id is appended in the summary for exact lookup.
func localRef(t time.Time) string {
	return "GFH-" + t.Format("20060102-150405")
}

// buildSummary renders the plain-text order summary the customer sends over
// Messenger. Plain ASCII only: currency glyphs can fail to survive the paste,
// so the total spells out "PHP".
func buildSummary(storeName, ref string, orderID uuid.UUID, details CustomerDetails, orderTypeName, paymentName string, lines []cart.Line, total decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "HELLO %s! I WOULD LIKE TO PLACE AN ORDER.\n\n", strings.ToUpper(storeName))
	fmt.Fprintf(&b, "ORDER REF: %s (%s)\n", ref, shortID(orderID))
	fmt.Fprintf(&b, "CUSTOMER: %s\n", details.Name)
	fmt.Fprintf(&b, "PHONE: %s\n", details.Phone)
	fmt.Fprintf(&b, "TYPE: %s\n", orderTypeName)

	switch {
	case details.Address != "":
		if details.Landmark != "" {
			fmt.Fprintf(&b, "ADDRESS: %s (Landmark: %s)\n", details.Address, details.Landmark)
		} else {
			fmt.Fprintf(&b, "ADDRESS: %s\n", details.Address)
		}
	case details.Instructions != "":
		fmt.Fprintf(&b, "PICKUP: %s\n", details.Instructions)
	case details.TableNumber != "":
		fmt.Fprintf(&b, "TABLE: %s\n", details.TableNumber)
	}

	fmt.Fprintf(&b, "PAYMENT: %s\n\nITEMS:\n", paymentName)
	for _, line := range lines {
		fmt.Fprintf(&b, "* %dx %s\n", line.Quantity, line.Label)
	}
	fmt.Fprintf(&b, "\nTOTAL: PHP %s\n", format.Amount(total))

	return b.String()
}

// shortID is the first uuid segment, uppercased, enough for staff lookup.
func shortID(id uuid.UUID) string {
	s := id.String()
	if i := strings.IndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.ToUpper(s)
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
