package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/communityhub/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const paymentOrderColumns = `
	id, gateway_order_id, receipt_id, amount, currency,
	item_id, item_type, item_title,
	name, email, phone, age, gender, education, community_opt_in, notes,
	status, gateway_payment_id, created_at, updated_at`

type paymentOrderRepository struct {
	db *sqlx.DB
}

func newPaymentOrderRepository(db *sqlx.DB) *paymentOrderRepository {
	return &paymentOrderRepository{db: db}
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *domain.PaymentOrder) error {
	const query = `
	INSERT INTO payment_order (id, gateway_order_id, receipt_id, amount, currency,
		item_id, item_type, item_title,
		name, email, phone, age, gender, education, community_opt_in, notes,
		status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.GatewayOrderID, order.ReceiptID, order.Amount, order.Currency,
		order.ItemID, order.ItemType, order.ItemTitle,
		order.Name, order.Email, order.Phone, order.Age, order.Gender, order.Education, order.CommunityOptIn, order.Notes,
		order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert payment order: %w", err)
	}
	return nil
}

func (r *paymentOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.PaymentOrder, error) {
	query := `SELECT` + paymentOrderColumns + `
		FROM payment_order
		WHERE gateway_order_id = ?`

	var order domain.PaymentOrder
	err := r.db.GetContext(ctx, &order, query, gatewayOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *paymentOrderRepository) MarkAttempted(ctx context.Context, gatewayOrderID string) error {
	return r.setStatus(ctx, gatewayOrderID, domain.OrderAttempted, domain.OrderCreated)
}

func (r *paymentOrderRepository) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	return r.setStatus(ctx, gatewayOrderID, domain.OrderFailed, domain.OrderCreated, domain.OrderAttempted)
}

func (r *paymentOrderRepository) setStatus(ctx context.Context, gatewayOrderID string, to domain.OrderStatus, from ...domain.OrderStatus) error {
	query := `
		UPDATE payment_order
		SET status = ?, updated_at = NOW()
		WHERE gateway_order_id = ? AND status IN (?` + strings.Repeat(", ?", len(from)-1) + `)`

	args := []interface{}{to, gatewayOrderID}
	for _, f := range from {
		args = append(args, f)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db update payment order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update payment order status: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}
	return nil
}

func (r *paymentOrderRepository) ListUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]*domain.PaymentOrder, error) {
	query := `SELECT` + paymentOrderColumns + `
		FROM payment_order
		WHERE status IN (?, ?) AND created_at < ?
		ORDER BY created_at ASC
		LIMIT ?`

	var orders []*domain.PaymentOrder
	err := r.db.SelectContext(ctx, &orders, query,
		domain.OrderCreated, domain.OrderAttempted, olderThan, limit)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ConfirmPaid settles an order and materializes its registration in one
// transaction:
//
//	lock order row -> already paid? return existing registration
//	reserve seat (capacity guard) -> insert registration -> mark order paid
//
// A payment can therefore never end up settled without a registration, and
// re-delivered verifications are no-ops.
func (r *paymentOrderRepository) ConfirmPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string, reg *domain.Registration) (*domain.Registration, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("db begin confirm tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var order domain.PaymentOrder
	err = tx.GetContext(ctx, &order,
		`SELECT`+paymentOrderColumns+` FROM payment_order WHERE gateway_order_id = ? FOR UPDATE`,
		gatewayOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("db lock payment order: %w", err)
	}

	if order.Status == domain.OrderPaid {
		var existing domain.Registration
		err = tx.GetContext(ctx, &existing,
			`SELECT`+registrationColumns+` FROM registration WHERE receipt_id = ? AND deleted_at IS NULL`,
			order.ReceiptID)
		if err != nil {
			return nil, false, fmt.Errorf("db fetch existing registration: %w", err)
		}
		return &existing, false, nil
	}

	if err = reserveSeatTx(ctx, tx, order.ItemID); err != nil {
		return nil, false, err
	}

	reg.ReceiptID = &order.ReceiptID
	if err = insertRegistration(ctx, tx, reg); err != nil {
		return nil, false, err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE payment_order SET status = ?, gateway_payment_id = ?, updated_at = NOW() WHERE gateway_order_id = ?`,
		domain.OrderPaid, gatewayPaymentID, gatewayOrderID)
	if err != nil {
		return nil, false, fmt.Errorf("db mark order paid: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, false, fmt.Errorf("db mark order paid: %w", err)
	} else if n == 0 {
		return nil, false, domain.ErrNoRowsAffected
	}

	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("db commit confirm tx: %w", err)
	}

	return reg, true, nil
}
