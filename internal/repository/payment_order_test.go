package repository

import (
	"context"
	"testing"
	"time"

	"github.com/communityhub/backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "mysql"), mock
}

var paymentOrderCols = []string{
	"id", "gateway_order_id", "receipt_id", "amount", "currency",
	"item_id", "item_type", "item_title",
	"name", "email", "phone", "age", "gender", "education", "community_opt_in", "notes",
	"status", "gateway_payment_id", "created_at", "updated_at",
}

func orderRow(orderID, itemID uuid.UUID, status domain.OrderStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(paymentOrderCols).AddRow(
		orderID.String(), "order_1", "evt_1700000000000_abc123", int64(50000), "INR",
		itemID.String(), "event", "Summer Camp",
		"Asha Rao", "asha@example.com", "9876543210", 21, "female", "", false, "age=21; gender=female",
		string(status), nil, now, now,
	)
}

func pendingRegistration(itemID uuid.UUID) *domain.Registration {
	now := time.Now()
	return &domain.Registration{
		ID:            uuid.New(),
		ItemID:        itemID,
		ItemType:      domain.ItemTypeEvent,
		ItemTitle:     "Summer Camp",
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Age:           21,
		Gender:        domain.GenderFemale,
		Status:        domain.RegistrationRegistered,
		PaymentStatus: domain.PaymentPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestConfirmPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentOrderRepository(db)

	orderID := uuid.New()
	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT(.+)FROM payment_order WHERE gateway_order_id = (.+)FOR UPDATE").
		WithArgs("order_1").
		WillReturnRows(orderRow(orderID, itemID, domain.OrderCreated))
	mock.ExpectExec("UPDATE catalog_item").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO registration").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE payment_order SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reg, created, err := repo.ConfirmPaid(context.Background(), "order_1", "pay_1", pendingRegistration(itemID))
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, reg.ReceiptID)
	assert.Equal(t, "evt_1700000000000_abc123", *reg.ReceiptID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaidAlreadyPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentOrderRepository(db)

	orderID := uuid.New()
	itemID := uuid.New()
	regID := uuid.New()
	now := time.Now()

	regCols := []string{
		"id", "item_id", "item_type", "item_title",
		"name", "email", "phone", "age", "gender", "education", "community_opt_in",
		"status", "payment_status", "receipt_id", "notes",
		"created_at", "updated_at", "deleted_at",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT(.+)FROM payment_order WHERE gateway_order_id = (.+)FOR UPDATE").
		WithArgs("order_1").
		WillReturnRows(orderRow(orderID, itemID, domain.OrderPaid))
	mock.ExpectQuery("SELECT(.+)FROM registration WHERE receipt_id =").
		WithArgs("evt_1700000000000_abc123").
		WillReturnRows(sqlmock.NewRows(regCols).AddRow(
			regID.String(), itemID.String(), "event", "Summer Camp",
			"Asha Rao", "asha@example.com", "9876543210", 21, "female", "", false,
			"registered", "paid", "evt_1700000000000_abc123", "",
			now, now, nil,
		))
	mock.ExpectRollback()

	reg, created, err := repo.ConfirmPaid(context.Background(), "order_1", "pay_1", pendingRegistration(itemID))
	require.NoError(t, err)
	assert.False(t, created, "re-confirmation must not create a second registration")
	assert.Equal(t, regID, reg.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaidCapacityFull(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentOrderRepository(db)

	orderID := uuid.New()
	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT(.+)FROM payment_order WHERE gateway_order_id = (.+)FOR UPDATE").
		WithArgs("order_1").
		WillReturnRows(orderRow(orderID, itemID, domain.OrderCreated))
	mock.ExpectExec("UPDATE catalog_item").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err := repo.ConfirmPaid(context.Background(), "order_1", "pay_1", pendingRegistration(itemID))
	assert.ErrorIs(t, err, domain.ErrCapacityFull)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAttempted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentOrderRepository(db)

	mock.ExpectExec("UPDATE payment_order").
		WithArgs(string(domain.OrderAttempted), "order_1", string(domain.OrderCreated)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkAttempted(context.Background(), "order_1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAttemptedAlreadySettled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newPaymentOrderRepository(db)

	mock.ExpectExec("UPDATE payment_order").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkAttempted(context.Background(), "order_1")
	assert.ErrorIs(t, err, domain.ErrNoRowsAffected)
}
