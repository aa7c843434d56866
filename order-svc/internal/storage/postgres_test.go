package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/service"
)

var (
	_ service.OrderRepository    = (*PostgresRepository)(nil)
	_ service.CustomerRepository = (*PostgresRepository)(nil)
)

const testOrderID = "9b2f3c1e-8d4a-4f6b-a1c2-3e4d5f6aab12"

var orderRowColumns = []string{
	"id", "table_code", "customer_phone", "items", "total_amount", "notes",
	"status", "payment_method", "payment_status", "payment_code",
	"payment_reference", "payment_gateway", "gateway_transaction_id", "payment_amount",
	"confirmed_by", "created_at", "updated_at",
}

func setupRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func orderRow(status string, confirmedBy driver.Value) *sqlmock.Rows {
	created := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(orderRowColumns).AddRow(
		testOrderID, "A1", "0912345678",
		[]byte(`[{"menuItemId":"com-tam","name":"Com tam","quantity":3,"unitPrice":"95000"}]`),
		"285000.00", "", status, "", "unpaid", "AB12",
		"", "", "", "0", confirmedBy, created, created,
	)
}

func TestPostgresRepository_GetOrder(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			id:   testOrderID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM orders WHERE id").WithArgs(testOrderID).WillReturnRows(orderRow("confirmed", int64(42)))
			},
		},
		{
			name: "missing row",
			id:   testOrderID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM orders WHERE id").WithArgs(testOrderID).WillReturnRows(sqlmock.NewRows(orderRowColumns))
			},
			wantErr: domain.ErrOrderNotFound,
		},
		{
			name:    "not a uuid",
			id:      "42",
			setup:   func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			testCase.setup(mock)

			order, err := repo.GetOrder(context.Background(), testCase.id)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusConfirmed, order.Status)
			assert.True(t, decimal.NewFromInt(285000).Equal(order.TotalAmount))
			require.Len(t, order.Items, 1)
			assert.Equal(t, 3, order.Items[0].Quantity)
			require.NotNil(t, order.ConfirmedBy)
			assert.Equal(t, int64(42), *order.ConfirmedBy)
		})
	}
}

func TestPostgresRepository_FindPayableByPaymentCode(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectQuery("WHERE payment_code = \\$1 AND status = ANY\\(\\$2\\)").
		WithArgs("AB12", sqlmock.AnyArg()).
		WillReturnRows(orderRow("pending", nil))

	order, err := repo.FindPayableByPaymentCode(context.Background(), "AB12")
	require.NoError(t, err)
	assert.Equal(t, testOrderID, order.ID)
	assert.Nil(t, order.ConfirmedBy)
}

func TestPostgresRepository_CreateOrder(t *testing.T) {
	repo, mock := setupRepository(t)
	created := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(testOrderID, "A1", "0912345678", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "pending", "unpaid", "AB12").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	order := &domain.Order{
		ID:            testOrderID,
		TableCode:     "A1",
		CustomerPhone: "0912345678",
		TotalAmount:   decimal.NewFromInt(285000),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		PaymentCode:   "AB12",
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, created, order.CreatedAt)
}

func TestPostgresRepository_ConditionalWrites(t *testing.T) {
	actorID := int64(42)

	tests := []struct {
		name     string
		affected int64
		write    func(repo *PostgresRepository) error
		wantErr  error
	}{
		{
			name:     "status applied",
			affected: 1,
			write: func(repo *PostgresRepository) error {
				return repo.UpdateStatus(context.Background(), testOrderID, domain.StatusPending, domain.StatusConfirmed, &actorID)
			},
		},
		{
			name:     "status changed meanwhile",
			affected: 0,
			write: func(repo *PostgresRepository) error {
				return repo.UpdateStatus(context.Background(), testOrderID, domain.StatusPending, domain.StatusRejected, &actorID)
			},
			wantErr: domain.ErrStatusConflict,
		},
		{
			name:     "payment method",
			affected: 1,
			write: func(repo *PostgresRepository) error {
				return repo.SetPaymentMethod(context.Background(), testOrderID, domain.StatusConfirmed, domain.PaymentCash)
			},
		},
		{
			name:     "payment settled twice",
			affected: 0,
			write: func(repo *PostgresRepository) error {
				return repo.ConfirmPayment(context.Background(), testOrderID, domain.StatusPaying, domain.PaymentUpdate{
					Status: domain.StatusPaid,
					Method: domain.PaymentBankTransfer,
					Amount: decimal.NewFromInt(285000),
				})
			},
			wantErr: domain.ErrStatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, testCase.affected))

			err := testCase.write(repo)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostgresRepository_RecordVisit(t *testing.T) {
	first := time.Date(2024, 1, 10, 5, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC)
	columns := []string{"id", "phone", "table_code", "visit_count", "first_visit_at", "last_visit_at"}

	tests := []struct {
		name       string
		rows       *sqlmock.Rows
		err        error
		wantVisits int
		wantNew    bool
	}{
		{
			name:       "first visit",
			rows:       sqlmock.NewRows(columns).AddRow("c1", "0912345678", "A1", 1, first, first),
			wantVisits: 1,
			wantNew:    true,
		},
		{
			name:       "returning customer",
			rows:       sqlmock.NewRows(columns).AddRow("c1", "0912345678", "B2", 4, first, last),
			wantVisits: 4,
		},
		{
			name: "db error",
			err:  errors.New("connection reset"),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			query := mock.ExpectQuery("INSERT INTO customers (.+) ON CONFLICT \\(phone\\) DO UPDATE").
				WithArgs(sqlmock.AnyArg(), "0912345678", "A1")
			if testCase.err != nil {
				query.WillReturnError(testCase.err)
			} else {
				query.WillReturnRows(testCase.rows)
			}

			customer, err := repo.RecordVisit(context.Background(), "0912345678", "A1")
			if testCase.err != nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantVisits, customer.VisitCount)
			assert.Equal(t, testCase.wantNew, customer.IsNew())
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schema {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
