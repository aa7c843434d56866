package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dine-easy/order-svc/internal/domain"
)

const orderColumns = `
	id, table_code, customer_phone, items, total_amount, COALESCE(notes, ''),
	status, COALESCE(payment_method, ''), payment_status, payment_code,
	COALESCE(payment_reference, ''), COALESCE(payment_gateway, ''),
	COALESCE(gateway_transaction_id, ''), COALESCE(payment_amount, 0),
	confirmed_by, created_at, updated_at`

var payableStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
	string(domain.StatusPaying),
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO orders (id, table_code, customer_phone, items, total_amount, notes, status, payment_status, payment_code)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING created_at, updated_at`,
		order.ID, order.TableCode, order.CustomerPhone, items, order.TotalAmount,
		order.Notes, order.Status, order.PaymentStatus, order.PaymentCode,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// FindPayableByPaymentCode returns the newest order carrying code that can
// still receive a payment.
func (r *PostgresRepository) FindPayableByPaymentCode(ctx context.Context, code string) (*domain.Order, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE payment_code = $1 AND status = ANY($2)
		ORDER BY created_at DESC
		LIMIT 1`, code, pq.Array(payableStatuses))
	return scanOrder(row)
}

// UpdateStatus writes a staff decision. The write only applies while the
// order still has status from.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, actorID *int64) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, confirmed_by = COALESCE($2, confirmed_by), updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		to, actorID, id, from)
	if err != nil {
		return err
	}
	return expectOneRow(result, id, from)
}

func (r *PostgresRepository) SetPaymentMethod(ctx context.Context, id string, from domain.OrderStatus, method domain.PaymentMethod) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, payment_method = $2, payment_status = $3, payment_amount = total_amount, updated_at = NOW()
		WHERE id = $4 AND status = $5`,
		domain.StatusPaying, method, domain.PaymentStatusPending, id, from)
	if err != nil {
		return err
	}
	return expectOneRow(result, id, from)
}

func (r *PostgresRepository) ConfirmPayment(ctx context.Context, id string, from domain.OrderStatus, update domain.PaymentUpdate) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, payment_method = $2, payment_status = $3, payment_amount = $4,
			payment_reference = $5, payment_gateway = $6, gateway_transaction_id = $7, updated_at = NOW()
		WHERE id = $8 AND status = $9`,
		update.Status, update.Method, domain.PaymentStatusPaid, update.Amount,
		update.Reference, update.Gateway, update.GatewayTransactionID, id, from)
	if err != nil {
		return err
	}
	return expectOneRow(result, id, from)
}

// RecordVisit inserts the customer on a first visit and otherwise bumps the
// visit count and the table last seen.
func (r *PostgresRepository) RecordVisit(ctx context.Context, phone, tableCode string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO customers (id, phone, table_code)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (phone) DO UPDATE
		SET visit_count = customers.visit_count + 1,
			last_visit_at = NOW(),
			table_code = COALESCE(EXCLUDED.table_code, customers.table_code),
			updated_at = NOW()
		RETURNING id, phone, COALESCE(table_code, ''), visit_count, first_visit_at, last_visit_at`,
		uuid.NewString(), phone, tableCode,
	).Scan(&customer.ID, &customer.Phone, &customer.TableCode, &customer.VisitCount, &customer.FirstVisitAt, &customer.LastVisitAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}
	return &customer, nil
}

func expectOneRow(result sql.Result, id string, from domain.OrderStatus) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrStatusConflict, id, from)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order       domain.Order
		items       []byte
		confirmedBy sql.NullInt64
	)
	err := row.Scan(
		&order.ID, &order.TableCode, &order.CustomerPhone, &items, &order.TotalAmount, &order.Notes,
		&order.Status, &order.PaymentMethod, &order.PaymentStatus, &order.PaymentCode,
		&order.PaymentReference, &order.PaymentGateway,
		&order.GatewayTransactionID, &order.PaymentAmount,
		&confirmedBy, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("decode items of order %s: %w", order.ID, err)
		}
	}
	if confirmedBy.Valid {
		order.ConfirmedBy = &confirmedBy.Int64
	}
	return &order, nil
}
