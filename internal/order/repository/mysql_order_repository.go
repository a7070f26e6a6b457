package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ordermgmt/internal/domain"
	apperrors "ordermgmt/internal/errors"
)

const mysqlColumns = "id, customer_name, item, quantity, status, created_at, updated_at"

// MySQLOrderRepository stores orders in MySQL. Ids are generated here since
// the table has no server-side UUID default.
type MySQLOrderRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMySQLOrderRepository(db *sqlx.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, now: utcNow}
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (r *MySQLOrderRepository) conn(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, mysqlError("acquiring connection", err)
	}
	return conn, nil
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	id := uuid.NewString()
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query := `
		INSERT INTO orders (id, customer_name, item, quantity, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := conn.ExecContext(ctx, query,
		id, order.CustomerName, order.Item, order.Quantity, string(order.Status), createdAt,
	); err != nil {
		return nil, mysqlError("inserting order", err)
	}

	stored, err := r.findByID(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperrors.NewInternalError("reading back created order", sql.ErrNoRows)
	}
	return stored, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return r.findByID(ctx, conn, id)
}

func (r *MySQLOrderRepository) findByID(ctx context.Context, conn *sqlx.Conn, id string) (*domain.Order, error) {
	var row orderRow
	err := conn.GetContext(ctx, &row, "SELECT "+mysqlColumns+" FROM orders WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mysqlError("querying order by id", err)
	}
	return row.toDomain(), nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stmts := buildList(q, mysqlColumns, questionMark)

	var rows []orderRow
	if err := conn.SelectContext(ctx, &rows, stmts.selectSQL, stmts.selectArgs...); err != nil {
		return nil, mysqlError("listing orders", err)
	}

	var total int
	if err := conn.GetContext(ctx, &total, stmts.countSQL, stmts.countArgs...); err != nil {
		return nil, mysqlError("counting orders", err)
	}

	return &domain.OrderPage{
		Orders:     toDomainOrders(rows),
		Pagination: domain.NewPagination(q.Page, q.PageSize, total),
	}, nil
}

// Update relies on the driver reporting matched rather than changed rows
// (clientFoundRows), so a no-op write still counts as found.
func (r *MySQLOrderRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewNoFieldsProvidedError()
	}

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query, args := updateStatement(patch, id, r.now(), questionMark)
	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mysqlError("updating order", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, mysqlError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.findByID(ctx, conn, id)
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return false, mysqlError("deleting order", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, mysqlError("getting rows affected", err)
	}
	return rowsAffected > 0, nil
}

func (r *MySQLOrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var one int
	err = conn.GetContext(ctx, &one, "SELECT 1 FROM orders WHERE id = ? LIMIT 1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mysqlError("checking order existence", err)
	}
	return true, nil
}
