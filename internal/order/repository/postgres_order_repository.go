package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ordermgmt/internal/domain"
	apperrors "ordermgmt/internal/errors"
)

// id is cast to text so both engines scan into the same row type.
const postgresColumns = "id::text AS id, customer_name, item, quantity, status, created_at, updated_at"

type PostgresOrderRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool, now: utcNow}
}

func (r *PostgresOrderRepository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, postgresError("acquiring connection", err)
	}
	return conn, nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query := `
		INSERT INTO orders (customer_name, item, quantity, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postgresColumns

	rows, err := conn.Query(ctx, query, order.CustomerName, order.Item, order.Quantity, string(order.Status), createdAt)
	if err != nil {
		return nil, postgresError("inserting order", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, postgresError("inserting order", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return collectOptional(conn.Query(ctx, "SELECT "+postgresColumns+" FROM orders WHERE id = $1", id))
}

func (r *PostgresOrderRepository) FindAll(ctx context.Context, q domain.ListQuery) (*domain.OrderPage, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	stmts := buildList(q, postgresColumns, dollar)

	rows, err := conn.Query(ctx, stmts.selectSQL, stmts.selectArgs...)
	if err != nil {
		return nil, postgresError("listing orders", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, postgresError("listing orders", err)
	}

	var total int64
	if err := conn.QueryRow(ctx, stmts.countSQL, stmts.countArgs...).Scan(&total); err != nil {
		return nil, postgresError("counting orders", err)
	}

	return &domain.OrderPage{
		Orders:     toDomainOrders(records),
		Pagination: domain.NewPagination(q.Page, q.PageSize, int(total)),
	}, nil
}

func (r *PostgresOrderRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewNoFieldsProvidedError()
	}

	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query, args := updateStatement(patch, id, r.now(), dollar)
	return collectOptional(conn.Query(ctx, query+" RETURNING "+postgresColumns, args...))
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, postgresError("deleting order", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresOrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	var one int
	err = conn.QueryRow(ctx, "SELECT 1 FROM orders WHERE id = $1 LIMIT 1", id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgresError("checking order existence", err)
	}
	return true, nil
}

// collectOptional reads at most one order, mapping an empty result to nil.
func collectOptional(rows pgx.Rows, err error) (*domain.Order, error) {
	if err != nil {
		return nil, postgresError("querying order", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgresError("querying order", err)
	}
	return row.toDomain(), nil
}
