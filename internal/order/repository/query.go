package repository

import (
	"strconv"
	"strings"
	"time"

	"ordermgmt/internal/domain"
)

const ordersTable = "orders"

// placeholder renders the n-th (1-based) bind parameter for an engine.
type placeholder func(n int) string

func questionMark(int) string { return "?" }

func dollar(n int) string { return "$" + strconv.Itoa(n) }

// orderRow mirrors a row of the orders table for both engines.
type orderRow struct {
	ID           string     `db:"id"`
	CustomerName string     `db:"customer_name"`
	Item         string     `db:"item"`
	Quantity     int        `db:"quantity"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

func (r orderRow) toDomain() *domain.Order {
	o := &domain.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Item:         r.Item,
		Quantity:     r.Quantity,
		Status:       domain.Status(r.Status),
		CreatedAt:    r.CreatedAt.UTC(),
	}
	if r.UpdatedAt != nil {
		u := r.UpdatedAt.UTC()
		o.UpdatedAt = &u
	}
	return o
}

func toDomainOrders(rows []orderRow) []domain.Order {
	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, *r.toDomain())
	}
	return orders
}

// buildUpdate returns the SET clause and its arguments for the supplied
// patch fields. updated_at is always the last assignment.
func buildUpdate(p domain.OrderPatch, updatedAt time.Time, ph placeholder) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = "+ph(len(args)))
	}

	if p.CustomerName.Set {
		add("customer_name", p.CustomerName.Value)
	}
	if p.Item.Set {
		add("item", p.Item.Value)
	}
	if p.Quantity.Set {
		add("quantity", p.Quantity.Value)
	}
	if p.Status.Set {
		add("status", string(p.Status.Value))
	}
	add("updated_at", updatedAt)

	return strings.Join(sets, ", "), args
}

func updateStatement(p domain.OrderPatch, id string, updatedAt time.Time, ph placeholder) (string, []any) {
	set, args := buildUpdate(p, updatedAt, ph)
	args = append(args, id)
	return "UPDATE " + ordersTable + " SET " + set + " WHERE id = " + ph(len(args)), args
}

type listStatements struct {
	selectSQL  string
	selectArgs []any
	countSQL   string
	countArgs  []any
}

// buildList assembles the page and count statements sharing one filter.
// Rows are ordered newest first with id as a stable tie-break.
func buildList(q domain.ListQuery, columns string, ph placeholder) listStatements {
	var (
		where string
		args  []any
	)
	if q.Status != nil {
		args = append(args, string(*q.Status))
		where = " WHERE status = " + ph(len(args))
	}

	countArgs := append([]any(nil), args...)
	countSQL := "SELECT COUNT(*) FROM " + ordersTable + where

	args = append(args, q.PageSize, q.Offset())
	selectSQL := "SELECT " + columns + " FROM " + ordersTable + where +
		" ORDER BY created_at DESC, id DESC" +
		" LIMIT " + ph(len(args)-1) + " OFFSET " + ph(len(args))

	return listStatements{
		selectSQL:  selectSQL,
		selectArgs: args,
		countSQL:   countSQL,
		countArgs:  countArgs,
	}
}
