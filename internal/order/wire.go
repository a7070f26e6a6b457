package order

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"ordermgmt/internal/order/controller"
	orderrepo "ordermgmt/internal/order/repository"
	"ordermgmt/internal/order/service"
	"ordermgmt/internal/respond"
)

// NewModule wires the order feature on top of an already opened store.
func NewModule(repo service.OrderRepository, responder *respond.Responder, logger *zap.Logger) *controller.OrderController {
	svc := service.NewOrderService(repo, logger)
	return controller.NewOrderController(svc, responder)
}

func NewMySQLRepository(db *sqlx.DB) service.OrderRepository {
	return orderrepo.NewMySQLOrderRepository(db)
}

func NewPostgresRepository(pool *pgxpool.Pool) service.OrderRepository {
	return orderrepo.NewPostgresOrderRepository(pool)
}
