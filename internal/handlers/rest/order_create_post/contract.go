//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_create_post_test
package order_create_post

import (
	"context"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CreateOrder(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Transition, error)
}
