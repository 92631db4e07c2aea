//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Mailer interface {
	Send(ctx context.Context, msg entities.EmailMessage) error
}

type ChatSender interface {
	Send(ctx context.Context, text string) error
}

type Publisher interface {
	Publish(ctx context.Context, event entities.RealtimeEvent) error
}

type Journal interface {
	Record(ctx context.Context, d entities.Delivery) error
}

type Clock interface {
	Now() time.Time
}
