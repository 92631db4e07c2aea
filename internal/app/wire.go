//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway/kafka/order_events"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway/smtp"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway/whatsapp"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_approve_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_create_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_notifications_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_reject_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_status_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/orders_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/proof_upload_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/tasks/order_stats"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/tasks/rate_limiter_prune"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/clock"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/config"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/metrics"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/outbox"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/realtime"
	deliveryRepo "github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/repository/delivery"
	orderRepo "github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/repository/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/repository/proof"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/notification"
	orderService "github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/background"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/token_bucket"
	"github.com/google/wire"

	mail "github.com/wneessen/go-mail"
)

// InitializeApplication builds the HTTP service graph. producer may be nil
// when order events are not streamed to Kafka.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	mailClient *mail.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		clock.New,
		provideOrderRepository,
		deliveryRepo.New,
		provideProofStorage,

		provideMailer,
		provideChatSender,
		provideHub,
		provideRealtimePublisher,
		provideNotificationConfig,
		provideNotificationDispatcher,
		provideOutbox,
		orderService.New,

		provideRateLimiter,

		provideOrderStatsInterval,
		provideRateLimiterPruneInterval,
		provideSystemMetricsInterval,
		provideOrderStatsTask,
		provideRateLimiterPruneTask,
		provideSystemMetricsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.ProofStorage), new(*proof.Storage)),
		wire.Bind(new(orderService.DeliveryJournal), new(*deliveryRepo.Repository)),
		wire.Bind(new(orderService.Outbox), new(*outbox.Outbox)),
		wire.Bind(new(orderService.Clock), new(clock.System)),

		wire.Bind(new(notification.Mailer), new(*smtp.Mailer)),
		wire.Bind(new(notification.ChatSender), new(*whatsapp.Client)),
		wire.Bind(new(notification.Publisher), new(realtime.Fanout)),
		wire.Bind(new(notification.Journal), new(*deliveryRepo.Repository)),
		wire.Bind(new(notification.Clock), new(clock.System)),

		wire.Bind(new(outbox.Dispatcher), new(*notification.Dispatcher)),
		wire.Bind(new(order_stats.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(rate_limiter_prune.Limiter), new(*token_bucket.KeyedBuckets)),
	)
	return &Application{}, nil
}

type (
	OrderStatsInterval       time.Duration
	RateLimiterPruneInterval time.Duration
	SystemMetricsInterval    time.Duration
)

type Application struct {
	ServiceOrder      ServiceOrder
	ProofStorage      *proof.Storage
	Hub               *realtime.Hub
	Outbox            *outbox.Outbox
	RateLimiter       *token_bucket.KeyedBuckets
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_create_post.Service
	proof_upload_post.Service
	order_status_get.Service
	orders_get.Service
	order_approve_post.Service
	order_reject_post.Service
	order_notifications_get.Service
}

func provideOrderRepository() *orderRepo.Repository {
	return orderRepo.New(orderRepo.RandomIDGenerator{})
}

func provideProofStorage(cfg *config.Config) (*proof.Storage, error) {
	return proof.New(cfg.Proofs.Dir)
}

func provideMailer(client *mail.Client) *smtp.Mailer {
	return smtp.New(client)
}

// The chat client carries no timeout of its own; every send runs under the
// outbox NOTIFY_TIMEOUT context.
func provideChatSender(cfg *config.Config) *whatsapp.Client {
	return whatsapp.New(whatsapp.Config{
		APIURL:    cfg.WhatsApp.APIURL,
		Token:     cfg.WhatsApp.Token,
		Recipient: cfg.WhatsApp.Recipient,
	}, &http.Client{})
}

func provideHub(log logger.Logger, cfg *config.Config) *realtime.Hub {
	return realtime.NewHub(log, realtime.HubConfig{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})
}

func provideRealtimePublisher(hub *realtime.Hub, producer sarama.SyncProducer, cfg *config.Config) realtime.Fanout {
	if producer == nil {
		return realtime.NewFanout(hub)
	}
	return realtime.NewFanout(hub, order_events.New(producer, cfg.Kafka.Topic))
}

func provideNotificationConfig(cfg *config.Config) notification.Config {
	return notification.Config{
		StoreName:     cfg.Store.Name,
		SenderAddress: cfg.SMTP.User,
		StoreEmail:    cfg.Store.Email,
		AdminEmail:    cfg.Store.AdminEmail,
		DownloadLink:  cfg.Store.DownloadLink,
		PublicBaseURL: cfg.Store.PublicBaseURL,
	}
}

func provideNotificationDispatcher(
	cfg notification.Config,
	mailer notification.Mailer,
	chat notification.ChatSender,
	publisher notification.Publisher,
	journal notification.Journal,
	clock notification.Clock,
	log logger.Logger,
) *notification.Dispatcher {
	return notification.New(cfg, mailer, chat, publisher, journal, clock, log)
}

func provideOutbox(cfg *config.Config, dispatcher outbox.Dispatcher, log logger.Logger) *outbox.Outbox {
	return outbox.New(outbox.Config{
		BufferSize:    cfg.Outbox.BufferSize,
		Workers:       cfg.Outbox.Workers,
		NotifyTimeout: cfg.Outbox.NotifyTimeout,
	}, dispatcher, log)
}

func provideRateLimiter(cfg *config.Config) *token_bucket.KeyedBuckets {
	return token_bucket.NewKeyedBuckets(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS))
}

func provideOrderStatsInterval(cfg *config.Config) OrderStatsInterval {
	return OrderStatsInterval(cfg.Tasks.OrderStatsInterval)
}

func provideRateLimiterPruneInterval(cfg *config.Config) RateLimiterPruneInterval {
	return RateLimiterPruneInterval(cfg.Tasks.RateLimiterPruneInterval)
}

func provideSystemMetricsInterval(cfg *config.Config) SystemMetricsInterval {
	return SystemMetricsInterval(cfg.Tasks.SystemMetricsInterval)
}

func provideOrderStatsTask(
	log logger.Logger,
	repository order_stats.Repository,
	interval OrderStatsInterval,
) *order_stats.OrderStats {
	return order_stats.NewOrderStats(log, repository, time.Duration(interval))
}

func provideRateLimiterPruneTask(
	log logger.Logger,
	limiter rate_limiter_prune.Limiter,
	interval RateLimiterPruneInterval,
) *rate_limiter_prune.RateLimiterPrune {
	return rate_limiter_prune.NewRateLimiterPrune(log, limiter, time.Duration(interval))
}

func provideSystemMetricsTask(interval SystemMetricsInterval) *metrics.SystemCollector {
	return metrics.NewSystemCollector(time.Duration(interval))
}

func provideTaskList(
	orderStatsTask *order_stats.OrderStats,
	rateLimiterPruneTask *rate_limiter_prune.RateLimiterPrune,
	systemMetricsTask *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		orderStatsTask,
		rateLimiterPruneTask,
		systemMetricsTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
