package order_stats

import (
	"context"
	"fmt"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var OrdersByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "orders_by_status",
		Help: "Number of stored orders per status",
	},
	[]string{"status"},
)

type Repository interface {
	CountByStatus(ctx context.Context) (map[entities.OrderStatusType]int, error)
}

type OrderStats struct {
	log        logger.Logger
	repository Repository
	interval   time.Duration
}

func NewOrderStats(log logger.Logger, repository Repository, interval time.Duration) *OrderStats {
	return &OrderStats{
		log:        log,
		repository: repository,
		interval:   interval,
	}
}

func (o *OrderStats) TTL() time.Duration {
	return o.interval
}

func (o *OrderStats) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	counts, err := o.repository.CountByStatus(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("count orders by status: %w", err)
	}

	total := 0
	for _, status := range entities.OrderStatuses {
		OrdersByStatus.WithLabelValues(status.String()).Set(float64(counts[status]))
		total += counts[status]
	}

	if counts[entities.OrderPaymentReview] > 0 {
		o.log.With(
			logger.NewField("awaiting_review", counts[entities.OrderPaymentReview]),
			logger.NewField("total", total),
		).Info("order stats")
	}

	return nil
}

func (o *OrderStats) Info() string {
	return "order stats"
}
