package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

// Config holds the addresses and links notifications are rendered with.
type Config struct {
	StoreName     string
	SenderAddress string
	StoreEmail    string
	AdminEmail    string
	DownloadLink  string
	PublicBaseURL string
}

// Dispatcher delivers a single notification intent over its channel.
// Every attempt is journaled; failed attempts are not retried.
type Dispatcher struct {
	cfg       Config
	mailer    Mailer
	chat      ChatSender
	publisher Publisher
	journal   Journal
	clock     Clock
	log       handlerLogger
}

func New(
	cfg Config,
	mailer Mailer,
	chat ChatSender,
	publisher Publisher,
	journal Journal,
	clock Clock,
	log handlerLogger,
) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		mailer:    mailer,
		chat:      chat,
		publisher: publisher,
		journal:   journal,
		clock:     clock,
		log:       log.With(logger.NewField("component", "notification_dispatcher")),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent entities.Intent) error {
	started := d.clock.Now()
	sendErr := d.send(ctx, intent)
	NotificationDuration.WithLabelValues(intent.Channel.String()).Observe(d.clock.Now().Sub(started).Seconds())

	delivery := entities.Delivery{
		IntentID:    intent.ID,
		OrderID:     intent.Order.ID,
		Event:       intent.Event,
		Channel:     intent.Channel,
		AttemptedAt: started.UTC(),
	}

	log := d.log.With(
		logger.NewField("order_id", intent.Order.ID),
		logger.NewField("event", intent.Event.String()),
		logger.NewField("channel", intent.Channel.String()),
	)

	result := resultSuccess
	if sendErr != nil {
		result = resultFailure
		delivery.Error = sendErr.Error()
		log.With(logger.NewField("error", sendErr)).Warn("notification failed")
	}
	NotificationsTotal.WithLabelValues(intent.Channel.String(), intent.Event.String(), result).Inc()

	// The attempt is journaled even when ctx already hit its deadline.
	if err := d.journal.Record(context.WithoutCancel(ctx), delivery); err != nil {
		log.With(logger.NewField("error", err)).Error("record delivery")
		return errors.Join(sendErr, fmt.Errorf("record delivery: %w", err))
	}

	return sendErr
}

func (d *Dispatcher) send(ctx context.Context, intent entities.Intent) error {
	switch intent.Channel {
	case entities.ChannelAdminEmail:
		return d.sendAdminEmail(ctx, intent)
	case entities.ChannelCustomerEmail:
		return d.sendCustomerEmail(ctx, intent)
	case entities.ChannelChat:
		return d.sendChat(ctx, intent)
	case entities.ChannelRealtime:
		return d.publish(ctx, intent)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChannel, intent.Channel)
	}
}

func (d *Dispatcher) sendAdminEmail(ctx context.Context, intent entities.Intent) error {
	subject, ok := adminSubjects[intent.Event]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, intent.Event)
	}

	body, err := renderEmail("admin_"+intent.Event.String(), d.templateData(intent.Order))
	if err != nil {
		return err
	}

	return d.mailer.Send(ctx, entities.EmailMessage{
		FromName:    d.cfg.StoreName,
		FromAddress: d.cfg.SenderAddress,
		To:          d.cfg.AdminEmail,
		Subject:     subject,
		HTML:        body,
	})
}

func (d *Dispatcher) sendCustomerEmail(ctx context.Context, intent entities.Intent) error {
	if intent.Event != entities.OrderEventApproved {
		return fmt.Errorf("%w: no customer email for %s", ErrUnknownEvent, intent.Event)
	}

	body, err := renderEmail("customer_approved", d.templateData(intent.Order))
	if err != nil {
		return err
	}

	return d.mailer.Send(ctx, entities.EmailMessage{
		FromName:    d.cfg.StoreName,
		FromAddress: d.cfg.StoreEmail,
		To:          intent.Order.Email,
		Subject:     customerApprovedSubject,
		HTML:        body,
	})
}

func (d *Dispatcher) sendChat(ctx context.Context, intent entities.Intent) error {
	text, err := renderChat(intent.Event, d.templateData(intent.Order))
	if err != nil {
		return err
	}
	return d.chat.Send(ctx, text)
}

func (d *Dispatcher) publish(ctx context.Context, intent entities.Intent) error {
	o := intent.Order
	event := entities.RealtimeEvent{
		Name:    entities.RealtimeOrderUpdated,
		OrderID: o.ID,
		Payload: dto.OrderStatusUpdate{
			Id:     o.ID,
			Status: dto.OrderStatus(o.Status),
		},
	}
	if intent.Event == entities.OrderEventCreated {
		event.Name = entities.RealtimeOrderCreated
		event.Payload = dto.Order{
			Id:         o.ID,
			Name:       o.Name,
			Email:      o.Email,
			Phone:      o.Phone,
			Status:     dto.OrderStatus(o.Status),
			Screenshot: o.Screenshot,
			CreatedAt:  o.CreatedAt,
		}
	}
	return d.publisher.Publish(ctx, event)
}
