package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kursadbilgin/albumbot/internal/domain"
	"github.com/kursadbilgin/albumbot/internal/provider"
	"github.com/kursadbilgin/albumbot/internal/retry"
	"go.uber.org/zap"
)

const sendOperation = "send message"

// Notifier delivers announcements to the chat webhook.
//
// Delivery is at-least-once: a POST whose response is lost after the webhook accepted
// it is retried like any other failure and can produce a duplicate post.
type Notifier struct {
	sender   provider.MessageSender
	executor *retry.Executor
}

func NewNotifier(sender provider.MessageSender, executor *retry.Executor) (*Notifier, error) {
	if sender == nil {
		return nil, fmt.Errorf("message sender is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("retry executor is required")
	}

	return &Notifier{
		sender:   sender,
		executor: executor,
	}, nil
}

func (n *Notifier) Notify(ctx context.Context, message domain.OutboundMessage, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := message.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	resp, err := retry.Do(ctx, n.executor.WithLogger(logger), sendOperation,
		func(ctx context.Context) (*provider.ProviderResponse, error) {
			return n.sender.Send(ctx, message)
		},
	)
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return fmt.Errorf("%w: %w", domain.ErrDeliveryExhausted, err)
		}
		return err
	}

	fields := []zap.Field{zap.String("text", message.Text)}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode))
		if resp.MessageID != "" {
			fields = append(fields, zap.String("providerMessageId", resp.MessageID))
		}
	}
	logger.Info("message sent", fields...)

	return nil
}
