package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Notifier sends order notifications in the background. Failures are logged
// and never reach the caller.
type Notifier struct {
	mailer      Mailer
	broadcaster Broadcaster
	timeout     time.Duration
	logger      zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotifier creates a notifier. A zero timeout selects the default.
func NewNotifier(mailer Mailer, broadcaster Broadcaster, timeout time.Duration, logger zerolog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		mailer:      mailer,
		broadcaster: broadcaster,
		timeout:     timeout,
		logger:      logger.With().Str("component", "notifier").Logger(),
	}
}

// OrderPlaced broadcasts the new order to admins.
func (n *Notifier) OrderPlaced(order model.Order) {
	event := Event{Name: EventOrderCreated, Order: model.NewOrderEvent(&order)}
	n.dispatch("order_placed", order.ID.String(), func(ctx context.Context) error {
		return n.broadcaster.Publish(ctx, ChannelAdmin, event)
	})
}

// OrderConfirmed emails the customer that their order is being processed.
func (n *Notifier) OrderConfirmed(order model.Order) {
	if order.CustomerEmail == "" {
		n.logger.Warn().Str("order_id", order.ID.String()).Msg("no customer email, confirmation not sent")
		return
	}
	msg := ConfirmationMessage(order)
	n.dispatch("order_confirmed", order.ID.String(), func(ctx context.Context) error {
		return n.mailer.Send(ctx, msg)
	})
}

func (n *Notifier) dispatch(kind, orderID string, fn func(ctx context.Context) error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		n.logger.Warn().Str("kind", kind).Str("order_id", orderID).Msg("notifier closed, notification dropped")
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error().Interface("panic", r).Str("kind", kind).Str("order_id", orderID).Msg("notification panicked")
			}
		}()

		// Detached from the request so a finished response does not cancel delivery.
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			n.logger.Error().Err(err).Str("kind", kind).Str("order_id", orderID).Msg("notification failed")
			return
		}
		n.logger.Debug().Str("kind", kind).Str("order_id", orderID).Msg("notification delivered")
	}()
}

// Close stops accepting notifications and waits for in-flight ones.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.wg.Wait()
}

// ConfirmationMessage is the email sent when an admin confirms an order.
func ConfirmationMessage(order model.Order) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Your order %s has been confirmed and is now being processed.\n\n", order.ID)
	fmt.Fprintf(&b, "Subtotal:     %s\n", FormatVND(order.Subtotal))
	fmt.Fprintf(&b, "Shipping fee: %s\n", FormatVND(order.ShippingFee))
	fmt.Fprintf(&b, "Total:        %s\n", FormatVND(order.TotalPrice))
	fmt.Fprintf(&b, "Payment:      %s\n\n", order.PaymentMethod)
	b.WriteString("Thank you for shopping with us.\n")

	return Message{
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Order %s confirmed", order.ID),
		Body:    b.String(),
	}
}

// FormatVND renders an amount with dot thousand separators, e.g. 1.530.000 ₫.
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(d)
	}
	return sign + out.String() + " ₫"
}
