package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
)

func newTestNotifier(sent *[]*gomail.Message) *SMTPDunningNotifier {
	n := NewSMTPDunningNotifier(config.EmailConfig{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromAddress: "billing@reelpop.example",
		FromName:    "Reelpop",
	}, "https://app.example.com/")
	n.send = func(m *gomail.Message) error {
		*sent = append(*sent, m)
		return nil
	}
	return n
}

func TestNotifyPaymentFailed(t *testing.T) {
	var sent []*gomail.Message
	n := newTestNotifier(&sent)

	err := n.NotifyPaymentFailed(context.Background(), &billing.Invoice{
		ID:            "in_1",
		CustomerEmail: "a@example.com",
		AmountDue:     1980,
		Currency:      "jpy",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	assert.Equal(t, []string{"a@example.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Your Reelpop payment failed"}, sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1980 JPY")
	assert.Contains(t, buf.String(), "https://app.example.com/dashboard")
}

func TestNotifyPaymentFailedErrors(t *testing.T) {
	var sent []*gomail.Message
	n := newTestNotifier(&sent)

	err := n.NotifyPaymentFailed(context.Background(), &billing.Invoice{ID: "in_1"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = n.NotifyPaymentFailed(ctx, &billing.Invoice{ID: "in_1", CustomerEmail: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)

	n.send = func(*gomail.Message) error { return errors.New("connection refused") }
	err = n.NotifyPaymentFailed(context.Background(), &billing.Invoice{ID: "in_1", CustomerEmail: "a@example.com"})
	assert.ErrorContains(t, err, "failed to send email")
	assert.Empty(t, sent)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "19.80 USD", formatAmount(1980, "usd"))
	assert.Equal(t, "1980 JPY", formatAmount(1980, "jpy"))
	assert.Equal(t, "1980", formatAmount(1980, ""))
}
