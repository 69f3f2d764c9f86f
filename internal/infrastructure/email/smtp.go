package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
)

// zeroDecimal lists currencies whose Stripe amounts are already in major units.
var zeroDecimal = map[string]bool{"jpy": true, "krw": true, "vnd": true, "clp": true}

type SMTPDunningNotifier struct {
	config  config.EmailConfig
	siteURL string
	dialer  *gomail.Dialer
	send    func(m *gomail.Message) error
}

func NewSMTPDunningNotifier(cfg config.EmailConfig, siteURL string) *SMTPDunningNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &SMTPDunningNotifier{
		config:  cfg,
		siteURL: strings.TrimRight(siteURL, "/"),
		dialer:  dialer,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// NotifyPaymentFailed asks the customer to update their payment method.
// gomail has no context support, so ctx only short-circuits already
// cancelled sends.
func (s *SMTPDunningNotifier) NotifyPaymentFailed(ctx context.Context, invoice *billing.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if invoice.CustomerEmail == "" {
		return fmt.Errorf("invoice %s has no customer email", invoice.ID)
	}

	link := invoice.HostedInvoiceURL
	if link == "" {
		link = s.siteURL + "/dashboard"
	}
	amount := formatAmount(invoice.AmountDue, invoice.Currency)

	subject := "Your Reelpop payment failed"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>We couldn't process your payment</h2>
			<p>The renewal payment of %s for your Reelpop subscription was declined.</p>
			<p>Please update your payment method to keep generating videos:</p>
			<p><a href="%s">Update payment method</a></p>
			<p>If you have already updated it, you can ignore this email.</p>
		</body>
		</html>
	`, html.EscapeString(amount), html.EscapeString(link))

	plainBody := fmt.Sprintf(`
We couldn't process your payment

The renewal payment of %s for your Reelpop subscription was declined.
Please update your payment method to keep generating videos:
%s

If you have already updated it, you can ignore this email.
	`, amount, link)

	return s.sendEmail(invoice.CustomerEmail, subject, htmlBody, plainBody)
}

func (s *SMTPDunningNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func formatAmount(amount int64, currency string) string {
	currency = strings.ToLower(currency)
	if currency == "" {
		return fmt.Sprintf("%d", amount)
	}
	code := strings.ToUpper(currency)
	if zeroDecimal[currency] {
		return fmt.Sprintf("%d %s", amount, code)
	}
	return fmt.Sprintf("%d.%02d %s", amount/100, amount%100, code)
}
