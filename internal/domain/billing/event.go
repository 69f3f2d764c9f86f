package billing

import "time"

// EventKind is the closed set of payment events the billing core reacts to.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventCheckoutCompleted
	EventSubscriptionUpdated
	EventSubscriptionDeleted
	EventInvoicePaymentSucceeded
	EventInvoicePaymentFailed
)

func (k EventKind) String() string {
	switch k {
	case EventCheckoutCompleted:
		return "checkout_completed"
	case EventSubscriptionUpdated:
		return "subscription_updated"
	case EventSubscriptionDeleted:
		return "subscription_deleted"
	case EventInvoicePaymentSucceeded:
		return "invoice_payment_succeeded"
	case EventInvoicePaymentFailed:
		return "invoice_payment_failed"
	default:
		return "unknown"
	}
}

// BillingReasonCycle marks an invoice raised by a subscription renewal.
const BillingReasonCycle = "subscription_cycle"

// Envelope is a verified but undecoded provider event.
type Envelope struct {
	ID      string
	Type    string
	Payload []byte
}

type CheckoutCompleted struct {
	UserID         string
	Plan           string
	CustomerID     string
	SubscriptionID string
}

// SubscriptionChange carries the provider's view of a subscription. PriceID
// is the first item's price.
type SubscriptionChange struct {
	SubscriptionID    string
	Status            string
	PriceID           string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	CancelAtPeriodEnd bool
}

type Invoice struct {
	ID               string
	SubscriptionID   string
	CustomerEmail    string
	BillingReason    string
	AmountDue        int64
	Currency         string
	HostedInvoiceURL string
}

// IsRenewal reports whether the invoice closes a billing cycle.
func (i *Invoice) IsRenewal() bool {
	return i.BillingReason == BillingReasonCycle
}

// Event is a decoded provider event. Exactly one payload field is set,
// matching Kind; none is set for EventUnknown.
type Event struct {
	ID           string
	Type         string
	Kind         EventKind
	Checkout     *CheckoutCompleted
	Subscription *SubscriptionChange
	Invoice      *Invoice
}
