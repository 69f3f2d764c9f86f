package valueobjects

type Status string

const (
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

// StatusFromProvider maps a payment-provider subscription status. Anything
// other than "active" is stored verbatim so trialing, unpaid and similar
// states stay visible.
func StatusFromProvider(providerStatus string) Status {
	if providerStatus == "" || providerStatus == string(StatusActive) {
		return StatusActive
	}
	return Status(providerStatus)
}
