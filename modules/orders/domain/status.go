package domain

// Status is an order's fulfillment label. It is deliberately an open
// type: sellers may set any label, and the well-known constants below
// are only the ones the stock storefront uses.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string { return string(s) }
