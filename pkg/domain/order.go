package domain

import "time"

// Order lifecycle statuses the reconciler branches on. The portal vocabulary
// is larger; everything else passes through untouched.
const (
	OrderStatusProcessing = "processing"
	OrderStatusClosed     = "closed"
)

// Order is one request tracked by the order portal, associated with one
// owner and one internal project.
type Order struct {
	Identifier string       `json:"identifier"`
	IUID       string       `json:"iuid"`
	Title      string       `json:"title"`
	Owner      OrderOwner   `json:"owner"`
	Status     string       `json:"status"`
	History    OrderHistory `json:"history"`
	Fields     OrderFields  `json:"fields"`
}

// OrderOwner identifies the person who placed the order.
type OrderOwner struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderHistory carries the lifecycle dates the reconciler depends on.
// Closed is empty while the order is open (the portal sends null).
type OrderHistory struct {
	Closed string `json:"closed"`
}

// OrderFields is the portal's free-form fields mapping, narrowed to the keys
// used for joining and filtering.
type OrderFields struct {
	AssignedNode         string `json:"assigned_node"`
	ProjectNGIIdentifier string `json:"project_ngi_identifier"`
	ProjectNGIName       string `json:"project_ngi_name"`
}

// ClosedDate parses the order's closing date. The second return is false for
// orders that have not closed or whose closing date is malformed.
func (o Order) ClosedDate() (time.Time, bool) {
	if o.History.Closed == "" {
		return time.Time{}, false
	}
	closed, err := ParseDate(o.History.Closed)
	if err != nil {
		return time.Time{}, false
	}
	return closed, true
}
