package freshdesk

// TicketStatus enumerates Freshdesk ticket states.
type TicketStatus int

const (
	StatusOpen     TicketStatus = 2
	StatusPending  TicketStatus = 3
	StatusResolved TicketStatus = 4
	StatusClosed   TicketStatus = 5
)

// TicketPriority enumerates Freshdesk urgency levels.
type TicketPriority int

const (
	PriorityLow    TicketPriority = 1
	PriorityMedium TicketPriority = 2
	PriorityHigh   TicketPriority = 3
	PriorityUrgent TicketPriority = 4
)

// TicketRequest is the payload sent to the Freshdesk ticket-creation
// endpoint. It is built fresh for every submission and discarded once
// the call resolves.
type TicketRequest struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Description  string            `json:"description"`
	Status       TicketStatus      `json:"status"`
	Priority     TicketPriority    `json:"priority"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// NewTicketRequest builds a ticket payload with the defaults used for
// contact-form submissions: status Open, priority Low.
func NewTicketRequest(name, email, description string) TicketRequest {
	return TicketRequest{
		Name:        name,
		Email:       email,
		Description: description,
		Status:      StatusOpen,
		Priority:    PriorityLow,
	}
}

// CreatedTicket carries the fields the bridge cares about from a
// successful creation response. Everything else Freshdesk returns is
// ignored.
type CreatedTicket struct {
	ID int64 `json:"id"`
}
