package domain

import "time"

// TicketStatus represents the lifecycle state of a service request.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketCancelled  TicketStatus = "cancelled"
)

var validTicketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketInProgress, TicketCancelled},
	TicketInProgress: {TicketResolved, TicketCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range validTicketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TicketHistoryEntry records a single status change on a ticket.
type TicketHistoryEntry struct {
	Status    TicketStatus `json:"status" bson:"status"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
	Actor     string       `json:"actor,omitempty" bson:"actor,omitempty"`
	Notes     string       `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Ticket is a guest or staff service request scoped to one room of one hotel.
type Ticket struct {
	ID          string               `json:"id" bson:"_id,omitempty"`
	HotelID     string               `json:"hotel_id" bson:"hotel_id"`
	RoomNumber  string               `json:"room_number" bson:"room_number"`
	Category    string               `json:"category" bson:"category"`
	Description string               `json:"description" bson:"description"`
	Status      TicketStatus         `json:"status" bson:"status"`
	RequestedBy string               `json:"requested_by" bson:"requested_by"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
	History     []TicketHistoryEntry `json:"history" bson:"history"`
}
