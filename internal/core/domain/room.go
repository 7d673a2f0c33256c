package domain

import "time"

// RoomStatus represents the housekeeping lifecycle of a room.
type RoomStatus string

const (
	RoomAvailable    RoomStatus = "available"
	RoomOccupied     RoomStatus = "occupied"
	RoomCleaning     RoomStatus = "cleaning"
	RoomMaintenance  RoomStatus = "maintenance"
	RoomOutOfService RoomStatus = "out_of_service"
)

// validRoomTransitions defines the allowed housekeeping transitions.
var validRoomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:    {RoomOccupied, RoomMaintenance, RoomOutOfService},
	RoomOccupied:     {RoomCleaning},
	RoomCleaning:     {RoomAvailable, RoomMaintenance},
	RoomMaintenance:  {RoomAvailable, RoomOutOfService},
	RoomOutOfService: {RoomMaintenance},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	for _, allowed := range validRoomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Room is a unit of a hotel's inventory. Number is unique per hotel.
type Room struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	HotelID   string     `json:"hotel_id" bson:"hotel_id"`
	Number    string     `json:"number" bson:"number"`
	Floor     int        `json:"floor" bson:"floor"`
	Type      string     `json:"type" bson:"type"`
	Status    RoomStatus `json:"status" bson:"status"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}
