package catalog

import (
	"fmt"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

// Room is a named, capacity-bounded physical resource. Identity is by name:
// two rooms with the same name are the same room. A room may be shared by many
// sections as long as their schedules do not overlap.
type Room struct {
	name        shared.RoomName
	maxCapacity int
}

// NewRoom creates a room with a non-blank alphanumeric name and a positive
// maximum capacity.
func NewRoom(name string, maxCapacity int) (*Room, error) {
	roomName, err := shared.NewRoomName(name)
	if err != nil {
		return nil, err
	}
	if maxCapacity <= 0 {
		return nil, shared.NewDomainError("catalog", "NewRoom", shared.ErrValueOutOfRange,
			fmt.Sprintf("max capacity must be greater than 0, was: %d", maxCapacity))
	}
	return &Room{name: roomName, maxCapacity: maxCapacity}, nil
}

// Name returns the room name.
func (r *Room) Name() shared.RoomName {
	return r.name
}

// MaxCapacity returns the maximum number of enlistees the room admits.
func (r *Room) MaxCapacity() int {
	return r.maxCapacity
}

// CheckOverCapacity fails when the current enlistee count has already reached
// the room's capacity. The check runs strictly before the count is
// incremented, so a room of capacity N admits exactly N enlistees: the Nth
// succeeds and the (N+1)th is rejected.
func (r *Room) CheckOverCapacity(currentCount int) error {
	if currentCount >= r.maxCapacity {
		return shared.NewDomainError("catalog", "CheckOverCapacity", shared.ErrRoomCapacityReached,
			fmt.Sprintf("room %s has reached max capacity of %d", r.name, r.maxCapacity))
	}
	return nil
}

// Equal reports whether two rooms are the same room (same name).
func (r *Room) Equal(other *Room) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.name == other.name
}

// String returns the room name.
func (r *Room) String() string {
	return r.name.String()
}
