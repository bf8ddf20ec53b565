package world

import "time"

// UserID is the opaque identity supplied by the session provider.
type UserID string

type User struct {
	ID                UserID  `json:"id"`
	OriginalDoorID    *uint64 `json:"original_door_id,omitempty"`
	CurrentDoorNumber int     `json:"current_door_number"`
	GriefCount        int     `json:"grief_count"`
	Energy            int     `json:"energy"`
	Version           int64   `json:"version"`
}

// Door is a per-user space. A nil Occupant means the door is vacant.
type Door struct {
	ID       uint64  `json:"id"`
	Owner    UserID  `json:"owner"`
	Occupant *UserID `json:"occupant,omitempty"`
	Number   int     `json:"number"`
	Version  int64   `json:"version"`
}

func (d Door) Vacant() bool {
	return d.Occupant == nil
}

func (d Door) OccupiedBy(id UserID) bool {
	return d.Occupant != nil && *d.Occupant == id
}

type Position struct {
	X   uint32 `json:"x"`
	Y   uint32 `json:"y"`
	Rot uint32 `json:"rot"`
}

type Decor struct {
	ID           uint64     `json:"id"`
	DoorID       uint64     `json:"door_id"`
	Owner        UserID     `json:"owner"`
	Text         *string    `json:"text,omitempty"`
	Position     Position   `json:"position"`
	Key          string     `json:"key"`
	LastModifier UserID     `json:"last_modifier"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func (d Decor) Deleted() bool {
	return d.DeletedAt != nil
}

type Visit struct {
	Visitor UserID `json:"visitor"`
	DoorID  uint64 `json:"door_id"`
}

type InteractionKind string

const InteractionLike InteractionKind = "like"

type Interaction struct {
	ID     uint64          `json:"id"`
	Actor  UserID          `json:"actor"`
	Target UserID          `json:"target"`
	Kind   InteractionKind `json:"kind"`
}

type InventoryItem struct {
	ID    uint64 `json:"id"`
	Owner UserID `json:"owner"`
	Key   string `json:"key"`
}

type Package struct {
	ID     uint64 `json:"id"`
	DoorID uint64 `json:"door_id"`
}

type PackageItem struct {
	ID        uint64 `json:"id"`
	PackageID uint64 `json:"package_id"`
	Key       string `json:"key"`
}

// VisitedDoors collapses visit records into the set of distinct door ids.
func VisitedDoors(visits []Visit) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(visits))
	for _, v := range visits {
		out[v.DoorID] = struct{}{}
	}
	return out
}
