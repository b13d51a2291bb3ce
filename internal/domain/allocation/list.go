package allocation

import (
	"fmt"
	"time"
)

// List is a named batch binding one user to a set of assets with shared
// deadline and bonus terms. It is never edited after creation; it is deleted
// once no assignment references it.
type List struct {
	id         uint
	name       string
	userID     uint
	role       Role
	assignedBy uint
	deadline   *time.Time
	bonus      float64
	createdAt  time.Time
}

func NewList(name string, userID uint, role Role, assignedBy uint, deadline *time.Time, bonus float64, now time.Time) (*List, error) {
	if name == "" {
		return nil, fmt.Errorf("allocation list name is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("allocation list owner is required")
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if bonus < 0 {
		return nil, fmt.Errorf("bonus cannot be negative")
	}
	return &List{
		name:       name,
		userID:     userID,
		role:       role,
		assignedBy: assignedBy,
		deadline:   deadline,
		bonus:      bonus,
		createdAt:  now,
	}, nil
}

func ReconstructList(id uint, name string, userID uint, role Role, assignedBy uint, deadline *time.Time, bonus float64, createdAt time.Time) *List {
	return &List{
		id:         id,
		name:       name,
		userID:     userID,
		role:       role,
		assignedBy: assignedBy,
		deadline:   deadline,
		bonus:      bonus,
		createdAt:  createdAt,
	}
}

func (l *List) ID() uint             { return l.id }
func (l *List) Name() string         { return l.name }
func (l *List) UserID() uint         { return l.userID }
func (l *List) Role() Role           { return l.role }
func (l *List) AssignedBy() uint     { return l.assignedBy }
func (l *List) Deadline() *time.Time { return l.deadline }
func (l *List) Bonus() float64       { return l.bonus }
func (l *List) CreatedAt() time.Time { return l.createdAt }

func (l *List) SetID(id uint) { l.id = id }
