package review

import (
	"encoding/json"
	"fmt"
	"time"
)

const maxAnnotationLength = 5000

// Annotation is a reviewer note pinned to a point on an asset in the viewer.
// Position is opaque viewer coordinates.
type Annotation struct {
	id           uint
	invitationID uint
	assetID      uint
	authorEmail  string
	content      string
	position     json.RawMessage
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAnnotation(invitationID, assetID uint, authorEmail, content string, position json.RawMessage, now time.Time) (*Annotation, error) {
	if err := validateAnnotation(content, position); err != nil {
		return nil, err
	}
	return &Annotation{
		invitationID: invitationID,
		assetID:      assetID,
		authorEmail:  authorEmail,
		content:      content,
		position:     position,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructAnnotation(id, invitationID, assetID uint, authorEmail, content string, position json.RawMessage, createdAt, updatedAt time.Time) *Annotation {
	return &Annotation{
		id:           id,
		invitationID: invitationID,
		assetID:      assetID,
		authorEmail:  authorEmail,
		content:      content,
		position:     position,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func validateAnnotation(content string, position json.RawMessage) error {
	if content == "" {
		return fmt.Errorf("annotation content is required")
	}
	if len(content) > maxAnnotationLength {
		return fmt.Errorf("annotation content exceeds maximum length of %d characters", maxAnnotationLength)
	}
	if len(position) > 0 && !json.Valid(position) {
		return fmt.Errorf("annotation position must be valid JSON")
	}
	return nil
}

// Edit replaces content and, when given, position.
func (a *Annotation) Edit(content string, position json.RawMessage, now time.Time) error {
	if position == nil {
		position = a.position
	}
	if err := validateAnnotation(content, position); err != nil {
		return err
	}
	a.content = content
	a.position = position
	a.updatedAt = now
	return nil
}

func (a *Annotation) ID() uint                  { return a.id }
func (a *Annotation) InvitationID() uint        { return a.invitationID }
func (a *Annotation) AssetID() uint             { return a.assetID }
func (a *Annotation) AuthorEmail() string       { return a.authorEmail }
func (a *Annotation) Content() string           { return a.content }
func (a *Annotation) Position() json.RawMessage { return a.position }
func (a *Annotation) CreatedAt() time.Time      { return a.createdAt }
func (a *Annotation) UpdatedAt() time.Time      { return a.updatedAt }

func (a *Annotation) SetID(id uint) { a.id = id }
