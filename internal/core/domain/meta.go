package domain

import "time"

// Meta carries the identity and timestamp fields shared by every
// persisted entity. Embed it with bson:",inline" so the fields land at
// the document root.
type Meta struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`

	// Pending marks an optimistic cache placeholder that has not been
	// confirmed by the database yet. It is never persisted.
	Pending bool `json:"pending,omitempty" bson:"-"`
}

// EntityID returns the entity's identifier.
func (m *Meta) EntityID() string { return m.ID }

// SetEntityID assigns the entity's identifier.
func (m *Meta) SetEntityID(id string) { m.ID = id }

// Touch stamps the entity timestamps. CreatedAt is only set on first insert.
func (m *Meta) Touch(now time.Time, isNew bool) {
	if isNew {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// MarkPending flags the entity as an optimistic placeholder.
func (m *Meta) MarkPending(pending bool) { m.Pending = pending }

// CreatedStamp returns the creation time.
func (m *Meta) CreatedStamp() time.Time { return m.CreatedAt }

// SetCreatedStamp restores the creation time, used when a full-document
// update must not lose the original stamp.
func (m *Meta) SetCreatedStamp(t time.Time) { m.CreatedAt = t }

// Defaulter is implemented by entities that need fields filled in
// before their first insert.
type Defaulter interface {
	ApplyDefaults()
}

// Entity is the contract every persisted aggregate satisfies through Meta.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	Touch(now time.Time, isNew bool)
	MarkPending(pending bool)
	CreatedStamp() time.Time
	SetCreatedStamp(t time.Time)
}
