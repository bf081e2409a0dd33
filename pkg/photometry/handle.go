package photometry

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one published version of a field.
type Snapshot struct {
	Revision uuid.UUID
	Field    *Field
	Created  time.Time
}

// Handle publishes fields to concurrent readers. Edits build a new field
// and swap it in whole; readers hold on to the snapshot they loaded.
type Handle struct {
	current atomic.Pointer[Snapshot]
}

// NewHandle returns a handle publishing field.
func NewHandle(field *Field) *Handle {
	h := &Handle{}
	h.current.Store(newSnapshot(field))
	return h
}

func newSnapshot(field *Field) *Snapshot {
	return &Snapshot{
		Revision: uuid.New(),
		Field:    field,
		Created:  time.Now(),
	}
}

// Load returns the current snapshot.
func (h *Handle) Load() *Snapshot {
	return h.current.Load()
}

// Replace publishes field unconditionally.
func (h *Handle) Replace(field *Field) *Snapshot {
	s := newSnapshot(field)
	h.current.Store(s)
	return s
}

// Apply derives a new field from the current one and publishes it. If
// another writer published in between, edit runs again on the newer field.
// An edit error leaves the current snapshot in place.
func (h *Handle) Apply(edit func(*Field) (*Field, error)) (*Snapshot, error) {
	for {
		old := h.current.Load()
		field, err := edit(old.Field)
		if err != nil {
			return nil, err
		}
		if field == nil {
			return nil, ErrEmptyDomain
		}
		next := newSnapshot(field)
		if h.current.CompareAndSwap(old, next) {
			return next, nil
		}
	}
}
