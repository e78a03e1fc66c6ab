// Package session tags one end-to-end analysis run with a correlation id,
// the way funxy uses github.com/google/uuid to correlate generated
// identities. The CLI prints the id in its progress lines, and the
// analyzer keeps it on its Context.
package session

import "github.com/google/uuid"

// Session carries one run's id. Diagnostics and the analyzed Program do
// not carry it.
type Session struct {
	ID uuid.UUID
}

// New starts a session with a fresh run id.
func New() Session {
	return Session{ID: uuid.New()}
}

func (s Session) String() string {
	return s.ID.String()
}
