// internal/core/ports/session.go
package ports

import (
	"context"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// SessionReader gives read access to the stored credential.
// A missing session is not an error: Get returns the zero Session.
type SessionReader interface {
	Get(ctx context.Context) (domain.Session, error)
}

// SessionStore is the durable key/value store holding the token and user profile
type SessionStore interface {
	SessionReader
	Set(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
