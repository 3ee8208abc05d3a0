// internal/core/ports/resource.go
package ports

import (
	"context"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// ResourceGateway is the remote CRUD surface of one paginated collection.
// T is the item type, P the create/update payload.
type ResourceGateway[T any, P any] interface {
	List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error)
	Create(ctx context.Context, payload P) error
	Update(ctx context.Context, id domain.ID, payload P) error
	Remove(ctx context.Context, id domain.ID) error
}

// Validatable is implemented by payloads that can be checked before sending
type Validatable interface {
	Validate() error
}
