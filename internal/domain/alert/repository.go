package alert

import "context"

type Repository interface {
	// Create inserts the alert. It returns ErrDuplicateAlert when the
	// reference is already taken.
	Create(ctx context.Context, a Alert) (Alert, error)
	List(ctx context.Context, filter AlertFilter) ([]Alert, error)
	Resolve(ctx context.Context, id string) error
}
