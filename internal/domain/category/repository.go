package category

import (
	"context"
	"time"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	// SpendByMonth returns every category with its non-rejected spend for the month.
	SpendByMonth(ctx context.Context, monthYear time.Time) ([]CategorySpend, error)
}
