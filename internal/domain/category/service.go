package category

import "context"

type CategoryService interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	GetSpend(ctx context.Context, monthYear string) ([]CategorySpendResponse, error)
}
