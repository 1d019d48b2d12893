package category

import (
	"context"
	"strings"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
)

type CategoryServiceImpl struct {
	categoryRepo category.CategoryRepository
	now          func() time.Time
}

func NewCategoryService(categoryRepo category.CategoryRepository) category.CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo, now: time.Now}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]category.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]category.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, category.ToResponse(c))
	}
	return resp, nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}

	created, err := s.categoryRepo.Create(ctx, category.Category{
		Name:        req.Name,
		BudgetLimit: req.BudgetLimit,
		Description: req.Description,
	})
	if err != nil {
		return category.CategoryResponse{}, err
	}
	return category.ToResponse(created), nil
}

// GetSpend returns spend per category for monthYear, or the current month when empty.
func (s *CategoryServiceImpl) GetSpend(ctx context.Context, monthYear string) ([]category.CategorySpendResponse, error) {
	now := s.now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if monthYear != "" {
		parsed, ok := validator.ParseMonth(monthYear)
		if !ok {
			return nil, validator.ValidationErrors{{Field: "month_year", Message: "must be YYYY-MM or YYYY-MM-DD"}}
		}
		month = parsed
	}

	spends, err := s.categoryRepo.SpendByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	resp := make([]category.CategorySpendResponse, 0, len(spends))
	for _, sp := range spends {
		resp = append(resp, category.ToSpendResponse(sp))
	}
	return resp, nil
}
