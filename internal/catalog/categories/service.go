package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create stores a category, deriving the slug from the name when absent.
func (s *Service) Create(ctx context.Context, name, slug string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return Category{}, fmt.Errorf("%w: category slug cannot be derived from name", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, Category{Name: name, Slug: slug})
}
