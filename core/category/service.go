package category

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("category not found")

type (
	Repository interface {
		QueryAllCategories(ctx context.Context) ([]Category, error)
		// GetCategoriesByID resolves ids to categories; ids missing from the
		// store are absent from the result, not an error.
		GetCategoriesByID(ctx context.Context, ids []uint) ([]Category, error)
		CreateCategories(ctx context.Context, cats []Category) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Category, error) {
	return svc.repo.QueryAllCategories(ctx)
}

func (svc *Service) GetByID(ctx context.Context, ids []uint) ([]Category, error) {
	return svc.repo.GetCategoriesByID(ctx, ids)
}

func (svc *Service) Load(ctx context.Context, cats []Category) error {
	return svc.repo.CreateCategories(ctx, cats)
}
