package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trezcool/beacon/core/category"
)

type categoryRepository struct {
	db *gorm.DB
}

var _ category.Repository = (*categoryRepository)(nil) // interface compliance check

func NewCategoryRepository(db *gorm.DB) *categoryRepository {
	return &categoryRepository{db: db}
}

func (repo categoryRepository) QueryAllCategories(ctx context.Context) ([]category.Category, error) {
	var cats []category.Category
	err := repo.db.WithContext(ctx).
		Order("category ASC, subcategory ASC").
		Find(&cats).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	return cats, nil
}

func (repo categoryRepository) GetCategoriesByID(ctx context.Context, ids []uint) ([]category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cats []category.Category
	err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&cats).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying categories by id")
	}
	return cats, nil
}

// CreateCategories inserts categories, silently skipping pairs already present
// so seed loads can be replayed.
func (repo categoryRepository) CreateCategories(ctx context.Context, cats []category.Category) error {
	if len(cats) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cats).Error
	if err != nil {
		return errors.Wrap(err, "inserting categories")
	}
	return nil
}
