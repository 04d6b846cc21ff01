package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/vendor"
)

type vendorRepository struct {
	db   *gorm.DB
	cats categoryRepository
}

var _ vendor.Repository = (*vendorRepository)(nil) // interface compliance check

func NewVendorRepository(db *gorm.DB) *vendorRepository {
	return &vendorRepository{db: db, cats: categoryRepository{db: db}}
}

func orderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("category.id ASC")
}

func (repo vendorRepository) GetVendorByEmail(ctx context.Context, email string) (vendor.Vendor, error) {
	var vnd vendor.Vendor
	err := repo.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Where("email = ?", email).
		First(&vnd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vendor.Vendor{}, vendor.ErrNotFound
		}
		return vendor.Vendor{}, errors.Wrap(err, "finding vendor by email")
	}
	return vnd, nil
}

func (repo vendorRepository) CreateVendor(ctx context.Context, vnd vendor.Vendor) (vendor.Vendor, error) {
	if err := repo.db.WithContext(ctx).Create(&vnd).Error; err != nil {
		return vendor.Vendor{}, errors.Wrap(err, "inserting vendor")
	}
	return vnd, nil
}

// vendorColumns is the allow-list of profile fields a signup update may overwrite.
var vendorColumns = []string{
	"email", "business_name", "first_name", "last_name", "phone_number",
	"minority_owned", "woman_owned", "veteran_owned", "disadvantaged_owned",
}

func (repo vendorRepository) UpdateVendor(ctx context.Context, vnd vendor.Vendor) (vendor.Vendor, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&vendor.Vendor{ID: vnd.ID}).
			Select(vendorColumns).
			Updates(&vnd).Error; err != nil {
			return errors.Wrap(err, "updating vendor")
		}
		if err := tx.Model(&vnd).
			Association("Categories").
			Replace(&vnd.Categories); err != nil {
			return errors.Wrap(err, "replacing vendor categories")
		}
		return nil
	})
	if err != nil {
		return vendor.Vendor{}, err
	}
	return repo.GetVendorByEmail(ctx, vnd.Email)
}

func (repo vendorRepository) RemoveVendorCategories(ctx context.Context, vendorID uint, catIDs []uint) error {
	if len(catIDs) == 0 {
		return nil
	}
	// single statement; removing an absent membership is a no-op
	err := repo.db.WithContext(ctx).
		Exec("DELETE FROM vendor_categories WHERE vendor_id = ? AND category_id IN ?", vendorID, catIDs).Error
	return errors.Wrap(err, "removing vendor categories")
}

func (repo vendorRepository) GetCategoriesByID(ctx context.Context, ids []uint) ([]category.Category, error) {
	return repo.cats.GetCategoriesByID(ctx, ids)
}
