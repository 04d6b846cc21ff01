package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/beacon/core/user"
)

type userRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) GetUserByID(ctx context.Context, id uint) (user.User, error) {
	var usr user.User
	if err := repo.db.WithContext(ctx).First(&usr, id).Error; err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by id")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&usr).Error; err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return usr, nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.WithContext(ctx).Create(&usr).Error; err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}
