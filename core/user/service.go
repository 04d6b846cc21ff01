package user

import (
	"context"
	"errors"

	"github.com/trezcool/beacon/core"
)

var ErrNotFound = errors.New("user not found")

type (
	Repository interface {
		GetUserByEmail(ctx context.Context, email string) (User, error)
		GetUserByID(ctx context.Context, id uint) (User, error)
		CreateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id uint) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// GetOrCreateContact returns the user matching email, creating a placeholder
// staff account scoped to department when none exists.
func (svc *Service) GetOrCreateContact(ctx context.Context, email, department string) (User, error) {
	email = core.CleanString(email, true /* lower */)

	usr, err := svc.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return usr, nil
	case errors.Is(err, ErrNotFound):
		return svc.repo.CreateUser(ctx, User{
			Email:      email,
			RoleID:     RoleStaff,
			Department: department,
		})
	default:
		return User{}, err
	}
}
