package usecase

import (
	"context"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

type UserUsecase struct {
	repo   repository.UserRepository
	policy *access.Policy
}

func NewUserUsecase(repo repository.UserRepository, policy *access.Policy) *UserUsecase {
	return &UserUsecase{repo: repo, policy: policy}
}

func (u *UserUsecase) Profile(ctx context.Context, id uint) (*model.User, error) {
	return u.repo.FindByID(ctx, id)
}

// Subordinates lists direct reports only, matching the SUP listing scope.
func (u *UserUsecase) Subordinates(ctx context.Context, actorID uint) ([]model.User, error) {
	actor, err := u.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return u.repo.GetByManagerID(ctx, actor.ID)
}

// GetUser applies the user-data check, not the call-activity one, so a CEO
// may look up any user of their company here.
func (u *UserUsecase) GetUser(ctx context.Context, actorID, targetID uint) (*model.User, error) {
	actor, err := u.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := u.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.EnsureCanViewUser(ctx, actor, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}
