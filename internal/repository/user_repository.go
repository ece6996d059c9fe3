package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/model"
)

// UserRepository is the Directory: user lookup and manager edges.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindIDsByManager(ctx context.Context, managerID uint) ([]uint, error)
	CompanyIDOf(ctx context.Context, id uint) (uint, error)
	GetByManagerID(ctx context.Context, managerID uint) ([]model.User, error)
	GetAll(ctx context.Context, companyID uint, search string) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Manager").First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (r *userRepository) FindIDsByManager(ctx context.Context, managerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("manager_id = ?", managerID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *userRepository) CompanyIDOf(ctx context.Context, id uint) (uint, error) {
	var user model.User
	err := r.db.WithContext(ctx).Select("id", "company_id").First(&user, id).Error
	if err != nil {
		return 0, notFound(err, "user", id)
	}
	return user.CompanyID, nil
}

func (r *userRepository) GetByManagerID(ctx context.Context, managerID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("name").Find(&users).Error
	return users, err
}

func (r *userRepository) GetAll(ctx context.Context, companyID uint, search string) ([]model.User, error) {
	var users []model.User
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", searchPattern, searchPattern)
	}

	err := query.Order("name").Find(&users).Error
	return users, err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
