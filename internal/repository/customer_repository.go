package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/model"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	FindContact(ctx context.Context, customerID, contactID uint) (*model.Contact, error)
	GetAll(ctx context.Context, companyID uint, search string) ([]model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db}
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Preload("Contacts").First(&customer, id).Error
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return &customer, nil
}

// FindContact only matches a contact that belongs to the customer.
func (r *customerRepository) FindContact(ctx context.Context, customerID, contactID uint) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", contactID, customerID).
		First(&contact).Error
	if err != nil {
		return nil, notFound(err, "contact", contactID)
	}
	return &contact, nil
}

func (r *customerRepository) GetAll(ctx context.Context, companyID uint, search string) ([]model.Customer, error) {
	var customers []model.Customer
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	err := query.Order("name").Find(&customers).Error
	return customers, err
}
