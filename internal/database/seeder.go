package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sales-activity-backend/internal/model"
)

const (
	seedCompanyID = 1
	seedPassword  = "password123"
)

type seedUser struct {
	Email   string
	Name    string
	Role    model.Role
	Manager string // email of the direct manager
}

// Ordered so that every manager is created before its reports.
var seedUsers = []seedUser{
	{Email: "ceo@example.com", Name: "Citra Ceo", Role: model.RoleCEO},
	{Email: "director@example.com", Name: "Dimas Director", Role: model.RoleSD, Manager: "ceo@example.com"},
	{Email: "manager@example.com", Name: "Maya Manager", Role: model.RoleSM, Manager: "director@example.com"},
	{Email: "supervisor.a@example.com", Name: "Surya Supervisor", Role: model.RoleSUP, Manager: "manager@example.com"},
	{Email: "supervisor.b@example.com", Name: "Sinta Supervisor", Role: model.RoleSUP, Manager: "manager@example.com"},
	{Email: "rep.a1@example.com", Name: "Rizky Rep", Role: model.RoleSR, Manager: "supervisor.a@example.com"},
	{Email: "rep.a2@example.com", Name: "Rina Rep", Role: model.RoleSR, Manager: "supervisor.a@example.com"},
	{Email: "rep.b1@example.com", Name: "Rudi Rep", Role: model.RoleSR, Manager: "supervisor.b@example.com"},
}

var seedActivities = []model.Activity{
	{Code: "DETAILING", Name: "Product detailing", IsActive: true},
	{Code: "SAMPLING", Name: "Sample distribution", IsActive: true},
	{Code: "ORDER_TAKING", Name: "Order taking", IsActive: true},
	{Code: "MERCHANDISING", Name: "Display merchandising", IsActive: true},
	{Code: "COLLECTION", Name: "Payment collection", IsActive: true},
}

func ptr[T any](v T) *T { return &v }

// SeedAll is idempotent: rows are matched on email, code or name.
func SeedAll(db *gorm.DB, logger logrus.FieldLogger) error {
	// 1. Users, top of the hierarchy first
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ids := map[string]uint{}
	for _, su := range seedUsers {
		user := model.User{
			CompanyID: seedCompanyID,
			Role:      su.Role,
			Name:      su.Name,
			Email:     su.Email,
			Password:  string(hashed),
			IsActive:  true,
		}
		if su.Manager != "" {
			managerID, ok := ids[su.Manager]
			if !ok {
				return fmt.Errorf("seed user %s: manager %s not seeded yet", su.Email, su.Manager)
			}
			user.ManagerID = &managerID
		}
		if err := db.Where(model.User{Email: su.Email}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		ids[su.Email] = user.ID
	}
	logger.WithField("count", len(seedUsers)).Info("seeded users")

	// 2. Activity master
	for _, a := range seedActivities {
		activity := a
		if err := db.Where(model.Activity{Code: activity.Code}).FirstOrCreate(&activity).Error; err != nil {
			return fmt.Errorf("seed activity %s: %w", activity.Code, err)
		}
	}
	logger.WithField("count", len(seedActivities)).Info("seeded activities")

	// 3. Customers with registered coordinates, and one without
	customers := []model.Customer{
		{
			CompanyID: seedCompanyID,
			Name:      "Apotek Sehat Sentosa",
			Address:   "Jl. Sudirman No. 10, Jakarta",
			Latitude:  ptr(-6.208763),
			Longitude: ptr(106.845599),
			Contacts: []model.Contact{
				{Name: "Ibu Sari", Position: "Owner", Phone: "081200000001"},
				{Name: "Pak Joko", Position: "Pharmacist", Phone: "081200000002"},
			},
		},
		{
			CompanyID: seedCompanyID,
			Name:      "Toko Maju Jaya",
			Address:   "Jl. Gatot Subroto No. 5, Jakarta",
			Latitude:  ptr(-6.234420),
			Longitude: ptr(106.822530),
			Contacts: []model.Contact{
				{Name: "Pak Budi", Position: "Purchasing", Phone: "081200000003"},
			},
		},
		{
			CompanyID: seedCompanyID,
			Name:      "Klinik Pratama Baru",
			Address:   "Jl. Kemang Raya No. 21, Jakarta",
			Contacts: []model.Contact{
				{Name: "dr. Andi", Position: "Head of Clinic", Email: "andi@klinik.example"},
			},
		},
	}
	for _, c := range customers {
		customer := c
		var existing model.Customer
		err := db.Where("company_id = ? AND name = ?", customer.CompanyID, customer.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed customer %s: %w", customer.Name, err)
		}
		if err := db.Create(&customer).Error; err != nil {
			return fmt.Errorf("seed customer %s: %w", customer.Name, err)
		}
	}
	logger.WithField("count", len(customers)).Info("seeded customers")
	return nil
}
