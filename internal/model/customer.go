package model

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	CompanyID   uint     `json:"company_id" gorm:"index"`
	TerritoryID *uint    `json:"territory_id"`
	Name        string   `json:"name" gorm:"not null"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"` // Registered location, optional
	Longitude   *float64 `json:"longitude"`

	Contacts []Contact `json:"contacts,omitempty"`
}

// HasLocation reports whether the customer has registered coordinates.
func (c *Customer) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

type Contact struct {
	gorm.Model
	CustomerID uint   `json:"customer_id" gorm:"index"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Activity is a master entry that call reports reference in activities_done.
type Activity struct {
	gorm.Model
	Code     string `json:"code" gorm:"unique;not null"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
