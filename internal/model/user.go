package model

import "gorm.io/gorm"

type Role string

const (
	RoleSR  Role = "SR"
	RoleSUP Role = "SUP"
	RoleSM  Role = "SM"
	RoleSD  Role = "SD"
	RoleCEO Role = "CEO"
)

type User struct {
	gorm.Model
	ManagerID   *uint  `json:"manager_id" gorm:"index"` // Self-reference
	CompanyID   uint   `json:"company_id" gorm:"index"`
	TerritoryID *uint  `json:"territory_id"`
	Role        Role   `json:"role" gorm:"type:varchar(8);not null"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	Manager *User `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
}
