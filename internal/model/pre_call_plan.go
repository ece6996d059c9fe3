package model

import (
	"time"

	"gorm.io/gorm"
)

type PlanStatus string

const (
	PlanDraft    PlanStatus = "DRAFT"
	PlanPending  PlanStatus = "PENDING"
	PlanApproved PlanStatus = "APPROVED"
	PlanRejected PlanStatus = "REJECTED"
)

// IsTerminal reports whether no further transition may leave this status.
func (s PlanStatus) IsTerminal() bool {
	return s == PlanApproved || s == PlanRejected
}

type PreCallPlan struct {
	gorm.Model
	SRID       uint       `json:"sr_id" gorm:"column:sr_id;index;not null"`
	CustomerID uint       `json:"customer_id" gorm:"not null"`
	ContactID  uint       `json:"contact_id" gorm:"not null"`
	PlanDate   time.Time  `json:"plan_date" gorm:"type:date;index"`
	Objectives string     `json:"objectives"`
	Notes      string     `json:"notes"`
	Status     PlanStatus `json:"status" gorm:"type:varchar(16);default:DRAFT;index"`

	// Set only when the plan leaves PENDING
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason"`

	SR       User     `json:"sr" gorm:"foreignKey:SRID"`
	Customer Customer `json:"customer" gorm:"foreignKey:CustomerID"`
	Contact  Contact  `json:"contact" gorm:"foreignKey:ContactID"`
}
