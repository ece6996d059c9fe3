package model

import "time"

// CoachingRecord is append-only: no soft delete and no updated_at.
type CoachingRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CallReportID uint      `json:"call_report_id" gorm:"index;not null"`
	ManagerID    uint      `json:"manager_id" gorm:"index;not null"`
	Rating       *int      `json:"rating"`
	Comments     string    `json:"comments" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`

	Manager User `json:"manager" gorm:"foreignKey:ManagerID"`
}

type NotificationType string

const (
	NotifyPlanSubmitted   NotificationType = "PLAN_SUBMITTED"
	NotifyPlanApproved    NotificationType = "PLAN_APPROVED"
	NotifyPlanRejected    NotificationType = "PLAN_REJECTED"
	NotifyReportSubmitted NotificationType = "REPORT_SUBMITTED"
	NotifyCoachingAdded   NotificationType = "COACHING_ADDED"
)

const (
	RefPreCallPlan = "PRE_CALL_PLAN"
	RefCallReport  = "CALL_REPORT"
)

type Notification struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        uint             `json:"user_id" gorm:"index;not null"`
	Type          NotificationType `json:"type" gorm:"type:varchar(32)"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	ReferenceType string           `json:"reference_type"`
	ReferenceID   uint             `json:"reference_id"`
	IsRead        bool             `json:"is_read" gorm:"default:false"`
	CreatedAt     time.Time        `json:"created_at"`
}
