package model

import (
	"time"

	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
)

type CallReport struct {
	gorm.Model
	SRID          uint         `json:"sr_id" gorm:"column:sr_id;index;not null"`
	PreCallPlanID *uint        `json:"pre_call_plan_id"`
	CustomerID    uint         `json:"customer_id" gorm:"not null"`
	ContactID     uint         `json:"contact_id" gorm:"not null"`
	CallDate      time.Time    `json:"call_date" gorm:"type:date;index"`
	Status        ReportStatus `json:"status" gorm:"type:varchar(16);default:DRAFT;index"`
	SubmittedAt   *time.Time   `json:"submitted_at"`

	CheckInLat   *float64   `json:"check_in_lat"`
	CheckInLng   *float64   `json:"check_in_lng"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutLat  *float64   `json:"check_out_lat"`
	CheckOutLng  *float64   `json:"check_out_lng"`
	CheckOutTime *time.Time `json:"check_out_time"`

	// Derived on check-out, nil while no check-in time exists
	DurationMinutes *int `json:"duration_minutes"`

	CallObjective      string `json:"call_objective"`
	CustomerResponse   string `json:"customer_response"`
	CustomerRequest    string `json:"customer_request"`
	CustomerObjections string `json:"customer_objections"`
	CompetitorInfo     string `json:"competitor_info"`
	NextAction         string `json:"next_action"`

	ActivitiesDone []Activity `json:"activities_done" gorm:"many2many:call_report_activities;"`
	Photos         []Photo    `json:"photos,omitempty"`

	SR       User     `json:"sr" gorm:"foreignKey:SRID"`
	Customer Customer `json:"customer" gorm:"foreignKey:CustomerID"`
	Contact  Contact  `json:"contact" gorm:"foreignKey:ContactID"`
}

type PhotoCategory string

const (
	PhotoStore    PhotoCategory = "STORE"
	PhotoProduct  PhotoCategory = "PRODUCT"
	PhotoDisplay  PhotoCategory = "DISPLAY"
	PhotoSelfie   PhotoCategory = "SELFIE"
	PhotoDocument PhotoCategory = "DOCUMENT"
	PhotoOther    PhotoCategory = "OTHER"
)

type Photo struct {
	gorm.Model
	CallReportID uint          `json:"call_report_id" gorm:"index;not null"`
	Category     PhotoCategory `json:"category" gorm:"type:varchar(16)"`
	URL          string        `json:"url"` // File lives in external storage
	Caption      string        `json:"caption"`
	UploadedBy   uint          `json:"uploaded_by"`
}
