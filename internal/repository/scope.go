package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/apperror"
)

// RecordQuery holds optional listing predicates on top of the access filter.
type RecordQuery struct {
	Status string
	SRID   *uint
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ownedBy applies an access.ListFilter on the given owner column.
func ownedBy(filter access.ListFilter, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Unrestricted {
			if filter.CompanyID == 0 {
				return db
			}
			return db.Where(column+" IN (SELECT id FROM users WHERE company_id = ? AND deleted_at IS NULL)", filter.CompanyID)
		}
		if len(filter.OwnerIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", filter.OwnerIDs)
	}
}

func matching(q RecordQuery, ownerColumn, dateColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if q.SRID != nil {
			db = db.Where(ownerColumn+" = ?", *q.SRID)
		}
		if q.From != nil {
			db = db.Where(dateColumn+" >= ?", *q.From)
		}
		if q.To != nil {
			db = db.Where(dateColumn+" <= ?", *q.To)
		}
		if q.Limit > 0 {
			db = db.Limit(q.Limit).Offset(q.Offset)
		}
		return db
	}
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s %d not found", entity, id)
	}
	return err
}
