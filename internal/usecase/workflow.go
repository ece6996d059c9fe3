package usecase

import (
	"context"
	"fmt"
	"time"

	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

type Clock func() time.Time

// SubmissionDeadline is the last instant a report for callDate may be
// submitted: callDate + days, at 23:59:59.999 in loc. The calendar date is
// read in loc whatever zone callDate was loaded in.
func SubmissionDeadline(callDate time.Time, days int, loc *time.Location) time.Time {
	y, m, d := callDate.In(loc).Date()
	return time.Date(y, m, d+days, 23, 59, 59, int(999*time.Millisecond), loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func loadActor(ctx context.Context, users repository.UserRepository, id uint) (*model.User, error) {
	return users.FindByID(ctx, id)
}

func requireOwner(actor *model.User, ownerID uint, what string) error {
	if actor.ID != ownerID {
		return apperror.Forbidden("only the owning representative may modify this %s", what)
	}
	return nil
}

func lockKey(kind string, id uint) string {
	return fmt.Sprintf("%s:%d", kind, id)
}
