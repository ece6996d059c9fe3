package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-activity-backend/internal/apperror"
)

func TestUser_Subordinates(t *testing.T) {
	w := newWorld()

	users, err := w.userUC.Subordinates(context.Background(), supID)

	require.NoError(t, err)
	var ids []uint
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []uint{sup2ID, sr1ID, sr2ID}, ids)
}

func TestUser_GetUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   uint
		target  uint
		allowed bool
	}{
		{"self", sr1ID, sr1ID, true},
		{"peer", sr1ID, sr2ID, false},
		{"supervisor to direct report", supID, sr1ID, true},
		{"supervisor to grand report", supID, grandSRID, false},
		{"manager to anyone", smID, grandSRID, true},
		{"ceo to anyone", ceoID, grandSRID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()

			user, err := w.userUC.GetUser(ctx, tt.actor, tt.target)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.target, user.ID)
				return
			}
			requireKind(t, err, apperror.KindForbidden)
		})
	}
}

func TestUser_ProfileNotFound(t *testing.T) {
	w := newWorld()

	_, err := w.userUC.Profile(context.Background(), 9999)

	requireKind(t, err, apperror.KindNotFound)
}
