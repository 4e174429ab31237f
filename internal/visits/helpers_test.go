package visits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/testutil"
)

var fixedNow = time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	return NewStoreWithClock(db, func() time.Time { return fixedNow }), db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		FullName:     "Nombre " + username,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createVisit(t *testing.T, s *Store, owner models.User, date, level, kind string) *models.Visit {
	t.Helper()
	v, err := s.Create(context.Background(), owner.ID, VisitInput{
		Date:        date,
		Institution: "IE " + owner.Username + " " + date,
		Level:       level,
		VisitType:   kind,
		Strengths:   "Buen clima de aula",
	})
	require.NoError(t, err)
	return v
}

func viewerOf(u models.User) Viewer {
	return Viewer{UserID: u.ID, Role: u.Role}
}
