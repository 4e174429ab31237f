// Package visits stores pedagogical visit records and aggregates them for the
// dashboard and the exporters.
package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/policy"
)

var (
	// ErrNotFound is returned both for missing visits and for visits the
	// viewer may not see.
	ErrNotFound              = errors.New("visit not found")
	ErrDuplicateReportNumber = errors.New("report number already taken")
	ErrInvalidInput          = errors.New("invalid visit data")
)

// Viewer is whoever is reading: visibility depends on the role.
type Viewer struct {
	UserID uint
	Role   models.UserRole
}

func (v Viewer) criteria() Criteria {
	if policy.SeesAllVisits(v.Role) {
		return Criteria{}
	}
	return Criteria{}.Equal("usuario_id", v.UserID)
}

type VisitInput struct {
	Date            string `validate:"required,max=40"`
	Institution     string `validate:"required,max=255"`
	Level           string `validate:"max=100"`
	VisitType       string `validate:"max=100"`
	// Observations must fit one spreadsheet cell (32767 UTF-16 units) even
	// when every character is outside the BMP.
	Strengths       string `validate:"max=16000"`
	Improvements    string `validate:"max=16000"`
	Recommendations string `validate:"max=16000"`
	Commitments     string `validate:"max=16000"`
}

func (in *VisitInput) trim() {
	for _, f := range []*string{
		&in.Date, &in.Institution, &in.Level, &in.VisitType,
		&in.Strengths, &in.Improvements, &in.Recommendations, &in.Commitments,
	} {
		*f = strings.TrimSpace(*f)
	}
}

type Store struct {
	db       *gorm.DB
	numbers  ReportNumbers
	now      func() time.Time
	validate *validator.Validate
}

func NewStore(db *gorm.DB) *Store {
	return NewStoreWithClock(db, time.Now)
}

func NewStoreWithClock(db *gorm.DB, now func() time.Time) *Store {
	return &Store{
		db:       db,
		numbers:  ReportNumbers{now: now},
		now:      now,
		validate: validator.New(),
	}
}

// Create stores a new visit owned by ownerID and assigns its report number.
// A report-number collision fails the insert; there is no retry.
func (s *Store) Create(ctx context.Context, ownerID uint, in VisitInput) (*models.Visit, error) {
	in.trim()
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var visit models.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.numbers.Next(tx)
		if err != nil {
			return err
		}

		visit = models.Visit{
			UserID:          ownerID,
			ReportNumber:    number,
			Date:            in.Date,
			Institution:     in.Institution,
			Level:           in.Level,
			VisitType:       in.VisitType,
			Strengths:       in.Strengths,
			Improvements:    in.Improvements,
			Recommendations: in.Recommendations,
			Commitments:     in.Commitments,
		}
		if err := tx.Omit(clause.Associations).Create(&visit).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicateReportNumber
			}
			return fmt.Errorf("insert visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// GetVisible loads one visit with its owner, or ErrNotFound when it does not
// exist or belongs to someone the viewer may not see.
func (s *Store) GetVisible(ctx context.Context, viewer Viewer, id uint) (*models.Visit, error) {
	scope, err := viewer.criteria().Scope()
	if err != nil {
		return nil, err
	}

	var visit models.Visit
	err = s.db.WithContext(ctx).Scopes(scope).Preload("User").First(&visit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load visit %d: %w", id, err)
	}
	return &visit, nil
}

// ListVisible returns the visits the viewer may see, newest first, optionally
// restricted to a YYYY-MM month.
func (s *Store) ListVisible(ctx context.Context, viewer Viewer, month string) ([]models.Visit, error) {
	crit, err := monthCriteria(viewer.criteria(), month)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, crit)
}

func (s *Store) list(ctx context.Context, crit Criteria) ([]models.Visit, error) {
	scope, err := crit.Scope()
	if err != nil {
		return nil, err
	}
	var list []models.Visit
	if err := s.db.WithContext(ctx).Scopes(scope).Preload("User").Order("id desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return list, nil
}

func (s *Store) count(ctx context.Context, crit Criteria) (int64, error) {
	scope, err := crit.Scope()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Visit{}).Scopes(scope).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}
