// Package users is the credential store: accounts, roles and password checks.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

var (
	// ErrInvalidCredentials covers unknown user, inactive account and wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrSelfDeactivation   = errors.New("cannot deactivate own account")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid user data")
	ErrNotFound           = errors.New("user not found")
)

// ActorID on NewUser and UpdateUser is the admin making the change, recorded
// in the audit trail. Zero for changes made outside a session.
type NewUser struct {
	Username string          `validate:"required,min=3,max=50"`
	Password string          `validate:"required,max=72"`
	FullName string          `validate:"max=150"`
	Role     models.UserRole `validate:"required"`
	ActorID  uint
}

type UpdateUser struct {
	FullName string          `validate:"max=150"`
	Role     models.UserRole `validate:"required"`
	Active   bool
	Password string `validate:"omitempty,max=72"` // empty keeps the current hash
	ActorID  uint
}

type Store struct {
	db       *gorm.DB
	validate *validator.Validate
	cost     int
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
	}
}

// Authenticate returns the active user matching username and password.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("usuario = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// burn the same bcrypt time as a real check
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *Store) Create(ctx context.Context, in NewUser) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		Active:       true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return database.RecordAudit(tx, in.ActorID, user.ID, models.AuditCreate, "rol="+string(in.Role))
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update rewrites name, role and active flag. The password hash is only
// replaced when in.Password is non-empty.
func (s *Store) Update(ctx context.Context, id uint, in UpdateUser) error {
	if !in.Role.Valid() {
		return ErrInvalidRole
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	changes := map[string]any{
		"nombre_completo": in.FullName,
		"rol":             in.Role,
		"activo":          in.Active,
	}
	details := fmt.Sprintf("rol=%s activo=%t", in.Role, in.Active)
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		changes["contrasena"] = string(hash)
		details += " contrasena=cambiada"
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return fmt.Errorf("update user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return database.RecordAudit(tx, in.ActorID, id, models.AuditUpdate, details)
	})
}

// Deactivate disables an account. actorID is the admin doing it; nobody may
// lock themselves out.
func (s *Store) Deactivate(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfDeactivation
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Update("activo", false)
		if res.Error != nil {
			return fmt.Errorf("deactivate user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return database.RecordAudit(tx, actorID, id, models.AuditDeactivate, "")
	})
}

// History lists the audit trail of one account, newest first.
func (s *Store) History(ctx context.Context, id uint) ([]models.AuditEntry, error) {
	var list []models.AuditEntry
	err := s.db.WithContext(ctx).
		Preload("Actor").
		Where("usuario_id = ?", id).
		Order("creado_en desc, id desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("user %d history: %w", id, err)
	}
	return list, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

// List returns every account, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := s.db.WithContext(ctx).Order("creado_en desc, id desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// EnsureAdmin seeds the bootstrap admin when no account with that username
// exists yet. It reports whether a row was inserted.
func (s *Store) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         models.RoleAdmin,
		Active:       true,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "usuario"}}, DoNothing: true}).
		Create(&admin)
	if res.Error != nil {
		return false, fmt.Errorf("seed admin: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("ugel-monitor"), bcrypt.DefaultCost)
	})
	return dummy
}
