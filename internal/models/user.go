package models

import "time"

type UserRole string

const (
	RoleSpecialist UserRole = "especialista"
	RoleChief      UserRole = "jefe"
	RoleAdmin      UserRole = "admin"
)

// Roles lists every role in the order the admin screens show them.
var Roles = []UserRole{RoleSpecialist, RoleChief, RoleAdmin}

func (r UserRole) Valid() bool {
	switch r {
	case RoleSpecialist, RoleChief, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) Label() string {
	switch r {
	case RoleSpecialist:
		return "Especialista"
	case RoleChief:
		return "Jefe"
	case RoleAdmin:
		return "Administrador"
	}
	return string(r)
}

// User maps the legacy "usuarios" table. Accounts are never deleted, only
// deactivated, so visit rows keep a valid owner.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"column:usuario;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:contrasena;not null"`
	FullName     string    `gorm:"column:nombre_completo"`
	Role         UserRole  `gorm:"column:rol;not null"`
	Active       bool      `gorm:"column:activo"` // no default tag: gorm would skip false on insert
	CreatedAt    time.Time `gorm:"column:creado_en"`
}

func (User) TableName() string { return "usuarios" }

// DisplayName falls back to the username for accounts created without one.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
