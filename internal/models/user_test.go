package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_Valid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, UserRole("viewer").Valid())
	assert.False(t, UserRole("").Valid())
	assert.False(t, UserRole("Admin").Valid())
}

func TestUserRole_Label(t *testing.T) {
	assert.Equal(t, "Especialista", RoleSpecialist.Label())
	assert.Equal(t, "Jefe", RoleChief.Label())
	assert.Equal(t, "Administrador", RoleAdmin.Label())
	assert.Equal(t, "otro", UserRole("otro").Label())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana Torres", User{Username: "ana", FullName: "Ana Torres"}.DisplayName())
	assert.Equal(t, "ana", User{Username: "ana"}.DisplayName())
}
