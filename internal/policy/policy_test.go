package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role   models.UserRole
		action Action
		want   bool
	}{
		{models.RoleSpecialist, ViewDashboard, true},
		{models.RoleSpecialist, CreateVisit, true},
		{models.RoleSpecialist, ExportVisits, true},
		{models.RoleSpecialist, ViewResources, true},
		{models.RoleSpecialist, ManageUsers, false},
		{models.RoleChief, ExportVisits, true},
		{models.RoleChief, ManageUsers, false},
		{models.RoleAdmin, ManageUsers, true},
		{models.RoleAdmin, ViewDashboard, true},
		{models.UserRole("viewer"), ViewDashboard, false},
		{models.UserRole(""), ViewResources, false},
		{models.RoleAdmin, Action("drop_tables"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.action))
		})
	}
}

func TestSeesAllVisits(t *testing.T) {
	assert.True(t, SeesAllVisits(models.RoleAdmin))
	assert.True(t, SeesAllVisits(models.RoleChief))
	assert.False(t, SeesAllVisits(models.RoleSpecialist))
	assert.False(t, SeesAllVisits(models.UserRole("")))
}
