// Package policy is the single place that decides what a role may do.
package policy

import "github.com/edwardvalandre-netizen/ugel-monitor/internal/models"

type Action string

const (
	ViewDashboard Action = "view_dashboard"
	CreateVisit   Action = "create_visit"
	ExportVisits  Action = "export_visits"
	ManageUsers   Action = "manage_users"
	ViewResources Action = "view_resources"
)

var everyone = []models.UserRole{models.RoleSpecialist, models.RoleChief, models.RoleAdmin}

var rules = map[Action][]models.UserRole{
	ViewDashboard: everyone,
	CreateVisit:   everyone,
	ExportVisits:  everyone,
	ViewResources: everyone,
	ManageUsers:   {models.RoleAdmin},
}

// Allowed reports whether role may perform action. Unknown roles and unknown
// actions are denied.
func Allowed(role models.UserRole, action Action) bool {
	for _, r := range rules[action] {
		if r == role {
			return true
		}
	}
	return false
}

// SeesAllVisits reports whether role reads every visit record rather than
// only its own.
func SeesAllVisits(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleChief
}
