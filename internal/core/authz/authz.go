// Package authz holds the role predicates and the section policy table.
// Both the server-side route guard and the UI permissions endpoint derive
// from this single table, so the two can never drift apart.
package authz

import "transit-backoffice/internal/adapters/persistence/models"

// Known role names. Storage keeps roles as free text; every comparison in
// the codebase goes through these constants so a typo cannot silently
// widen or narrow access.
const (
	RoleSuperAdmin      = "Super Admin"
	RoleAdmin           = "Admin"
	RoleBusinessManager = "Business Manager"
	RoleAccountant      = "Accountant"
	RoleCashier         = "Cashier"
)

// AllRoles lists every role the system seeds.
var AllRoles = []string{
	RoleSuperAdmin,
	RoleAdmin,
	RoleBusinessManager,
	RoleAccountant,
	RoleCashier,
}

// Predicate answers whether a resolved user may perform an operation.
// Predicates must be total: a nil user always yields false.
type Predicate func(user *models.User) bool

// HasRole reports whether the user's role set contains roleName
// (case-sensitive exact match). False for a nil user.
func HasRole(user *models.User, roleName string) bool {
	if user == nil {
		return false
	}
	for _, r := range user.Roles {
		if r.Name == roleName {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the Admin or Super Admin role.
func IsAdmin(user *models.User) bool {
	return HasRole(user, RoleAdmin) || HasRole(user, RoleSuperAdmin)
}

// IsSuperAdmin reports whether the user holds the Super Admin role.
func IsSuperAdmin(user *models.User) bool {
	return HasRole(user, RoleSuperAdmin)
}

// Authenticated is satisfied by any resolved (non-nil) user.
func Authenticated(user *models.User) bool {
	return user != nil
}

// Any combines predicates with OR.
func Any(preds ...Predicate) Predicate {
	return func(user *models.User) bool {
		for _, p := range preds {
			if p(user) {
				return true
			}
		}
		return false
	}
}

// Role returns a predicate checking a single role name.
func Role(roleName string) Predicate {
	return func(user *models.User) bool {
		return HasRole(user, roleName)
	}
}

// CanViewWideLocation reports whether the user may query reports for
// locations other than their own.
func CanViewWideLocation(user *models.User) bool {
	return IsSuperAdmin(user) || HasRole(user, RoleAccountant)
}

// ============================================================
// Section policy table
// ============================================================

// Section names match the dashboard's navigation sections.
const (
	SectionEmployees     = "employees"
	SectionPayrolls      = "payrolls"
	SectionBudgets       = "budgets"
	SectionExpenses      = "expenses"
	SectionFleet         = "fleet"
	SectionReports       = "reports"
	SectionNotifications = "notifications"
	SectionFiles         = "files"
)

// Policies is the per-section access table. Route registration and the
// permissions endpoint both read it.
var Policies = map[string]Predicate{
	SectionEmployees: Any(IsAdmin, Role(RoleBusinessManager)),
	SectionPayrolls:  Any(IsAdmin, Role(RoleAccountant)),
	SectionBudgets:   Any(IsAdmin, Role(RoleBusinessManager), Role(RoleAccountant)),
	SectionExpenses:  Authenticated,
	SectionFleet:     Any(IsAdmin, Role(RoleBusinessManager)),
	SectionReports:   Any(IsAdmin, Role(RoleBusinessManager), Role(RoleAccountant)),

	SectionNotifications: Authenticated,
	SectionFiles:         Any(IsAdmin, Role(RoleBusinessManager)),
}

// SectionOrder fixes the order sections are reported to the UI.
var SectionOrder = []string{
	SectionEmployees,
	SectionPayrolls,
	SectionBudgets,
	SectionExpenses,
	SectionFleet,
	SectionReports,
	SectionNotifications,
	SectionFiles,
}

// VisibleSections returns the sections the user may see, in display order.
func VisibleSections(user *models.User) []string {
	sections := make([]string, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		if Policies[name](user) {
			sections = append(sections, name)
		}
	}
	return sections
}
