// Package policy holds the role-based permission table and the meeting
// visibility rules.
package policy

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// Permission names one guarded operation group.
type Permission string

const (
	MeetingsRead      Permission = "meetings:read"
	MeetingsWrite     Permission = "meetings:write"
	MeetingsDelete    Permission = "meetings:delete"
	EvaluationsRead   Permission = "evaluations:read"
	EvaluationsWrite  Permission = "evaluations:write"
	AnalysisRead      Permission = "analysis:read"
	AnalysisRun       Permission = "analysis:run"
	FailedCasesRead   Permission = "failed_cases:read"
	FailedCasesWrite  Permission = "failed_cases:write"
	StatisticsRead    Permission = "statistics:read"
	StatisticsReadAny Permission = "statistics:read_any"
	MediaWrite        Permission = "media:write"
	UsersManage       Permission = "users:manage"
)

// granted to every authenticated role
var authenticated = []Permission{
	MeetingsRead,
	MeetingsWrite,
	EvaluationsRead,
	AnalysisRead,
	AnalysisRun,
	FailedCasesRead,
	FailedCasesWrite,
	StatisticsRead,
	MediaWrite,
}

var table = map[entities.UserRole]map[Permission]bool{
	entities.RoleAdmin:       grant(authenticated, MeetingsDelete, EvaluationsWrite, StatisticsReadAny, UsersManage),
	entities.RoleEvaluator:   grant(authenticated, EvaluationsWrite, StatisticsReadAny),
	entities.RoleSalesperson: grant(authenticated),
	entities.RoleGuest:       grant(authenticated),
}

func grant(base []Permission, extra ...Permission) map[Permission]bool {
	set := make(map[Permission]bool, len(base)+len(extra))
	for _, p := range base {
		set[p] = true
	}
	for _, p := range extra {
		set[p] = true
	}
	return set
}

// Allowed reports whether role holds perm. Unknown roles hold nothing.
func Allowed(role entities.UserRole, perm Permission) bool {
	return table[role][perm]
}

// Authorize returns ErrForbidden when role does not hold perm.
func Authorize(role entities.UserRole, perm Permission) error {
	if !Allowed(role, perm) {
		return ErrForbidden{Role: role, Permission: perm}
	}
	return nil
}

// ErrForbidden is returned by Authorize.
type ErrForbidden struct {
	Role       entities.UserRole
	Permission Permission
}

func (e ErrForbidden) Error() string {
	return "role " + string(e.Role) + " lacks " + string(e.Permission)
}

// Restricted reports whether role only sees meetings it owns.
func Restricted(role entities.UserRole) bool {
	switch role {
	case entities.RoleAdmin, entities.RoleEvaluator:
		return false
	}
	return true
}

// Scope narrows a meeting query. A nil OwnerID means every meeting.
type Scope struct {
	OwnerID *uuid.UUID
}

// MeetingScope returns the meeting set visible to a caller.
func MeetingScope(role entities.UserRole, userID uuid.UUID) Scope {
	if Restricted(role) {
		id := userID
		return Scope{OwnerID: &id}
	}
	return Scope{}
}

// Includes reports whether a meeting owned by ownerID falls inside the scope.
func (s Scope) Includes(ownerID uuid.UUID) bool {
	return s.OwnerID == nil || *s.OwnerID == ownerID
}

// CanView reports whether the caller may read a meeting owned by ownerID.
func CanView(role entities.UserRole, userID, ownerID uuid.UUID) bool {
	return MeetingScope(role, userID).Includes(ownerID)
}
