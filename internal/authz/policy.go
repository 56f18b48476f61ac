// Package authz is the row-level authorization engine. Every domain
// operation is checked against a declarative policy table keyed by
// (collection, operation); the operation is permitted iff at least one of
// the predicates for that cell evaluates true (OR composition). Anything
// without a matching cell is denied.
package authz

import (
	"errors"

	"github.com/peopledesk/peopledesk-api/internal/domain/role"
)

// ErrForbidden is returned by services when no policy predicate matched.
var ErrForbidden = errors.New("operation not permitted")

type Op string

const (
	OpRead   Op = "read"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Collection string

const (
	CollectionProfiles          Collection = "profiles"
	CollectionUserRoles         Collection = "user_roles"
	CollectionLeaveRequests     Collection = "leave_requests"
	CollectionAttendanceRecords Collection = "attendance_records"
	CollectionActivityLogs      Collection = "activity_logs"
)

// Requester is the acting identity with its role already resolved through
// the role registry (trusted path, never re-enters this engine).
type Requester struct {
	UserID string
	Role   role.Role
}

// Row is the policy view of the target row. OwnerID is the profile/user id
// the row belongs to. Status carries the STORED leave status for
// leave_requests updates; it is ignored by every other cell.
type Row struct {
	OwnerID string
	Status  string
}

// statusPending mirrors leave.StatusPending without importing the leave
// package; the table below matches on the raw column value.
const statusPending = "pending"

type Predicate func(req Requester, row Row) bool

func isAuthenticated(req Requester, _ Row) bool {
	return req.UserID != ""
}

func isAdmin(req Requester, _ Row) bool {
	return req.UserID != "" && req.Role == role.RoleAdmin
}

func isSelf(req Requester, row Row) bool {
	return req.UserID != "" && req.UserID == row.OwnerID
}

// isSelfWhilePending re-validates against the stored status, so an employee
// edit racing an admin approval loses.
func isSelfWhilePending(req Requester, row Row) bool {
	return isSelf(req, row) && row.Status == statusPending
}

var policy = map[Collection]map[Op][]Predicate{
	CollectionProfiles: {
		OpRead:   {isAuthenticated},
		OpCreate: {isAdmin},
		OpUpdate: {isSelf, isAdmin},
		OpDelete: {isAdmin},
	},
	CollectionUserRoles: {
		OpRead:   {isSelf, isAdmin},
		OpCreate: {isAdmin},
		OpUpdate: {isAdmin},
		OpDelete: {isAdmin},
	},
	CollectionLeaveRequests: {
		OpRead:   {isSelf, isAdmin},
		OpCreate: {isSelf},
		OpUpdate: {isSelfWhilePending, isAdmin},
		OpDelete: {isAdmin},
	},
	CollectionAttendanceRecords: {
		OpRead:   {isSelf, isAdmin},
		OpCreate: {isSelf, isAdmin},
		OpUpdate: {isSelf, isAdmin},
		OpDelete: {isAdmin},
	},
	CollectionActivityLogs: {
		OpRead:   {isAuthenticated},
		OpCreate: {isAuthenticated},
		// append-only: no update or delete cells, so both default-deny
	},
}

// Allowed evaluates the policy table for one (collection, op) cell.
func Allowed(op Op, c Collection, req Requester, row Row) bool {
	cell, ok := policy[c]
	if !ok {
		return false
	}
	preds, ok := cell[op]
	if !ok {
		return false
	}
	for _, p := range preds {
		if p(req, row) {
			return true
		}
	}
	return false
}

// Require is Allowed with the error services hand back to the transport
// layer when the check fails.
func Require(op Op, c Collection, req Requester, row Row) error {
	if !Allowed(op, c, req, row) {
		return ErrForbidden
	}
	return nil
}
