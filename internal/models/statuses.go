package models

type UserRole string
type CareRequestStatus string
type ApplicationStatus string

const (
	UserRoleElder     UserRole = "ELDER"
	UserRoleCaregiver UserRole = "CAREGIVER"

	CareRequestStatusOpen      CareRequestStatus = "OPEN"
	CareRequestStatusAssigned  CareRequestStatus = "ASSIGNED"
	CareRequestStatusCompleted CareRequestStatus = "COMPLETED"
	CareRequestStatusCancelled CareRequestStatus = "CANCELLED"

	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Roles lists every role a user can register with.
var Roles = []UserRole{UserRoleElder, UserRoleCaregiver}

func (r UserRole) Valid() bool {
	return r == UserRoleElder || r == UserRoleCaregiver
}

func (r UserRole) Label() string {
	switch r {
	case UserRoleElder:
		return "Looking for care"
	case UserRoleCaregiver:
		return "Caregiver"
	default:
		return string(r)
	}
}

func (s CareRequestStatus) Label() string {
	switch s {
	case CareRequestStatusOpen:
		return "Open"
	case CareRequestStatusAssigned:
		return "Assigned"
	case CareRequestStatusCompleted:
		return "Completed"
	case CareRequestStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

func (s ApplicationStatus) Label() string {
	switch s {
	case ApplicationStatusPending:
		return "Pending"
	case ApplicationStatusAccepted:
		return "Accepted"
	case ApplicationStatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}
