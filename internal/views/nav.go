package views

import (
	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
)

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var navByRole = map[models.UserRole][]NavItem{
	models.UserRoleElder: {
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "My Requests", Href: "/my-requests"},
		{Label: "Create Request", Href: "/care-requests/new"},
	},
	models.UserRoleCaregiver: {
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Find Jobs", Href: "/care-requests"},
		{Label: "My Applications", Href: "/my-applications"},
		{Label: "Education", Href: "/education"},
	},
}

// NavFor returns the header links for sess, marking the one matching current.
func NavFor(sess *session.Session, current string) []NavItem {
	items := navByRole[sess.Role()]
	if len(items) == 0 {
		return nil
	}

	out := make([]NavItem, len(items))
	for i, item := range items {
		item.Active = item.Href == current
		out[i] = item
	}
	return out
}
