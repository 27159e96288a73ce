package models

import (
	"encoding/json"
	"strings"
)

type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
}

// UnmarshalJSON also accepts a single "fullName" field, split on the first space.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User(raw.alias)
	if u.FirstName == "" && raw.FullName != "" {
		first, last, _ := strings.Cut(strings.TrimSpace(raw.FullName), " ")
		u.FirstName = first
		if u.LastName == "" {
			u.LastName = strings.TrimSpace(last)
		}
	}
	return nil
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ProfilePath is the profile page matching the user's role.
func (u User) ProfilePath() string {
	if u.Role == UserRoleElder {
		return "/elder/profile"
	}
	return "/caregiver/profile"
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
