// Package auth decides which signed-in roles may open which pages.
package auth

import (
	"net/url"
	"path"
	"strings"

	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
)

type Decision int

const (
	Allow Decision = iota
	RequireLogin
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RequireLogin:
		return "require_login"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Authorize checks sess against allowed. An empty allowed set admits any
// signed-in role.
func Authorize(sess *session.Session, allowed ...models.UserRole) Decision {
	if !sess.IsAuthenticated() {
		return RequireLogin
	}
	if len(allowed) == 0 {
		return Allow
	}

	role := sess.Role()
	for _, r := range allowed {
		if r == role {
			return Allow
		}
	}
	return Deny
}

// SafeNext returns next when it is a local absolute path, fallback otherwise.
// The path is returned cleaned, the form http.Redirect would send.
func SafeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") {
		return fallback
	}
	// Browsers read a backslash as a slash.
	if strings.ContainsAny(next, "\\\x00\r\n\t") {
		return fallback
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return fallback
	}

	p := u.EscapedPath()
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	if !strings.HasPrefix(cleaned, "/") || strings.HasPrefix(cleaned, "//") {
		return fallback
	}

	if u.RawQuery != "" {
		cleaned += "?" + u.RawQuery
	}
	return cleaned
}

// LoginURL is the login page that returns to target afterwards.
func LoginURL(target string) string {
	if target == "" || target == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(target)
}
