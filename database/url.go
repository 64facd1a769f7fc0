package database

import (
	"fmt"
	"net/url"
	"strings"
)

// ConnectionParams describes a database by its parts, used when no full URL is configured
type ConnectionParams struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// ConstructDatabaseURL returns databaseURL untouched when it is set, otherwise it
// assembles a postgres URL from params. sslmode=disable is appended when missing.
func ConstructDatabaseURL(databaseURL string, params ConnectionParams) string {
	if databaseURL == "" {
		if params.Host == "" || params.Name == "" {
			return ""
		}
		u := &url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", params.Host, params.Port),
			Path:   "/" + params.Name,
		}
		if params.User != "" {
			u.User = url.UserPassword(params.User, params.Password)
		}
		if params.SSLMode != "" {
			u.RawQuery = "sslmode=" + params.SSLMode
		}
		databaseURL = u.String()
	}

	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "&"
		if !strings.Contains(databaseURL, "?") {
			separator = "?"
		}
		databaseURL = fmt.Sprintf("%s%ssslmode=disable", databaseURL, separator)
	}

	return databaseURL
}
