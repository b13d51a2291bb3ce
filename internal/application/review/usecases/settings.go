package usecases

import (
	"strings"
	"time"
)

// Settings are the review link parameters taken from configuration.
type Settings struct {
	// BaseURL is the public origin review links are built on.
	BaseURL    string
	DefaultTTL time.Duration
	MaxTTL     time.Duration
}

func (s Settings) reviewURL(token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/review/" + token
}

// ttl picks the requested lifetime, the default when none is given, and
// never more than MaxTTL.
func (s Settings) ttl(requestedHours int) time.Duration {
	ttl := s.DefaultTTL
	if requestedHours > 0 {
		ttl = time.Duration(requestedHours) * time.Hour
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if s.MaxTTL > 0 && ttl > s.MaxTTL {
		ttl = s.MaxTTL
	}
	return ttl
}
