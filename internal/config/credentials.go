package config

import (
	"os"
	"strings"
)

// Login is a browser-platform credential pair.
type Login struct {
	Email    string
	Password string
}

// Credentials is the process-wide, read-only secret material, one entry per
// platform. It is loaded once at startup from the environment and never
// appears in config files, the envelope, the report, or any log line.
type Credentials struct {
	logins map[string]Login
	tokens map[string]string
}

// LoadCredentials reads per-platform secrets from the environment:
//
//	EVENTCAST_<PLATFORM>_EMAIL / EVENTCAST_<PLATFORM>_PASSWORD  (browser family)
//	EVENTCAST_<PLATFORM>_TOKEN                                  (API family)
//
// Missing entries are not an error here; each adapter fails its own platform
// at authenticate time when its secret is absent.
func LoadCredentials(platforms []string) *Credentials {
	c := &Credentials{logins: map[string]Login{}, tokens: map[string]string{}}
	for _, p := range platforms {
		key := envKey(p)
		email := os.Getenv("EVENTCAST_" + key + "_EMAIL")
		password := os.Getenv("EVENTCAST_" + key + "_PASSWORD")
		if email != "" || password != "" {
			c.logins[p] = Login{Email: email, Password: password}
		}
		if token := os.Getenv("EVENTCAST_" + key + "_TOKEN"); token != "" {
			c.tokens[p] = token
		}
	}
	return c
}

// Login returns the browser credential pair for a platform.
func (c *Credentials) Login(platform string) (Login, bool) {
	l, ok := c.logins[platform]
	return l, ok
}

// Token returns the bearer token for a platform.
func (c *Credentials) Token(platform string) (string, bool) {
	t, ok := c.tokens[platform]
	return t, ok
}

func envKey(platform string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(platform))
}
