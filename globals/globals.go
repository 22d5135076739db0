package globals

import "os"

var JwtSecret = []byte(EnvOr("JWT_SECRET", "dotshop_dev_secret"))

// EnvOr returns the value of an environment variable or a fallback.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"
