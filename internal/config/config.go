package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env                 string // application environment (e.g. "dev", "prod")
	Port                string // HTTP port to listen on
	DBUser              string // database username
	DBPass              string // database password (optional)
	DBHost              string // database host address
	DBPort              string // database port number
	DBName              string // database name
	AuthSecret          string // secret mixed into every credential hash
	SessionCookieName   string // cookie carrying the session token
	SessionCookieDomain string // cookie domain scope (optional)
	SessionCacheTTLMin  int    // session cache entry lifetime in minutes
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The hashing secret
// is loaded here once and injected into the credential hasher; nothing
// else in the process reads it from the environment.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),      // environment (dev/test/prod)
		Port:                must("APP_PORT"),     // port to bind the HTTP server
		DBUser:              must("DB_USER"),      // database user
		DBPass:              os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:              must("DB_HOST"),      // database host
		DBPort:              must("DB_PORT"),      // database port
		DBName:              must("DB_NAME"),      // database name
		AuthSecret:          must("AUTH_SECRET"),  // secret for password/session hashing
		SessionCookieName:   getenv("SESSION_COOKIE_NAME", "KUNSTEWI-AUTH"),
		SessionCookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"), // empty keeps the cookie host-scoped
		SessionCacheTTLMin:  atoi(getenv("SESSION_CACHE_TTL_MIN", "30")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an optional environment variable, falling
// back to def when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoi converts s to an int, returning zero on failure.  Optional numeric
// variables use it together with getenv so defaults stay in one place.
func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
