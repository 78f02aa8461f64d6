// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent app-level
// configuration; WAFFLE's CoreConfig handles framework-level settings
// like HTTP ports, TLS, logging level, and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: clubhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// SuperAdmin bootstrap: the user with this email is created or
	// promoted to super-admin on startup.
	SuperAdminEmail string

	// BaseURL is the externally visible URL of this service.
	BaseURL string
}
