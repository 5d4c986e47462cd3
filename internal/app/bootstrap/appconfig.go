// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// handles framework-level settings like HTTP/HTTPS ports, TLS, logging
// level and format, CORS, and request body size limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token signing configuration
	TokenSecret     string        // HS256 signing key (must be at least 32 bytes)
	TokenIssuer     string        // iss claim on every issued token
	AccessTokenTTL  time.Duration // Access token lifetime
	RefreshTokenTTL time.Duration // Refresh token lifetime

	// Pending registrations older than this are reaped by a TTL index.
	// Zero disables expiry.
	PendingExpiry time.Duration

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit, email-smtp.us-east-1.amazonaws.com for SES)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit, SES SMTP credentials for AWS)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@potluck.app)
	MailFromName string // From display name (e.g., Potluck)

	// SiteName appears in outgoing email subjects and bodies.
	SiteName string

	// AdminEmail, when set, names the account promoted to the admin
	// role on startup so the shared catalogs can be managed.
	AdminEmail string
}
