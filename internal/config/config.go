package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may drain on shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// Storage drivers accepted in DatabaseConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DatabaseConfig selects and locates the task store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres mysql"`
	// URL is the driver-specific data source name. Unused by the memory driver.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
	// MaxOpenConns caps the connection pool of networked drivers.
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=0"`
}

// IsSQL reports whether the configured driver is backed by database/sql.
func (c DatabaseConfig) IsSQL() bool {
	return c.Driver != DriverMemory
}
