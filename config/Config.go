package config

type Config struct {
	Database            DatabaseConfig
	TechnicalParameters TechnicalParameters
	Email               EmailConfig
	Cleanup             CleanupConfig
	Monitoring          MonitoringConfig
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required"`
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required" sensitive:"true"`
}

type TechnicalParameters struct {
	InstanceId     string
	BasePath       string
	ListenAddress  string `validate:"required"`
	BackendVersion string
	LogDirectory   string
	AllowedOrigins []string
}

type EmailConfig struct {
	SmtpHost     string `validate:"required"`
	SmtpPort     int    `validate:"required"`
	SmtpUsername string
	SmtpPassword string `sensitive:"true"`
	FromAddress  string `validate:"required,email"`
	// AdminEmail receives unpaid-invoice alerts from the cleanup job.
	AdminEmail  string `validate:"required,email"`
	FrontendUrl string `validate:"required,url"`
}

type CleanupConfig struct {
	UserCleanup UserCleanupConfig
}

type UserCleanupConfig struct {
	Enabled bool
	// Schedule is a five-field cron expression. The default fires on the
	// first day of each month at 02:00.
	Schedule string `validate:"required"`
	Timezone string `validate:"required"`
}

type MonitoringConfig struct {
	Enabled bool
}
