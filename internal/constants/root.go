package constants

const (
	AppName            = "studylit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studylit/studylit.db"
	Version            = "v0.1.0"

	// ConnectionEnvVar holds a PostgreSQL connection string with credentials.
	ConnectionEnvVar = "STUDYLIT_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studylit-"
	BackupFileSuffix = ".db"

	// MaxParallelDays bounds the number of day allocation passes running at once.
	MaxParallelDays = 8
)
