package constants

const (
	AppName           = "habitline"
	DefaultConfigPath = "~/.config/habitline/habitline.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys for the two logical stores
	HabitStoreKey = "habitline:habits"
	TraceStoreKey = "habitline:trace"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitline-"
)
