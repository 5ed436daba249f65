package constants

const (
	AppName            = "miaomotion"
	DisplayName        = "MiaoMotion"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/miaomotion/miaomotion.db"
	Version            = "v1.0.0"

	// StateKey is the single key the whole UserData aggregate is persisted under.
	StateKey = "miao_motion_data"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used by the calendar view (YYYY-MM)
	MonthFormat = "2006-01"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "miaomotion-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifierLockfileName   = "miaomotion-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.miaomotion"
	TrayAppExecutable      = "miaomotion-tray"

	// RecentCheckInCount is how many check-ins the calendar lists under the grid.
	RecentCheckInCount = 5
)
