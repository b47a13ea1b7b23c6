package config

// Значения по умолчанию для незаданных полей конфигурации.
const (
	DefaultUpdateTimeoutSeconds    = 60
	DefaultPagerTimeoutSeconds     = 120
	DefaultJumpReplyTimeoutSeconds = 15
	DefaultJumpMinPages            = 4
	DefaultFooterFormat            = "{page}/{count}"
	DefaultServerHost              = "0.0.0.0"
	DefaultServerPort              = 8080
	DefaultShutdownTimeoutSeconds  = 10
)
