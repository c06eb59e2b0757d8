package config

const (
	defaultDataDir       = "~/.local/share/faceoff"
	defaultLogDir        = "~/.local/share/faceoff/logs"
	defaultLibraryExport = "~/.local/share/faceoff/library.json"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:       defaultDataDir,
			LogDir:        defaultLogDir,
			LibraryExport: defaultLibraryExport,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
