package config

const (
	defaultMissingPath      = "missing_ids.csv"
	defaultProcessedLogPath = "Append_log.csv"
	defaultChunkSize        = 5000
	defaultHistoryFallback  = "~/.local/share/napcon/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30

	// MaxChunkSize bounds rows held in memory per chunk.
	MaxChunkSize = 1_000_000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Missing:      defaultMissingPath,
			ProcessedLog: defaultProcessedLogPath,
		},
		Pipeline: Pipeline{
			ChunkSize:   defaultChunkSize,
			StrictNames: true,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
