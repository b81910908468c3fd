package config

const (
	defaultLogDir     = "~/.local/share/introcut/logs"
	defaultHistoryDir = "~/.local/share/introcut/history"

	defaultMinIntroDuration     = 20
	defaultMaxIntroDuration     = 150
	defaultDefaultIntroDuration = 60
	defaultConfidenceThreshold  = 0.6

	defaultSilenceNoiseDB    = -30
	defaultSilenceMinSeconds = 2.0

	defaultSceneThreshold      = 0.4
	defaultBlackMinSeconds     = 2.0
	defaultBlackPixelThreshold = 0.0

	defaultMinDialogueDensity = 0.3
	defaultSilenceGapSeconds  = 30.0
	defaultSubtitleLanguage   = "en"

	defaultBatchWorkers = 2

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultBatchExtensions() []string {
	return []string{".mkv", ".mp4", ".avi", ".mov", ".ts"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			HistoryDir: defaultHistoryDir,
		},
		Detection: Detection{
			MinIntroDuration:     defaultMinIntroDuration,
			MaxIntroDuration:     defaultMaxIntroDuration,
			DefaultIntroDuration: defaultDefaultIntroDuration,
			ConfidenceThreshold:  defaultConfidenceThreshold,
		},
		Audio: Audio{
			Enabled:           true,
			SilenceNoiseDB:    defaultSilenceNoiseDB,
			SilenceMinSeconds: defaultSilenceMinSeconds,
		},
		Video: Video{
			Enabled:             true,
			SceneThreshold:      defaultSceneThreshold,
			BlackMinSeconds:     defaultBlackMinSeconds,
			BlackPixelThreshold: defaultBlackPixelThreshold,
		},
		Subtitles: Subtitles{
			MinDialogueDensity: defaultMinDialogueDensity,
			SilenceGapSeconds:  defaultSilenceGapSeconds,
			Language:           defaultSubtitleLanguage,
		},
		Batch: Batch{
			Workers:    defaultBatchWorkers,
			Extensions: defaultBatchExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
