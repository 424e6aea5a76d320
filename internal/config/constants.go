package config

// Application constants for the sales series cleaner
const (
	// Application Info
	AppName    = "salesclean"
	AppVersion = "1.0.0"

	// Output file suffixes appended to the input base name
	CorrectedFileSuffix = "_corrected.csv"
	AnomalyFileSuffix   = "_anomalies.csv"
	MonthlyFileSuffix   = "_monthly.csv"

	// Detector names accepted by the cleaning.detector setting
	DetectorIsolationForest = "isolation-forest"
	DetectorRobustZScore    = "robust-zscore"

	// Cleaning defaults
	DefaultContamination = "0.1"
	DefaultRollingWindow = 3
	DefaultSeed          = 42
	DefaultTrees         = 100
	DefaultSampleSize    = 256
	DefaultDetector      = DetectorIsolationForest

	// File Paths (relative to the working directory)
	DefaultInputDir  = "."
	DefaultOutputDir = "."
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "logs/cleaner.log"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "both"
)
