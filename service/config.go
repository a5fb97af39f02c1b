package service

import (
	"flag"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/rostertools/checker"
)

// KafkaConfig configures the optional streaming ingest.
// Ingest is enabled when Brokers is non-empty.
type KafkaConfig struct {
	// Brokers is a comma-separated list of seed brokers
	Brokers string
	// Topic is the topic carrying one roster record JSON object per message
	Topic string
	// Group is the consumer group name
	Group string
}

// Enabled reports whether Kafka ingest is configured.
func (k KafkaConfig) Enabled() bool {
	return k.Brokers != ""
}

// Config holds the service daemon configuration.
type Config struct {
	// Listen is the host:port the HTTP server binds to
	Listen string
	// LogPath is the log destination: stderr, stdout, or a file path
	LogPath string
	// LogMode determines file handling when LogPath is a file
	LogMode FileMode
	// LogLevel is the minimum level logged
	LogLevel zapcore.Level
	// CacheSize is the number of check results kept in the LRU cache
	CacheSize int
	// DefaultKeyField is the identifier column used when a request does
	// not name one
	DefaultKeyField string
	// Kafka configures optional streaming ingest
	Kafka KafkaConfig
	// DatabaseURI enables the scan history store when set
	DatabaseURI string
	// Logger overrides the configured log sink when set. Used in tests.
	Logger *zap.Logger
	// Version is reported by /version
	Version string
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Listen:          ":8020",
		LogPath:         "stderr",
		LogMode:         FileModeAppend,
		LogLevel:        zap.InfoLevel,
		CacheSize:       128,
		DefaultKeyField: checker.DefaultKeyField,
	}
}

// SetFlags registers the daemon's flags on fs.
func (c *Config) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Listen, "l", c.Listen, "[addr]:port to listen on")
	fs.StringVar(&c.LogPath, "log.path", c.LogPath, "path to send logs (values: stderr, stdout, path in file system)")
	fs.Var(&c.LogMode, "log.filemode", "log file write mode (values: append, truncate, rotate)")
	fs.Var(&c.LogLevel, "log.level", "logging level")
	fs.IntVar(&c.CacheSize, "cache.size", c.CacheSize, "number of check results kept in the response cache")
	fs.StringVar(&c.DefaultKeyField, "key", c.DefaultKeyField, "default identifier column for checks")
	fs.StringVar(&c.Kafka.Brokers, "kafka.brokers", c.Kafka.Brokers, "comma-separated Kafka seed brokers (enables ingest)")
	fs.StringVar(&c.Kafka.Topic, "kafka.topic", "roster-records", "Kafka topic carrying roster records")
	fs.StringVar(&c.Kafka.Group, "kafka.group", "rostertools", "Kafka consumer group")
	fs.StringVar(&c.DatabaseURI, "database-uri", c.DatabaseURI, "PostgreSQL URI enabling the scan history store")
}
