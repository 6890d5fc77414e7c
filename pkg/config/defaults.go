package config

import (
	"time"

	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/recommend"
	"github.com/Sumatoshi-tech/sortbench/pkg/timing"
)

// Server defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Minute
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodySize     = "16MB"
	DefaultRateLimit       = 5.0
	DefaultRateBurst       = 10
)

// DefaultCORSOrigins allows any origin.
var DefaultCORSOrigins = []string{"*"}

// Analysis defaults.
const (
	DefaultLargeArrayThreshold = timing.DefaultLargeArrayThreshold
	DefaultDuplicateDivisor    = profile.DefaultDuplicateDivisor
	DefaultDisorderDivisor     = profile.DefaultDisorderDivisor
	DefaultReverseMergeLimit   = recommend.DefaultReverseMergeLimit
	DefaultLargeInputSize      = recommend.DefaultLargeInputSize
	DefaultParallel            = false
	DefaultWorkers             = 2
	DefaultMaxInputLength      = 1_000_000
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Telemetry defaults.
const (
	DefaultSampleRatio = 1.0
	DefaultEnvironment = ""
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)
