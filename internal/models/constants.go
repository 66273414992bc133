package models

// Common constants used across the application
const (
	// UnknownValue is the fallback value when data is unavailable or calculation fails
	UnknownValue = "UNKNOWN"
)

const (
	DefaultSearchRadiusInMeters = 1000
	MaxSearchRadiusInMeters     = 50000
)

const (
	DefaultMaxCountForStations = 10
	DefaultMaxCountForBoards   = 20
	MaxAllowedCount            = 100
)
