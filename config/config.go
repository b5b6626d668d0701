package config

// Build metadata, filled at build time via -ldflags.
var (
	Version   string
	Commit    string
	Branch    string
	BuildDate string
)
