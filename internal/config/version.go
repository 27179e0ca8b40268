package config

// Build metadata, injected with -ldflags "-X github.com/edirooss/urlparts/internal/config.Version=...".
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)
