package version

// Set at build time with -ldflags "-X titlewatch/version.Version=..."
var (
	Version = "0.1.0"
	Commit  = "unknown"
	Date    = "unknown"
)
