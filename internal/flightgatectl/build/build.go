package build

// Build information, set at build time using ldflags.
var (
	ReleaseVersion = "UNKNOWN"
	GitCommit      = "UNKNOWN"
	BuildTime      = "UNKNOWN"
	GoVersion      = "UNKNOWN"
)
