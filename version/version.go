package version

// values are set via ldflags on release builds
var (
	Version     = "dev"
	GitCommit   = ""
	FullVersion = composeVersion()
)

func composeVersion() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
