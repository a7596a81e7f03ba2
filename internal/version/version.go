package version

// These are overridden at build time via -ldflags "-X".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
