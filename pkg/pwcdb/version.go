package pwcdb

var (
	// Version is set by build flags.
	Version = "dev"
	// Build is set by build flags to the build timestamp.
	Build = "n/a"
)
