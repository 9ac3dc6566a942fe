package lepiobs

// Version and Build are set by the build system.
var (
	Version = "v0.2.1"
	Build   string
)
