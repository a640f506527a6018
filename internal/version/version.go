package version

// Values for these are injected by the build
var (
	version string
	commit  string
)

// Version returns the opencourse version.
func Version() string {
	return version
}

// Commit returns the git commit SHA for the code that opencourse was built
// from.
func Commit() string {
	return commit
}
