package version

// Current defines the application version.
// It defaults to "dev" and is overwritten at build time using -ldflags.
var Current = "dev"

const AppName = "coactor"

// UserAgent is sent with every TMDb request.
func UserAgent() string {
	return AppName + "/" + Current
}
