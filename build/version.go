package build

// CurrentCommit is set with -ldflags "-X github.com/lagrangedao/go-machine-matcher/build.CurrentCommit=..."
var CurrentCommit string

const BuildVersion = "0.1.0"

func UserVersion() string {
	if CurrentCommit == "" {
		return BuildVersion
	}
	return BuildVersion + "+git." + CurrentCommit
}
