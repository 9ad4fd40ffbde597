package translio

// Name is the project name as printed by the CLI.
const Name = "translio"

// Version is the semantic version, overridable at build time:
//
//	go build -ldflags "-X github.com/nesmachny/translio.Version=1.0.0"
var Version = "0.1.0"

// GitCommit and BuildDate are stamped via ldflags; "unknown" when built plain.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version, suffixed with the short commit when known.
func FullVersion() string {
	v := Version
	if GitCommit != "" && GitCommit != "unknown" {
		c := GitCommit
		if len(c) > 7 {
			c = c[:7]
		}
		v += "+" + c
	}
	return v
}
