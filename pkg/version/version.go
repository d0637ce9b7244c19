package version

import "fmt"

// NetcertVersion indicates what version of netcert the binary belongs to
var NetcertVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns a pretty string concatenation of NetcertVersion and GitCommit
func String() string {
	return fmt.Sprintf("netcert version: %s\n     git commit: %s\n", NetcertVersion, GitCommit)
}
