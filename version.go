package vaultswap

import "fmt"

// Release numbers of vaultswapd. A change of the stored model layout bumps
// Maj.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit is set with
//   -ldflags "-X github.com/iov-one/vaultswap.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version is reported in abci Info and by "vaultswapd version".
func Version() string {
	v := version
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
