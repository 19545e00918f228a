// Package utils holds dashctl build metadata and small string helpers shared
// by the command tree and the terminal renderer.
package utils

// Set at release time with -ldflags "-X github.com/weelink/dashctl/pkg/utils.Version=...".
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
