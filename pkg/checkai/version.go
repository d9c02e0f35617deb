// Package checkai holds the server's identity and version stamp.
package checkai

import "github.com/seekerror/build"

var version = build.NewVersion(0, 1, 0)

// Version returns the running server's version.
func Version() build.Version {
	return version
}

// Name is the server's identity string, advertised to connecting agents.
const Name = "checkai"
