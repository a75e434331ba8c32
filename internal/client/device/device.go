// Package device describes the machine the CLI runs on. The description is
// stamped on every item shared from it.
package device

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// seams for tests
var (
	hostname  = os.Hostname
	goos      = runtime.GOOS
	goarch    = runtime.GOARCH
	goVersion = runtime.Version
)

var osLabels = map[string]string{
	"darwin":  "Mac",
	"windows": "Windows",
	"linux":   "Linux",
	"android": "Android",
	"ios":     "iOS",
	"freebsd": "FreeBSD",
}

// Info returns "<hostname> (<OS>/<arch>, Go <version>)".
func Info() string {
	host, err := hostname()
	if err != nil || host == "" {
		host = "Unknown"
	}

	label, ok := osLabels[goos]
	if !ok {
		label = goos
	}

	return fmt.Sprintf("%s (%s/%s, Go %s)", host, label, goarch, strings.TrimPrefix(goVersion(), "go"))
}
