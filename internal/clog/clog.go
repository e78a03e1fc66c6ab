// Package clog is the toolchain's progress-line logger. The analyzer
// itself never logs (it is single-threaded, synchronous, and touches no
// I/O per spec.md §5); this package exists for the CLI that sits around
// it, in the style of funxy's
// config.IsTestMode/IsLSPMode package-level gates: a plain bool flag
// rather than a logger instance threaded through every call, so tests can
// silence output without touching any function signature.
package clog

import (
	"fmt"
	"os"
)

// Verbose gates progress output. Off by default; the CLI's -verbose flag
// turns it on. Tests leave it false.
var Verbose = false

// Printf writes a progress line to stderr when Verbose is set. Silent
// otherwise.
func Printf(format string, args ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "lycheec: "+format+"\n", args...)
}
