// File: cmd/peuck/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// peuck is a diagnostic tool for CPU topology and thread affinity.

package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	version   = "0.1.0"
	gitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("peuck failed")
		os.Exit(1)
	}
}
