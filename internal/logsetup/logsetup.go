// Package logsetup configures the standard logger. Import it for side effects
// from every main package so all binaries log in the same format.
package logsetup

import (
	"log"
	"os"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	// Under systemd the journal already timestamps every line.
	if os.Getenv("JOURNAL_STREAM") != "" {
		log.SetFlags(log.Lmsgprefix)
	}
}
