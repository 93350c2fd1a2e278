package main

import (
	"outlook-draft-mailer/internal/cmd"
)

func main() {
	// Failures are reported on the console; the process exits normally either
	// way so the audit log stays the source of truth for per-contact outcomes.
	_ = cmd.Execute()
}
