// Package main provides the fixtures CLI application.
// fixtures manages a club's fixture pipeline: importing league
// spreadsheets and pages, tracking the email workflow tasks they
// imply, and assembling the fixture emails themselves.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
