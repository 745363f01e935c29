package main

import (
	"os"

	"bennypowers.dev/dtexport/internal/export"
	"bennypowers.dev/dtexport/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError logs err unless the export host already reported it
func reportError(err error) {
	if export.Reported(err) {
		return
	}
	log.Error("%v", err)
}
