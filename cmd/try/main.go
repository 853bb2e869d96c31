package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII names display correctly
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cmd := newRootCmd(defaultEnvironment())
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
