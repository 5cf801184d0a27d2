// Command econstat collects and processes Victoria 2 save files into
// economic time series.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
