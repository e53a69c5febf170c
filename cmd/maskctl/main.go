// Command maskctl inspects bit masks and the flag domains that produce them.
package main

import (
	"os"

	"github.com/apex/log"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		log.WithError(err).Error("maskctl failed")
		os.Exit(1)
	}
}
