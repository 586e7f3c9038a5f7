// Command anbud prices quotes from the command line and manages the stored
// rate tables read by the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
