// Command omctl drives cash in and refund operations from the shell.
//
//	omctl --config mobilemoney.yaml cashin init --amount 5 --phone 699947943 ...
//	omctl --config mobilemoney.yaml cashin verify MP123
//	omctl --config mobilemoney.yaml refund create --amount 5 --phone 699947943 ...
//	omctl --config mobilemoney.yaml refund verify 6543
//
// Results are written to stdout as JSON. Failures are written to stderr as a
// JSON error envelope and exit with status 1.
package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
