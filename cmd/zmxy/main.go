// Command zmxy calls the Zhima credit open API from the command line.
// Results are printed as JSON on stdout.
//
// Usage: zmxy --config zmxy.yaml score <open_id>
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
