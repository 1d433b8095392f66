// Command mudadmin edits player records while the server is not running.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mudadmin: %v\n", err)
		os.Exit(1)
	}
}
