// Command goalplan evaluates savings goals from the command line.
package main

import "os"

func main() {
	os.Exit(Execute())
}
