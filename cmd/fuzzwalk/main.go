// Command fuzzwalk is the CLI entry point; all real work lives in
// internal/cmd and the packages it wires together.
package main

import "github.com/cybertron10/fuzzwalk/internal/cmd"

func main() {
	cmd.Execute()
}
