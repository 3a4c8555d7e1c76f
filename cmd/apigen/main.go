// Command apigen generates a Go HTTP client from a declarative YAML or
// JSON descriptor. See cmd/apigen/cmd for the command tree.
package main

import "github.com/deploymenttheory/go-apigen/cmd/apigen/cmd"

func main() {
	cmd.Execute()
}
