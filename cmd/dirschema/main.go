// Command dirschema inspects the directory entity schema and manages
// stored directory records.
package main

import "github.com/mesh-intelligence/dirschema/internal/cli"

func main() {
	cli.Execute()
}
