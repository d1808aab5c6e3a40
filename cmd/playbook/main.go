// Command playbook is the CLI entry point.
package main

import "github.com/mesh-intelligence/playbook/internal/cli"

func main() {
	cli.Execute()
}
