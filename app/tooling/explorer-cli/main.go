// This program provides a terminal client for the block explorer.
package main

import "github.com/ardanlabs/blockexplorer/app/tooling/explorer-cli/cmd"

func main() {
	cmd.Execute()
}
