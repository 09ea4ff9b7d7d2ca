package main

import (
	"github.com/lboucha/linkearn/cmd"

	// Subcommands register themselves on the root command in their init().
	_ "github.com/lboucha/linkearn/cmd/cli"
	_ "github.com/lboucha/linkearn/cmd/server"
)

func main() {
	cmd.Execute()
}
