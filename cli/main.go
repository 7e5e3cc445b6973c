package main

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-txkit/cli/app"
)

func main() {
	ctl := app.New()
	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintf(ctl.ErrWriter, "neo-txkit: %v\n", err)
		os.Exit(1)
	}
}
