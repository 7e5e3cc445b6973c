package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/neo-txkit/cli/nep5"
	"github.com/nspcc-dev/neo-txkit/cli/util"
	"github.com/nspcc-dev/neo-txkit/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "neo-txkit\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a neo-txkit instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "neo-txkit"
	ctl.Version = config.Version
	ctl.Usage = "Neo3 preview2 transaction toolkit"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, nep5.NewCommands()...)
	ctl.Commands = append(ctl.Commands, util.NewCommands()...)
	return ctl
}
