package dispatcher

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outblocks/emit/internal/version"
)

func (d *Dispatcher) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Long:  `Show current build version.`,
		Run: func(cmd *cobra.Command, args []string) {
			d.emitter.Message(fmt.Sprintf("%s %s", d.appName, d.appVersion))

			info := version.Get()
			d.emitter.Verbose(fmt.Sprintf("build: commit %s, %s", info.GitCommit, info.GoVersion))

			if date := version.Date(); date != "" {
				d.emitter.Verbose("build date: " + date)
			}
		},
	}

	return cmd
}
