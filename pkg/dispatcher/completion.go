package dispatcher

import (
	"os"

	"github.com/spf13/cobra"
)

func (d *Dispatcher) newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

	Bash:
	  $ source <(` + d.appName + ` completion bash)

	  # To load completions for each session, execute once:
	  $ ` + d.appName + ` completion bash > /etc/bash_completion.d/` + d.appName + `

	Zsh:
	  $ ` + d.appName + ` completion zsh > "${fpath[1]}/_` + d.appName + `"

	fish:
	  $ ` + d.appName + ` completion fish | source

	PowerShell:
	  PS> ` + d.appName + ` completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.emitter.Pause(func() error {
				switch args[0] {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				case "powershell":
					return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
				}

				return nil
			})
		},
	}

	return cmd
}
