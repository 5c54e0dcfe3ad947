package dispatcher

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const (
	cmdGroupAnnotation = "cmd_group"
	cmdGroupDelimiter  = "-"

	cmdGroupOthers = "9-Other"
)

// Inspired by similar approach in: https://github.com/hitzhangjie/godbg (Apache 2.0 License).
func helpCommandsGrouped(cmd *cobra.Command) string {
	groups := map[string][]string{}

	for _, c := range cmd.Commands() {
		if c.Hidden {
			continue
		}

		groupName, ok := c.Annotations[cmdGroupAnnotation]
		if !ok {
			groupName = cmdGroupOthers
		}

		groupCmds := groups[groupName]
		cmdName := c.Name()
		rightPad := strings.Repeat(" ", 16-len(cmdName))
		groupCmds = append(groupCmds, fmt.Sprintf("  %s%s%s", cmdName, rightPad, c.Short))
		sort.Strings(groupCmds)

		groups[groupName] = groupCmds
	}

	groupNames := []string{}

	for k := range groups {
		groupNames = append(groupNames, k)
	}

	sort.Strings(groupNames)

	buf := bytes.Buffer{}

	for _, groupName := range groupNames {
		commands := groups[groupName]

		group := strings.SplitN(groupName, cmdGroupDelimiter, 2)[1]
		buf.WriteString(strings.ToUpper(group) + " COMMANDS:\n")

		for _, cmd := range commands {
			buf.WriteString(fmt.Sprintf("%s\n", cmd))
		}

		buf.WriteString("\n")
	}

	if buf.Len() > 0 {
		buf.Truncate(buf.Len() - 1)
	}

	return buf.String()
}

func helpCommands(cmd *cobra.Command) string {
	buf := bytes.Buffer{}

	buf.WriteString("COMMANDS:\n")

	for _, c := range cmd.Commands() {
		if c.Hidden {
			continue
		}

		cmdName := c.Name()
		rightPad := strings.Repeat(" ", 16-len(cmdName))

		buf.WriteString(fmt.Sprintf("  %s%s%s\n", cmdName, rightPad, c.Short))
	}

	return buf.String()
}

func helpBody(cmd *cobra.Command, heading string) string {
	buf := bytes.Buffer{}

	buf.WriteString(heading)
	buf.WriteString("\n\n")
	buf.WriteString("USAGE:\n")

	if cmd.Runnable() {
		fmt.Fprintf(&buf, "  %s\n", cmd.UseLine())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&buf, "  %s [command]\n", cmd.CommandPath())
	}

	buf.WriteString("\n")

	if cmd.HasAvailableSubCommands() {
		if cmd.Root() == cmd {
			buf.WriteString(helpCommandsGrouped(cmd))
		} else {
			buf.WriteString(helpCommands(cmd))
		}
	}

	if len(cmd.Aliases) != 0 {
		buf.WriteString("\nALIASES:\n")
		fmt.Fprintf(&buf, "  %s\n", cmd.NameAndAliases())
	}

	if cmd.HasExample() {
		buf.WriteString("\nEXAMPLES:\n")
		buf.WriteString(cmd.Example)
		buf.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() {
		buf.WriteString("\nFLAGS:\n")
		buf.WriteString(cmd.LocalFlags().FlagUsages())
	}

	if cmd.HasAvailableInheritedFlags() {
		buf.WriteString("\nGLOBAL FLAGS:\n")
		buf.WriteString(cmd.InheritedFlags().FlagUsages())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&buf, "\nUse \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	return buf.String()
}

func rootCmdHelpFunc(cmd *cobra.Command, _ []string) {
	fmt.Fprint(cmd.OutOrStdout(), helpBody(cmd, cmd.Long))
}

func rootCmdUsageFunc(cmd *cobra.Command) error {
	fmt.Fprint(cmd.ErrOrStderr(), helpBody(cmd, cmd.Short))

	return nil
}
