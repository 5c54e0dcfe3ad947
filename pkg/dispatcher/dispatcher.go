// Package dispatcher wires an application's command table onto the
// emitter lifecycle. Global flags and environment variables select the
// verbosity mode before any command runs; after the selected command
// finishes the emitter is terminated exactly once, gracefully on
// success or with a full error report on failure.
package dispatcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/outblocks/emit/internal/util"
	"github.com/outblocks/emit/internal/version"
	"github.com/outblocks/emit/pkg/clipath"
	"github.com/outblocks/emit/pkg/emitter"
)

// CommandGroup gathers related commands under one heading in the global
// help. Groups appear in the order given; ungrouped commands end up
// under "Other".
type CommandGroup struct {
	Name     string
	Commands []*cobra.Command
}

// Options configures a Dispatcher.
type Options struct {
	// AppName names the executable; it also derives the environment
	// variable prefix and the log file location.
	AppName string

	// Summary is the one-line application description for help texts.
	Summary string

	// Version is the application version reported by the version command
	// and embedded in the greeting.
	Version string

	// DocsBaseURL is passed through to the emitter for error doc links.
	DocsBaseURL string

	// StreamingBrief is passed through to the emitter.
	StreamingBrief bool

	Groups []CommandGroup

	// Emitter to drive; a fresh one is created when nil.
	Emitter *emitter.Emitter
}

// Dispatcher owns the root command, the environment binding and the
// emitter lifecycle.
type Dispatcher struct {
	v       *viper.Viper
	env     *Environment
	emitter *emitter.Emitter
	rootCmd *cobra.Command

	appName        string
	appVersion     string
	greeting       string
	docsBaseURL    string
	streamingBrief bool

	opts struct {
		quiet     bool
		verbose   bool
		verbosity string
	}
}

// New builds a dispatcher from the command table. The emitter is not
// initialized yet; that happens in Execute, once the verbosity mode is
// known.
func New(opts Options) *Dispatcher {
	v := viper.New()

	appVersion := opts.Version
	if appVersion == "" {
		appVersion = version.Version()
	}

	d := &Dispatcher{
		v:              v,
		emitter:        opts.Emitter,
		appName:        opts.AppName,
		appVersion:     appVersion,
		greeting:       fmt.Sprintf("Starting %s version %s", opts.AppName, appVersion),
		docsBaseURL:    opts.DocsBaseURL,
		streamingBrief: opts.StreamingBrief,
	}

	if d.emitter == nil {
		d.emitter = emitter.New()
	}

	d.env = NewEnvironment(v, envPrefix(opts.AppName))

	setupEnvVars(d.env)

	d.rootCmd = d.newRoot(opts)

	return d
}

func envPrefix(appName string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(appName))
}

func setupEnvVars(env *Environment) {
	env.AddVarWithDefault("verbosity",
		fmt.Sprintf("set verbosity level: %s", util.HumanizeList(emitter.ModeNames(), "or")),
		emitter.ModeBrief.String())
}

// Emitter returns the emitter the dispatcher drives; commands use it
// for all their output.
func (d *Dispatcher) Emitter() *emitter.Emitter {
	return d.emitter
}

// Root exposes the root command, mainly so applications can attach
// extra commands or flags before Execute.
func (d *Dispatcher) Root() *cobra.Command {
	return d.rootCmd
}

func (d *Dispatcher) rootLongHelp() string {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, "%s - %s", d.appName, d.appVersion)

	info := d.env.Info()
	if len(info) > 0 {
		buf.WriteString("\n\nENVIRONMENT VARIABLES:\n")

		for _, row := range info {
			fmt.Fprintf(&buf, "  %-30s%s\n", row[0], row[1])
		}

		buf.Truncate(buf.Len() - 1)
	}

	return buf.String()
}

func (d *Dispatcher) newRoot(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           d.appName,
		Short:         fmt.Sprintf("%s - %s", d.appName, opts.Summary),
		Long:          d.rootLongHelp(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	f := cmd.PersistentFlags()
	f.BoolVarP(&d.opts.quiet, "quiet", "q", false, "only produce final messages and errors")
	f.BoolVarP(&d.opts.verbose, "verbose", "v", false, "show progress and verbose information")
	f.StringVar(&d.opts.verbosity, "verbosity", "",
		fmt.Sprintf("set the verbosity level (%s)", util.HumanizeList(emitter.ModeNames(), "or")))

	d.env.BindCLIFlag("verbosity", f.Lookup("verbosity"))

	// defined here so the early persistent-flag parse accepts --help
	f.BoolP("help", "h", false, "help")
	f.Lookup("help").Hidden = true

	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose", "verbosity")

	cmd.SetUsageFunc(rootCmdUsageFunc)
	cmd.SetHelpFunc(rootCmdHelpFunc)

	cmd.AddCommand(
		d.newCompletionCmd(),
		d.newVersionCmd(),
	)

	for i, group := range opts.Groups {
		groupKey := fmt.Sprintf("%d%s%s", i+1, cmdGroupDelimiter, group.Name)

		for _, c := range group.Commands {
			if c.Annotations == nil {
				c.Annotations = map[string]string{}
			}

			c.Annotations[cmdGroupAnnotation] = groupKey
			cmd.AddCommand(c)
		}
	}

	return cmd
}

func (d *Dispatcher) initConfig() {
	d.v.AddConfigPath(clipath.ConfigDir(d.appName))
	d.v.SetConfigType("yaml")
	d.v.SetConfigName("." + d.appName)

	d.v.SetEnvPrefix(d.env.Prefix())
	d.v.AutomaticEnv()

	// a config file is optional
	_ = d.v.ReadInConfig()
}

// resolveMode pre-parses the persistent flags so the emitter can be
// initialized with the right mode before cobra takes over. Unknown
// flags belong to subcommands and are skipped here.
func (d *Dispatcher) resolveMode(args []string) (emitter.Mode, error) {
	flags := d.rootCmd.PersistentFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true

	if err := flags.Parse(args); err != nil {
		return 0, err
	}

	switch {
	case d.opts.quiet:
		return emitter.ModeQuiet, nil
	case d.opts.verbose:
		return emitter.ModeVerbose, nil
	}

	return emitter.ParseMode(d.v.GetString("verbosity"))
}

// Execute runs the command selected by os.Args and returns the process
// exit code. The emitter is initialized first and always terminated:
// EndedOK when the command succeeds, a full error report otherwise.
func (d *Dispatcher) Execute(ctx context.Context) int {
	return d.execute(ctx, os.Args[1:])
}

func (d *Dispatcher) execute(ctx context.Context, args []string) int {
	d.initConfig()

	mode, err := d.resolveMode(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	err = d.emitter.Init(emitter.Config{
		Mode:           mode,
		AppName:        d.appName,
		Greeting:       d.greeting,
		DocsBaseURL:    d.docsBaseURL,
		StreamingBrief: d.streamingBrief,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	d.rootCmd.SetArgs(args)

	if err := d.rootCmd.ExecuteContext(ctx); err != nil {
		report := emitter.AsError(err)
		d.emitter.ReportError(report)

		return report.ReturnCode()
	}

	d.emitter.EndedOK()

	return 0
}
