package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"srcon-go/console"
	"srcon-go/logging"
	"srcon-go/rcon"
)

const envPrefix = "SRCON"

// options is the resolved CLI configuration.
type options struct {
	Host     string
	Port     string
	Password string
	Timeout  time.Duration

	TerminalMode  bool
	SilentMode    bool
	DisableColors bool
	RawOutput     bool
	Verbose       bool
	Wait          time.Duration

	Commands []string
}

// app carries the process streams so the command can run under test.
type app struct {
	stdin    io.ReadCloser
	stdout   io.Writer
	stderr   io.Writer
	exitCode int

	// start replaces run under test.
	start func(*options) int
}

func newRootCmd(a *app) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           rcon.AppName + " [flags] [commands...]",
		Short:         "Send rcon commands to a Source RCON game server",
		Long:          longHelp,
		Version:       rcon.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, v, args)
			if err != nil {
				return err
			}
			start := a.start
			if start == nil {
				start = a.run
			}
			a.exitCode = start(opts)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("host", "H", rcon.DefaultHost, "Server address")
	flags.StringP("port", "P", rcon.DefaultPort, "Port")
	flags.StringP("password", "p", "", "Rcon password")
	flags.Duration("timeout", rcon.DefaultTimeout, "Connect and response timeout")
	flags.BoolP("terminal", "t", false, "Terminal mode")
	flags.BoolP("silent", "s", false, "Silent mode")
	flags.BoolP("no-color", "c", false, "Disable colors")
	flags.BoolP("raw", "r", false, "Output raw packets")
	flags.UintP("wait", "w", 0, fmt.Sprintf("Wait for specified duration (seconds) between each command (1-%ds)", rcon.MaxWaitTime))
	flags.Bool("verbose", false, "Log protocol events to stderr")

	v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.BindEnv("host")
	v.BindEnv("port")
	v.BindEnv("timeout")
	v.BindEnv("password", envPrefix+"_PASS")

	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func loadOptions(cmd *cobra.Command, v *viper.Viper, args []string) (*options, error) {
	opts := &options{
		Host:          v.GetString("host"),
		Port:          v.GetString("port"),
		Password:      v.GetString("password"),
		Timeout:       v.GetDuration("timeout"),
		TerminalMode:  v.GetBool("terminal"),
		SilentMode:    v.GetBool("silent"),
		DisableColors: v.GetBool("no-color"),
		RawOutput:     v.GetBool("raw"),
		Verbose:       v.GetBool("verbose"),
		Commands:      args,
	}

	if opts.Password == "" {
		return nil, errors.New("you must provide password (-p password)")
	}
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout %s", opts.Timeout)
	}

	wait := v.GetUint("wait")
	if cmd.Flags().Changed("wait") && (wait == 0 || wait > rcon.MaxWaitTime) {
		return nil, fmt.Errorf("wait value out of range (1-%d)", rcon.MaxWaitTime)
	}
	opts.Wait = time.Duration(wait) * time.Second

	// Enable terminal mode if no commands given
	if len(opts.Commands) == 0 {
		opts.TerminalMode = true
	}
	return opts, nil
}

func (a *app) run(opts *options) int {
	logger := logging.New(logging.Options{
		Verbose: opts.Verbose,
		NoColor: opts.DisableColors || !isTerminal(a.stderr),
		Output:  a.stderr,
	})

	printer := console.NewPrinter(a.stdout, console.Options{
		Colors: !opts.DisableColors && isTerminal(a.stdout),
		Raw:    opts.RawOutput,
		Silent: opts.SilentMode,
	})

	var exitCode int
	err := rcon.WithSession(sessionConfig(opts, &logger), func(s *rcon.Session) error {
		runner := console.NewRunner(s, printer, a.stderr)
		runner.Wait = opts.Wait

		if opts.TerminalMode {
			exitCode = runner.RunTerminal(console.TerminalConfig{
				Stdin:  a.stdin,
				Stdout: a.stdout,
				Stderr: a.stderr,
			})
			return nil
		}
		setupSignalHandler()
		exitCode = runner.RunCommands(opts.Commands)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, rcon.ErrAuth):
			fmt.Fprintf(a.stderr, "Authentication failed: %v\n", err)
		default:
			fmt.Fprintf(a.stderr, "Connection failed: %v\n", err)
		}
		return 1
	}
	return exitCode
}

func sessionConfig(opts *options, logger *zerolog.Logger) rcon.Config {
	return rcon.Config{
		Host:     opts.Host,
		Port:     opts.Port,
		Password: opts.Password,
		Timeout:  opts.Timeout,
		Logger:   logger,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
