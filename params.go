package main

import (
	"fmt"
	"io"

	"github.com/jsontools/npp-ui-tests/framework"

	"github.com/spf13/cobra"
)

const usage = `Usage: npp-ui-tests <optional notepad++ version> <optional x86> <optional noinput>
If x86 supplied, use 32-bit notepad++
If noinput supplied, do not prompt the user for input
If notepad++ version not supplied or notepad++ version == latest, use latest version of Notepad++`

type commandParams struct {
	version    string
	latest     bool
	x64        bool
	noInput    bool
	help       bool
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	configPath string
}

// Read parses the command line. If it returns nil, either help is set or the parameters
// describe a test run.
func (c *commandParams) Read(args []string, out io.Writer) error {
	parsed := false
	cmd := &cobra.Command{
		Use:           "npp-ui-tests [version|help] [x86] [noinput]",
		Short:         "Drives Notepad++ to test the JsonTools plugin",
		Long:          usage,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed = true
			c.readPositional(args)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	flags.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	flags.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	flags.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	flags.StringVar(&c.configPath, "config", "", "TOML file overriding install locations and delays")

	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.Execute(); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	if !parsed {
		// cobra has already printed the help for --help
		c.help = true
	}
	return nil
}

// readPositional reads "<version> <arch> <noinput>". Each is optional, but a later one can
// only be given along with the earlier ones, except that "noinput" is also recognized in
// place of the arch.
func (c *commandParams) readPositional(args []string) {
	c.version = "latest"
	c.x64 = true
	if len(args) > 0 {
		c.version = args[0]
	}
	if c.version == "help" {
		c.help = true
		return
	}
	c.latest = c.version == "latest"
	if len(args) > 1 {
		switch args[1] {
		case "noinput":
			c.noInput = true
		case "x86":
			c.x64 = false
		}
	}
	if len(args) > 2 && args[2] == "noinput" {
		c.noInput = true
	}
}
