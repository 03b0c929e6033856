package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jsontools/npp-ui-tests/automation"
	"github.com/jsontools/npp-ui-tests/config"
	"github.com/jsontools/npp-ui-tests/framework"
	"github.com/jsontools/npp-ui-tests/logging"
	"github.com/jsontools/npp-ui-tests/settings"
	"github.com/jsontools/npp-ui-tests/uitests"
)

const confirmationPhrase = "I understand"

const preconditionNotice = `Before running these tests, you MUST verify the following:
1. Compressing JSON is bound to Ctrl+Alt+Shift+C.
2. Pretty-printing JSON is bound to Ctrl+Alt+Shift+P.
3. Opening the JSON tree is bound to Ctrl+Alt+Shift+J.
4. Copying the selected text is bound to Ctrl+C.
5. Selecting the entire document is bound to Ctrl+A.
6. Closing the currently open file is bound to Ctrl+W.
7. Closing Notepad++ is bound to Alt+F4.
8. Opening a new file is bound to Ctrl+N.
9. You have the NavigateTo plugin installed (https://github.com/young-developer/nppNavigateTo/tree/master)
10. No unsaved files (e.g., "new 1", "new 2") are currently open.

If ANY of these things is not true, these tests will fail horribly and do lots of bad things,
because they simulate keyboard input.
DO NOT TRY TO INTERACT WITH THE KEYBOARD OR MOUSE DURING THE TESTS!

If you are unhappy with what the tests are doing, answer anything but Y when asked whether
to continue, or close the console window.

After running these tests, your computer's culture settings will be en-US. This means that
the default decimal separator will be '.' instead of ','.
If you don't like that, you can reset it by running the command
"Set-Culture <whatever your culture is>" in Powershell.

If you understand all of this and still want to run the tests, type 'I understand' and press enter.
`

func main() {
	var params commandParams
	if err := params.Read(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}
	if params.help {
		fmt.Println(usage)
		os.Exit(0)
	}
	os.Exit(run(params, os.Stdin, os.Stdout))
}

// run does everything after argument parsing and returns the exit code.
func run(params commandParams, in io.Reader, out io.Writer) int {
	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	var operator framework.Operator = framework.AutoApprove{}
	if !params.noInput {
		operator = framework.NewConsoleOperator(in, out)
	}
	understood, err := operator.Acknowledge(preconditionNotice, confirmationPhrase)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	if !understood {
		fmt.Fprintln(out, "Not running the tests.")
		return 1
	}

	settingsPath := cfg.Settings.Path
	if settingsPath == "" {
		if settingsPath, err = settings.DefaultPath(); err != nil {
			fmt.Fprintln(out, err)
			return 1
		}
	}

	desktop, err := automation.NewDesktop()
	if err != nil {
		fmt.Fprintf(out, "Cannot control the desktop: %s\n", err)
		return 1
	}

	mainDebugLogger, closeLogger, err := logging.NewDebugLogger(params.debugAll)
	if err != nil {
		fmt.Fprintf(out, "Cannot create debug logger: %s\n", err)
		return 1
	}
	defer closeLogger()

	env := &uitests.Environment{
		Editor: automation.NewEditor(desktop, cfg, mainDebugLogger),
		Open: automation.OpenOptions{
			Version: params.version,
			X64:     params.x64,
			Latest:  params.latest,
		},
		Settings: settings.File{Path: settingsPath},
		Commands: automation.ExecRunner{Logger: mainDebugLogger},
		Operator: operator,
		Logger:   mainDebugLogger,
	}

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Out:                  out,
	}

	results := uitests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if !results.OK() {
		return 1
	}
	return 0
}
