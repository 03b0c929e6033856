package automation

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/jsontools/npp-ui-tests/framework"
)

// Cultures used by the tests.
const (
	CultureUS     = "en-US"
	CultureGerman = "de-DE"
)

// CommandRunner runs an external program to completion.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Logger framework.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	var cmdLine commandBuilder
	cmdLine.add(name)
	cmdLine.add(args...)
	if r.Logger != nil {
		r.Logger.Printf("Running: %s", cmdLine)
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if output.Len() > 0 {
			return fmt.Errorf("%s: %w: %s", cmdLine, err, strings.TrimSpace(output.String()))
		}
		return fmt.Errorf("%s: %w", cmdLine, err)
	}
	return nil
}

// SetCulture changes the Windows culture, which decides among other things whether ','
// or '.' separates the fractional part of numbers. Nothing checks that it took effect.
func SetCulture(ctx context.Context, runner CommandRunner, identifier string) error {
	return runner.Run(ctx, "powershell", "Set-Culture", identifier)
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
