package framework

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Operator is the human watching a test run. The harness asks it to acknowledge the
// preconditions before any input is sent, and whether to go on after each scenario.
type Operator interface {
	// Acknowledge shows the notice and reports whether the operator typed the phrase.
	Acknowledge(notice, phrase string) (bool, error)
	// Continue asks whether to run the next scenario.
	Continue(prompt string) (bool, error)
}

// AutoApprove is an Operator for unattended runs. It agrees to everything.
type AutoApprove struct{}

func (AutoApprove) Acknowledge(string, string) (bool, error) { return true, nil }

func (AutoApprove) Continue(string) (bool, error) { return true, nil }

// ConsoleOperator asks questions on a terminal.
type ConsoleOperator struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleOperator(in io.Reader, out io.Writer) *ConsoleOperator {
	return &ConsoleOperator{in: bufio.NewReader(in), out: out}
}

func (o *ConsoleOperator) Acknowledge(notice, phrase string) (bool, error) {
	answer, err := o.ask(notice)
	if err != nil {
		return false, err
	}
	return answer == phrase, nil
}

// Continue accepts "y" or "Y". Anything else, including an empty line, means no.
func (o *ConsoleOperator) Continue(prompt string) (bool, error) {
	answer, err := o.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func (o *ConsoleOperator) ask(prompt string) (string, error) {
	fmt.Fprint(o.out, prompt)
	line, err := o.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading operator input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
