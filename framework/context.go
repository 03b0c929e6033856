package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrOperatorDeclined is the abort reason used when the operator chooses not to continue.
var ErrOperatorDeclined = errors.New("operator declined to continue the tests")

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	aborted    error
}

type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	phase       Phase
	failed      bool
	skipped     bool
	aborting    bool
	skipReason  string
	errors      []error
}

// Run executes a root test action. Tests are run strictly one after another, so the
// contexts it creates are not safe for concurrent use.
func Run(
	filter func(TestID) bool,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	env.results.Aborted = env.aborted
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped && !c.aborting {
				return
			}
			var addError error
			if _, ok := r.(*Context); ok {
				if !c.aborting {
					c.failed = true
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				}
			} else {
				c.failed = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if c.id.IsRoot() {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Aborted: c.aborting}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. It does nothing if the run has already been aborted.
func (c *Context) Run(name string, action func(*Context)) {
	if c.env.aborted != nil {
		return
	}
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	switch {
	case c1.aborting:
		c.env.testLogger.TestAborted(id, c.env.aborted)
	case c1.skipped:
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	default:
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
	if c.env.aborted != nil && !c.id.IsRoot() {
		// Unwind the enclosing tests as well, so nothing after this point sends input.
		c.aborting = true
		panic(c)
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Abort stops the whole test run. The current test exits immediately, and no further
// tests are started. If the test has not recorded an error, it is not counted as failed.
func (c *Context) Abort(reason error) {
	if reason == nil {
		reason = errors.New("test run aborted")
	}
	if c.env.aborted == nil {
		c.env.aborted = reason
	}
	c.aborting = true
	c.phase = PhaseAborted
	panic(c)
}

// Aborting is true while a test is unwinding because of Abort.
func (c *Context) Aborting() bool {
	return c.aborting
}

// Phase returns the current scenario phase.
func (c *Context) Phase() Phase {
	return c.phase
}

// Enter moves the test into another phase. An illegal transition is reported as a test
// error but still takes effect.
func (c *Context) Enter(next Phase) {
	if !c.phase.CanMoveTo(next) {
		c.Errorf("illegal phase transition from %s to %s", c.phase, next)
	}
	if next != c.phase {
		c.Debug("phase: %s -> %s", c.phase, next)
	}
	c.phase = next
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
