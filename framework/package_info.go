// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one application under test.
//
// The general model is:
//
// 1. The test harness drives an external application that it does not own, and observes
// its output through whatever surface that application exposes.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Each context also tracks which phase of a scenario it is in.
//
// 3. A human operator may be asked to confirm things before and between tests. The
// Operator interface makes that injectable, so unattended runs can approve everything.
//
// 4. A test can abort the entire run when the external application is in a state that
// makes sending it any further input unsafe. No further tests are started after that.
//
// The domain-specific code that knows what is being tested is responsible for the actions
// sent to the application and for a domain-specific test API on top of the test context.
package framework
