package uitests

import (
	"github.com/jsontools/npp-ui-tests/framework"
)

// RunTestSuite runs every scenario that passes the filter, one after another, against the
// editor in env.
func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if env.Operator == nil {
		env.Operator = framework.AutoApprove{}
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("formatting", DoFormattingTests)
		t.Run("culture", DoCultureTests)
		t.Run("tree", DoTreeTests)
		t.Run("linting", DoLintingTests)
	})
}
