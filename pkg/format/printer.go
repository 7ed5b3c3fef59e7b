package format

import "github.com/leapstack-labs/prqlcore/pkg/writeopt"

// widenSteps lists successively wider line budgets: the default width,
// twice that, then unlimited. No writer in this package iterates over it;
// the writers fall back directly to their wrapped/multi-line layouts.
var widenSteps = []int{defaultLineWidth, defaultLineWidth * 2, writeopt.Unlimited}
