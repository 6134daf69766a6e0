// Package suites registers the shipped benchmark suites. Importing it
// (normally from the CLI) populates the bench catalog; registration
// order here is the order suites appear in listings and reports.
package suites

import (
	"fmt"

	"github.com/hweber/blockbench/pkg/define"
	"github.com/hweber/blockbench/pkg/perm"
)

// Names of the workload defines shared across suites.
const (
	defCount   = "COUNT"
	defValSize = "VAL_SIZE"
	defOrder   = "ORDER"
)

// key returns the i-th workload key.
func key(i int) string {
	return fmt.Sprintf("key%06d", i)
}

// orderDefine enumerates all n! orderings of n elements: local index i is
// the Lehmer index handed to perm.Nth by the case body.
func orderDefine(n int) define.Define {
	return define.Define{
		Name: defOrder,
		Resolve: func(_ any, i int) define.Value {
			return define.Value(i)
		},
		Permutations: int(perm.Factorial(n)),
	}
}
