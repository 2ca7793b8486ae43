// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Groups lists the command groups in display order.
var Groups = []string{groupCluster, groupUsageLimit, groupDatashare, groupIdc}

var all = sync.OnceValue(func() []Runner {
	var ops []Runner
	ops = append(ops, clusterOperations()...)
	ops = append(ops, usageLimitOperations()...)
	ops = append(ops, datashareOperations()...)
	ops = append(ops, idcOperations()...)
	return ops
})

// All returns every bound operation, grouped and in declaration order.
// The returned slice must not be modified.
func All() []Runner {
	return all()
}

// InGroup returns the operations of one command group.
func InGroup(group string) []Runner {
	var ops []Runner
	for _, op := range All() {
		if op.Describe().Group == group {
			ops = append(ops, op)
		}
	}
	return ops
}

// Lookup finds an operation by group and verb, or by its API name
// (case-insensitive) when verb is empty.
func Lookup(group, verb string) (Runner, error) {
	for _, op := range All() {
		d := op.Describe()
		if verb == "" && strings.EqualFold(d.Name, group) {
			return op, nil
		}
		if d.Group == group && d.Verb == verb {
			return op, nil
		}
	}
	if verb == "" {
		return nil, fmt.Errorf("unknown operation %q", group)
	}
	if !slices.Contains(Groups, group) {
		return nil, fmt.Errorf("unknown command group %q (expected one of %s)", group, strings.Join(Groups, ", "))
	}
	return nil, fmt.Errorf("unknown command %q in group %q", verb, group)
}
