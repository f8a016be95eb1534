package service

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/totem-project/totem/internal/store"
)

// CommitEnv is the environment a commit filter expression runs against.
// Expressions must evaluate to a boolean, e.g.
//
//	All()
//	Changed("spec", "data")
//	ChangeCount() > 3 && !Removed()
type CommitEnv struct {
	ObjectID string
	Changes  []store.Record
}

func (e CommitEnv) All() bool {
	return true
}

func (e CommitEnv) None() bool {
	return false
}

// ChangeCount returns the number of top-level change records.
func (e CommitEnv) ChangeCount() int {
	return len(e.Changes)
}

// Changed reports whether any of the given top-level keys changed. With no
// arguments it reports whether anything changed at all.
func (e CommitEnv) Changed(keys ...string) bool {
	return e.matches("", keys)
}

// Added reports whether any of the given top-level keys was added.
func (e CommitEnv) Added(keys ...string) bool {
	return e.matches("addition", keys)
}

// Removed reports whether any of the given top-level keys was removed.
func (e CommitEnv) Removed(keys ...string) bool {
	return e.matches("removal", keys)
}

// Modified reports whether any of the given top-level keys was modified,
// flat or recursively.
func (e CommitEnv) Modified(keys ...string) bool {
	return e.matches("modification", keys) || e.matches("nested", keys)
}

func (e CommitEnv) matches(kind string, keys []string) bool {
	for _, rec := range e.Changes {
		if kind != "" && rec.Kind != kind {
			continue
		}
		if len(keys) == 0 {
			return true
		}
		for _, key := range keys {
			if rec.Key == key {
				return true
			}
		}
	}
	return false
}

// CompileFilter compiles a commit filter expression against [CommitEnv].
func CompileFilter(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(CommitEnv{}), expr.AsBool())
}

func runFilter(prog *vm.Program, env CommitEnv) (bool, error) {
	output, err := expr.Run(prog, env)
	if err != nil {
		return false, err
	}
	keep, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", output)
	}
	return keep, nil
}
