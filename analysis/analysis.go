// Package analysis computes per-function static facts over an IR module
// that the SPIR-V backend consumes but does not itself derive: which
// global variables each function references directly in its own
// expressions. Globals reached only through a callee are not counted.
//
// The backend reads the Info struct that Analyze returns.
package analysis

import "github.com/shaderforge/spirvgen/ir"

// FunctionInfo reports facts about a single function gathered by Analyze.
type FunctionInfo struct {
	// UsedGlobals is the set of module-level globals referenced anywhere
	// in the function's body, keyed by handle for O(1) membership tests.
	UsedGlobals map[ir.GlobalVariableHandle]struct{}
}

// Uses reports whether the function references the given global.
func (fi FunctionInfo) Uses(h ir.GlobalVariableHandle) bool {
	_, ok := fi.UsedGlobals[h]
	return ok
}

// Info is the per-module analysis result the backend reads from.
type Info struct {
	functions map[ir.FunctionHandle]FunctionInfo
}

// Function returns the usage facts computed for the given function.
// The zero FunctionInfo (no globals used) is returned for an unanalyzed
// handle rather than panicking, since a module may contain functions the
// analysis was never asked to cover.
func (info *Info) Function(h ir.FunctionHandle) FunctionInfo {
	if info == nil {
		return FunctionInfo{}
	}
	fi, ok := info.functions[h]
	if !ok {
		return FunctionInfo{}
	}
	return fi
}

// Analyze walks every function in the module and records which globals
// each one references. The walk is a single linear pass over the
// function's expression arena (statements are not visited); it does not attempt liveness, uniformity, or any
// analysis beyond the global-usage facts the backend needs to decide
// which handle-space globals to pre-load in a function's prelude block.
func Analyze(module *ir.Module) *Info {
	info := &Info{functions: make(map[ir.FunctionHandle]FunctionInfo, len(module.Functions))}
	for i := range module.Functions {
		fn := &module.Functions[i]
		used := make(map[ir.GlobalVariableHandle]struct{})
		walkExpressions(fn, used)
		info.functions[ir.FunctionHandle(i)] = FunctionInfo{UsedGlobals: used}
	}
	return info
}

func walkExpressions(fn *ir.Function, used map[ir.GlobalVariableHandle]struct{}) {
	for _, expr := range fn.Expressions {
		if g, ok := expr.Kind.(ir.ExprGlobalVariable); ok {
			used[g.Variable] = struct{}{}
		}
	}
}
