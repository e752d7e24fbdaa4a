// Package scripting runs the Lua hooks named by effect definitions inside a
// sandboxed GopherLua VM.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one hook call when no
// override is configured.
const DefaultInstructionLimit = 100_000

// Globals a hook must not reach. Randomness goes through engine.dice so
// every roll comes from the simulator's source; output goes through
// engine.log.
var strippedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "print"}

var strippedMath = []string{"random", "randomseed"}

// opBudget is a context that cancels itself once Done has been polled more
// often than it allows. The VM polls Done once per opcode.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) < 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// Arm gives L a fresh budget of limit opcodes and returns the function that
// releases it. Each hook call is armed separately so a long-lived VM never
// exhausts a shared budget.
//
// Precondition: limit >= 0; 0 uses DefaultInstructionLimit.
func Arm(L *lua.LState, limit int) context.CancelFunc {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return cancel
}

// NewSandboxedState returns a VM with only the base, table, string and math
// libraries, minus strippedGlobals and math's generator, armed with an
// initial budget of instLimit opcodes.
//
// Postcondition: the caller owns the LState and must call L.Close().
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if m, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		for _, name := range strippedMath {
			m.RawSetString(name, lua.LNil)
		}
	}
	Arm(L, instLimit) //nolint:govet // released when the next call re-arms
	return L
}
