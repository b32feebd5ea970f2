package lua

import (
	"maps"
	"slices"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals can load code from disk or strings and bypass require.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// builtinModules are the standard modules require may return.
var builtinModules = []string{"string", "table", "math"}

// Sandbox restricts what a script can load.
type Sandbox struct {
	L *lua.LState

	allowed map[string]bool
}

// NewSandbox creates a sandbox for L that allows the safe builtins.
func NewSandbox(L *lua.LState) *Sandbox {
	s := &Sandbox{L: L, allowed: make(map[string]bool)}
	for _, name := range builtinModules {
		s.allowed[name] = true
	}
	return s
}

// Install removes the loader globals and replaces require.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	require := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.allowed[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

// Allow permits require to load a preloaded module.
func (s *Sandbox) Allow(name string) {
	s.allowed[name] = true
}

// Allowed returns the modules require may load, sorted.
func (s *Sandbox) Allowed() []string {
	return slices.Sorted(maps.Keys(s.allowed))
}
