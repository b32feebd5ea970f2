package lua

import (
	"log/slog"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hotkeys/internal/action"
	"github.com/dshills/hotkeys/internal/dispatcher"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// ModuleName is the name scripts require.
const ModuleName = "hotkeys"

// SourcePrefix prefixes the Source of every handler bound by a script.
const SourcePrefix = "lua:"

// Host runs scripts against an engine.
type Host struct {
	state  *State
	engine *dispatcher.Engine
	router *action.Router
	logger *slog.Logger

	// source is the Source recorded on handlers bound right now.
	source string

	scripts []string
}

// NewHost creates a host with a fresh state and installs the hotkeys
// module. router may be nil, in which case action and run raise errors.
func NewHost(engine *dispatcher.Engine, router *action.Router, opts ...StateOption) *Host {
	h := &Host{
		state:  NewState(opts...),
		engine: engine,
		router: router,
		logger: engine.Logger(),
		source: SourcePrefix + "chunk",
	}
	h.state.Preload(ModuleName, h.loader)
	h.state.SetGlobal(ModuleName, h.module(h.state.L))
	return h
}

// State returns the underlying state.
func (h *Host) State() *State {
	return h.state
}

// Scripts returns the files loaded so far, in order.
func (h *Host) Scripts() []string {
	return append([]string(nil), h.scripts...)
}

// LoadFile runs a script. Handlers it binds carry Source "lua:<base name>".
func (h *Host) LoadFile(path string) error {
	prev := h.source
	h.source = SourceFor(path)
	defer func() { h.source = prev }()

	if err := h.state.DoFile(path); err != nil {
		return err
	}
	h.scripts = append(h.scripts, path)
	h.logger.Info("script loaded", "path", path)
	return nil
}

// LoadString runs a chunk. Handlers it binds carry Source "lua:chunk".
func (h *Host) LoadString(code string) error {
	return h.state.DoString(code)
}

// Reload unbinds everything a script bound and runs it again.
func (h *Host) Reload(path string) error {
	removed := h.engine.RemoveSource(SourceFor(path))
	h.logger.Debug("script unloaded", "path", path, "handlers", removed)
	return h.LoadFile(path)
}

// Close releases the Lua state. Handlers bound by scripts stay in the
// engine and continue as no-ops.
func (h *Host) Close() error {
	return h.state.Close()
}

// SourceFor returns the handler Source used for a script path.
func SourceFor(path string) string {
	return SourcePrefix + filepath.Base(path)
}

func (h *Host) loader(L *lua.LState) int {
	L.Push(h.module(L))
	return 1
}

func (h *Host) module(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind":               h.bind,
		"unbind":             h.unbind,
		"setScope":           h.setScope,
		"getScope":           h.getScope,
		"deleteScope":        h.deleteScope,
		"isPressed":          h.isPressed,
		"getPressedKeyCodes": h.getPressedKeyCodes,
		"trigger":            h.trigger,
		"action":             h.action,
		"run":                h.run,
	})
}

// bind(spec, fn)
// bind(spec, scope, fn)
// bind(spec, {scope=, keydown=, keyup=, action=}, fn)
//
// keydown defaults to true; only an explicit false turns it off.
func (h *Host) bind(L *lua.LState) int {
	spec := L.CheckString(1)

	opts := dispatcher.Options{Source: h.source}
	fnIdx := 2
	if L.GetTop() >= 3 {
		fnIdx = 3
		switch v := L.Get(2).(type) {
		case lua.LString:
			opts.Scope = string(v)
		case *lua.LTable:
			opts.Scope = luaString(v, "scope")
			opts.NoKeydown = v.RawGetString("keydown") == lua.LFalse
			opts.Keyup = lua.LVAsBool(v.RawGetString("keyup"))
			opts.Action = luaString(v, "action")
		case *lua.LNilType:
		default:
			L.ArgError(2, "expected scope string or options table")
			return 0
		}
	}
	fn := L.CheckFunction(fnIdx)

	id := h.engine.Bind(spec, opts, h.callback(fn))
	L.Push(lua.LString(id.String()))
	return 1
}

// callback wraps a Lua function as a shortcut callback.
func (h *Host) callback(fn *lua.LFunction) keymap.Callback {
	return func(ev *key.Event, hd *keymap.Handler) keymap.Result {
		L := h.state.L
		values, err := h.state.CallFunction(fn, eventTable(L, ev), handlerTable(L, hd))
		if err != nil {
			h.logger.Warn("script callback failed",
				"shortcut", hd.Shortcut, "source", hd.Source, "error", err)
			return keymap.Continue
		}
		return resultFromValues(values)
	}
}

// unbind(spec)
// unbind(spec, scope)
// unbind(spec, scope, id)
func (h *Host) unbind(L *lua.LState) int {
	spec := L.CheckString(1)

	var n int
	switch L.GetTop() {
	case 1:
		n = h.engine.Unbind(spec)
	case 2:
		n = h.engine.UnbindScope(spec, L.CheckString(2))
	default:
		id, err := keymap.ParseHandlerID(L.CheckString(3))
		if err != nil {
			L.ArgError(3, err.Error())
			return 0
		}
		n = h.engine.UnbindScopeHandler(spec, L.CheckString(2), id)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (h *Host) setScope(L *lua.LState) int {
	h.engine.SetScope(L.CheckString(1))
	return 0
}

func (h *Host) getScope(L *lua.LState) int {
	L.Push(lua.LString(h.engine.GetScope()))
	return 1
}

// deleteScope(scope, fallback?)
func (h *Host) deleteScope(L *lua.LState) int {
	n := h.engine.DeleteScope(L.CheckString(1), L.OptString(2, ""))
	L.Push(lua.LNumber(n))
	return 1
}

// isPressed(name | code)
func (h *Host) isPressed(L *lua.LState) int {
	var pressed bool
	switch v := L.Get(1).(type) {
	case lua.LNumber:
		pressed = h.engine.IsPressed(key.Code(v))
	case lua.LString:
		pressed = h.engine.IsPressedName(string(v))
	default:
		L.ArgError(1, "expected key name or code")
		return 0
	}
	L.Push(lua.LBool(pressed))
	return 1
}

func (h *Host) getPressedKeyCodes(L *lua.LState) int {
	codes := h.engine.GetPressedKeyCodes()
	t := L.CreateTable(len(codes), 0)
	for _, c := range codes {
		t.Append(lua.LNumber(c))
	}
	L.Push(t)
	return 1
}

// trigger(spec, scope?)
func (h *Host) trigger(L *lua.LState) int {
	n := h.engine.Trigger(L.CheckString(1), L.OptString(2, ""))
	L.Push(lua.LNumber(n))
	return 1
}

// action(name, fn) registers fn(args, ev) as a named action.
func (h *Host) action(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if h.router == nil {
		L.RaiseError("actions are not available")
		return 0
	}

	h.router.RegisterFunc(name, func(a action.Action) (keymap.Result, error) {
		values, err := h.state.CallFunction(fn,
			ToLuaValue(h.state.L, a.Args), eventTable(h.state.L, a.Event))
		if err != nil {
			return keymap.Continue, err
		}
		return resultFromValues(values), nil
	})
	return 0
}

// run(name, args?) runs an action and returns true if it suppressed.
func (h *Host) run(L *lua.LState) int {
	name := L.CheckString(1)
	if h.router == nil {
		L.RaiseError("actions are not available")
		return 0
	}

	result, err := h.router.Run(action.Action{
		Name: name,
		Args: TableToMap(L.Get(2)),
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(result == keymap.Suppress))
	return 1
}

func luaString(t *lua.LTable, field string) string {
	if s, ok := t.RawGetString(field).(lua.LString); ok {
		return string(s)
	}
	return ""
}
