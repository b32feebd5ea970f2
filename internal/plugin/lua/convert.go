package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// ToGoValue converts a Lua value to a Go value. Tables become []any when
// they are contiguous arrays and map[string]any otherwise. Functions and
// cycles convert to nil.
func ToGoValue(lv lua.LValue) any {
	return toGo(lv, make(map[*lua.LTable]bool))
}

func toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var name string
		switch kv := k.(type) {
		case lua.LString:
			name = string(kv)
		case lua.LNumber:
			name = fmt.Sprintf("%v", float64(kv))
		default:
			name = k.String()
		}
		m[name] = toGo(v, visited)
	})
	return m
}

// TableToMap converts a Lua table to a string-keyed map.
// Returns nil for anything that is not a table.
func TableToMap(lv lua.LValue) map[string]any {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}
	m := make(map[string]any)
	visited := map[*lua.LTable]bool{t: true}
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGo(v, visited)
	})
	return m
}

// ToLuaValue converts a Go value to a Lua value.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case key.Code:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := L.CreateTable(len(val), 0)
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(ToLuaValue(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(val))
		for k, item := range val {
			t.RawSetString(k, ToLuaValue(L, item))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// eventTable exposes a key event to scripts.
func eventTable(L *lua.LState, ev *key.Event) *lua.LTable {
	t := L.CreateTable(0, 8)
	if ev == nil {
		return t
	}
	t.RawSetString("type", lua.LString(ev.Type.String()))
	t.RawSetString("key", lua.LString(ev.Key))
	t.RawSetString("code", lua.LNumber(key.Normalize(ev.Code())))
	t.RawSetString("shift", lua.LBool(ev.ShiftKey))
	t.RawSetString("ctrl", lua.LBool(ev.CtrlKey))
	t.RawSetString("alt", lua.LBool(ev.AltKey))
	t.RawSetString("meta", lua.LBool(ev.MetaKey))
	return t
}

// handlerTable exposes a handler record to scripts.
func handlerTable(L *lua.LState, h *keymap.Handler) *lua.LTable {
	t := L.CreateTable(0, 5)
	if h == nil {
		return t
	}
	t.RawSetString("id", lua.LString(h.ID.String()))
	t.RawSetString("shortcut", lua.LString(h.Shortcut))
	t.RawSetString("scope", lua.LString(h.Scope))
	t.RawSetString("action", lua.LString(h.Action))
	t.RawSetString("source", lua.LString(h.Source))
	return t
}

// resultFromValues maps script return values to a dispatch result.
// Only a literal false suppresses.
func resultFromValues(values []lua.LValue) keymap.Result {
	if len(values) > 0 && values[0] == lua.LFalse {
		return keymap.Suppress
	}
	return keymap.Continue
}
