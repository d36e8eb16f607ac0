package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textops/internal/command"
	"github.com/dshills/textops/internal/stats"
)

// toGoValue converts a Lua value to a Go value. Tables become []any when
// they are sequences and map[string]any otherwise.
func toGoValue(lv lua.LValue) any {
	return toGoValueWithVisited(lv, make(map[*lua.LTable]bool))
}

func toGoValueWithVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
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
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = toGoValueWithVisited(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValueWithVisited(v, visited)
	})
	return m
}

// argsFromTable reads action arguments. Known keys fill the typed fields;
// everything else goes to Extra. Values of the wrong type are ignored.
func argsFromTable(t *lua.LTable) command.Args {
	var a command.Args
	if t == nil {
		return a
	}
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch string(key) {
		case "caseSensitive":
			a.CaseSensitive = lua.LVAsBool(v)
		case "dedup":
			a.Dedup = lua.LVAsBool(v)
		case "reverse":
			a.Reverse = lua.LVAsBool(v)
		case "spaces":
			a.Spaces = lua.LVAsBool(v)
		case "transliterate":
			a.Transliterate = lua.LVAsBool(v)
		case "onSave":
			a.OnSave = lua.LVAsBool(v)
		case "offset":
			if n, ok := v.(lua.LNumber); ok {
				a.Offset = int(n)
			}
		case "keep":
			if s, ok := v.(lua.LString); ok {
				a.Keep = string(s)
			}
		case "encoding":
			if s, ok := v.(lua.LString); ok {
				a.Encoding = string(s)
			}
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]any)
			}
			a.Extra[string(key)] = toGoValue(v)
		}
	})
	return a
}

func metricsTable(L *lua.LState, m stats.Metrics) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("lines", lua.LNumber(m.Lines))
	t.RawSetString("words", lua.LNumber(m.Words))
	t.RawSetString("characters", lua.LNumber(m.Characters))
	t.RawSetString("charactersNoSpaces", lua.LNumber(m.CharactersNoSpaces))
	t.RawSetString("bytes", lua.LNumber(m.Bytes))
	return t
}

// reportTable converts a report; selection is absent (nil) when the report
// has no selection metrics.
func reportTable(L *lua.LState, r stats.Report) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("document", metricsTable(L, r.Document))
	if r.Selection != nil {
		t.RawSetString("selection", metricsTable(L, *r.Selection))
	}
	return t
}
