package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textops/internal/command"
	"github.com/dshills/textops/internal/stats"
	"github.com/dshills/textops/internal/textops"
)

// ModuleName is the global the document API is installed under.
const ModuleName = "textops"

// Bind installs the textops table, bound to doc and the actions of reg.
// Binding again replaces the previous table.
func (s *State) Bind(doc textops.Document, reg *command.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	m := &module{doc: doc, reg: reg}
	funcs := make(map[string]lua.LGFunction)
	for _, name := range reg.Names() {
		funcs[FuncName(name)] = m.action(name)
	}
	// Document access wins over an action of the same name.
	funcs["run"] = m.run
	funcs["text"] = m.text
	funcs["select"] = m.selectRange
	funcs["cursor"] = m.cursor
	funcs["stats"] = m.stats
	funcs["undo"] = m.undo

	s.L.SetGlobal(ModuleName, s.L.SetFuncs(s.L.NewTable(), funcs))
	return nil
}

// FuncName is the textops function an action is exposed as: the part
// after the last dot ("lines.sort" is textops.sort), except that
// "percent." actions keep their prefix ("percentEncode").
func FuncName(action string) string {
	prefix, last, ok := strings.Cut(action, ".")
	if !ok {
		return action
	}
	if i := strings.LastIndexByte(last, '.'); i >= 0 {
		last = last[i+1:]
	}
	if prefix != "percent" || last == "" {
		return last
	}
	return prefix + strings.ToUpper(last[:1]) + last[1:]
}

type module struct {
	doc textops.Document
	reg *command.Registry
}

// dispatch runs an action and pushes whether it changed the document.
// Failed actions raise a Lua error.
func (m *module) dispatch(L *lua.LState, name string, args *lua.LTable) int {
	res := m.reg.Dispatch(m.doc, command.Action{Name: name, Args: argsFromTable(args)})
	if res.IsError() {
		L.RaiseError("%s: %s", name, res.Message)
		return 0
	}
	L.Push(lua.LBool(res.IsOK()))
	return 1
}

// run(name [, args]) -> changed
func (m *module) run(L *lua.LState) int {
	name := L.CheckString(1)
	return m.dispatch(L, name, L.OptTable(2, nil))
}

func (m *module) action(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		return m.dispatch(L, name, L.OptTable(1, nil))
	}
}

// text([start, end]) -> string
func (m *module) text(L *lua.LState) int {
	start := L.OptInt(1, 0)
	end := L.OptInt(2, m.doc.Len())
	L.Push(lua.LString(m.doc.Text(start, end)))
	return 1
}

// select(start, end)
func (m *module) selectRange(L *lua.LState) int {
	m.doc.SetSelection(L.CheckInt(1), L.CheckInt(2))
	return 0
}

// cursor([pos]) -> pos
func (m *module) cursor(L *lua.LState) int {
	if L.GetTop() >= 1 {
		m.doc.SetCursor(L.CheckInt(1))
	}
	L.Push(lua.LNumber(m.doc.Cursor()))
	return 1
}

// stats() -> {document = {...}, selection = {...} or nil}
func (m *module) stats(L *lua.LState) int {
	L.Push(reportTable(L, stats.Compute(m.doc)))
	return 1
}

// undo() -> ok
func (m *module) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.doc.Undo() == nil))
	return 1
}
