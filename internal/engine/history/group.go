package history

import (
	"fmt"

	"github.com/dshills/textops/internal/engine/buffer"
)

// GroupScope is one level of an open group. It remembers where its own
// commands start, so Rollback undoes only those even when nested:
//
//	scope := h.GroupScope("Redecode")
//	defer scope.End()
//	if err := edit(); err != nil {
//	    return scope.Rollback(buf, sel)
//	}
type GroupScope struct {
	history *History
	mark    int
	active  bool
}

// GroupScope opens a group level and returns its closer.
func (h *History) GroupScope(name string) *GroupScope {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.beginGroupLocked(name)
	return &GroupScope{history: h, mark: len(h.groupCmds), active: true}
}

// End closes the scope's level and reports whether an undo entry was
// recorded. Only the first call to End or Rollback has effect.
func (g *GroupScope) End() bool {
	if !g.active {
		return false
	}
	g.active = false
	return g.history.EndGroup()
}

// Rollback undoes the commands executed since the scope opened, newest
// first, drops them from the group and closes the scope's level.
func (g *GroupScope) Rollback(buf *buffer.Buffer, sel *Selection) error {
	if !g.active {
		return nil
	}
	g.active = false

	h := g.history
	h.mu.Lock()
	var cmds []Command
	if g.mark < len(h.groupCmds) {
		cmds = append(cmds, h.groupCmds[g.mark:]...)
		h.groupCmds = h.groupCmds[:g.mark]
	}
	h.mu.Unlock()

	var err error
	for i := len(cmds) - 1; i >= 0; i-- {
		if uerr := cmds[i].Undo(buf, sel); uerr != nil && err == nil {
			err = fmt.Errorf("rollback %s: %w", cmds[i].Description(), uerr)
		}
	}
	h.EndGroup()
	return err
}
