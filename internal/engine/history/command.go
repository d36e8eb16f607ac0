package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/textops/internal/engine/buffer"
	"github.com/dshills/textops/internal/engine/cursor"
)

// Command is an edit that can be executed, undone and executed again.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer, sel *Selection) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer, sel *Selection) error

	// Description returns a human-readable description of the command.
	Description() string
}

// ReplaceCommand replaces the text of a range.
//
// After Execute the selection is mapped across the edit, unless Select is
// set, in which case it becomes *Select.
type ReplaceCommand struct {
	Range   Range
	NewText string
	Select  *Selection

	op *Operation
}

// NewReplaceCommand creates a new replace command.
func NewReplaceCommand(r Range, newText string) *ReplaceCommand {
	return &ReplaceCommand{Range: r, NewText: newText}
}

// NewDeleteCommand creates a command that removes a range.
func NewDeleteCommand(r Range) *ReplaceCommand {
	return &ReplaceCommand{Range: r}
}

// NewInsertCommand creates a command that inserts text at offset and leaves
// the caret after it.
func NewInsertCommand(offset Offset, text string) *ReplaceCommand {
	after := cursor.NewCursorSelection(offset + utf8.RuneCountInString(text))
	return &ReplaceCommand{
		Range:   buffer.NewRange(offset, offset),
		NewText: text,
		Select:  &after,
	}
}

// Execute applies the replacement.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	op := NewOperation(c.Range, buf.TextRange(c.Range.Start, c.Range.End), c.NewText)
	op.SelectionBefore = *sel

	if _, err := buf.Replace(c.Range.Start, c.Range.End, c.NewText); err != nil {
		return fmt.Errorf("replace at range %s: %w", c.Range, err)
	}

	switch {
	case c.Select != nil:
		*sel = *c.Select
	case c.NewText == "":
		*sel = cursor.AdjustSelectionForDeletion(*sel, c.Range)
	default:
		*sel = cursor.TransformSelection(*sel, buffer.Edit{Range: c.Range, NewText: c.NewText})
	}
	*sel = sel.Clamp(buf.Len())

	op.SelectionAfter = *sel
	c.op = op
	return nil
}

// Undo restores the replaced text and the selection it found.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	if c.op == nil {
		return nil
	}
	inv := c.op.Invert()
	if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
		return fmt.Errorf("undo replace: %w", err)
	}
	*sel = inv.SelectionAfter
	return nil
}

// Operation returns the record of the last Execute, or nil.
func (c *ReplaceCommand) Operation() *Operation {
	return c.op
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	oldLen := c.Range.Len()
	newLen := utf8.RuneCountInString(c.NewText)
	switch {
	case oldLen == 0:
		return fmt.Sprintf("Insert %d characters", newLen)
	case newLen == 0:
		return fmt.Sprintf("Delete %d characters", oldLen)
	default:
		return fmt.Sprintf("Replace %d with %d characters", oldLen, newLen)
	}
}

// delta is the length change of the last Execute.
func (c *ReplaceCommand) delta() int {
	if c.op == nil {
		return 0
	}
	return c.op.Delta()
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: commands}
}

// Execute runs all commands in order. On failure the steps already run are
// undone.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf, sel); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf, sel)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf, sel); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

func commandDelta(cmd Command) int {
	switch c := cmd.(type) {
	case *ReplaceCommand:
		return c.delta()
	case *CompoundCommand:
		total := 0
		for _, sub := range c.Commands {
			total += commandDelta(sub)
		}
		return total
	}
	return 0
}
