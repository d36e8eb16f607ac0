package command

// Action is a named request to run an operation.
type Action struct {
	// Name is the action identifier, e.g. "lines.sort".
	Name string

	// Args carries the operation parameters.
	Args Args
}

// Args holds action parameters. Handlers read the fields that apply to them
// and ignore the rest.
type Args struct {
	CaseSensitive bool
	Dedup         bool
	Reverse       bool
	// Offset is the rune offset line comparison starts at.
	Offset int
	// Spaces joins lines with a space instead of nothing.
	Spaces bool
	// Keep lists characters percent encoding leaves alone.
	Keep          string
	Encoding      string
	Transliterate bool
	OnSave        bool

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a Args) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a Args) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an integer value from Extra.
func (a Args) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a boolean value from Extra.
func (a Args) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
