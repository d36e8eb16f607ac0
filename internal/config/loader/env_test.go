package loader

import (
	"testing"
	"time"
)

func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[path[start:i]]
		if !ok {
			return nil, false
		}
		start = i + 1
	}
	return current, true
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TEXTOPS_LOG_LEVEL", "debug")
	t.Setenv("TEXTOPS_STATS_LIVE_THRESHOLD", "1000")
	t.Setenv("TEXTOPS_ENCODING", "latin_1")
	t.Setenv("TEXTOPS_LINES_CASE_SENSITIVE", "yes")
	t.Setenv("TEXTOPS_PLUGINS_TIMEOUT", "250ms")
	t.Setenv("OTHER_LOG_LEVEL", "error")

	config, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"stats.liveThreshold", int64(1000)},
		{"encoding.default", "latin_1"},
		{"lines.caseSensitive", true},
		{"plugins.timeout", 250 * time.Millisecond},
	}
	for _, tt := range tests {
		got, ok := getByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	l := NewEnvLoader("TEXTOPS_")
	l.environ = func() []string {
		return []string{
			"TEXTOPS_LINES_OFFSET=1",
			"TEXTOPS_PERCENT_KEEP_UNENCODED=/:",
			"TEXTOPS_LONE=x",
			"PATH=/bin",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := getByPath(config, "lines.offset"); got != int64(1) {
		t.Errorf("lines.offset = %v (%T), want 1", got, got)
	}
	if got, _ := getByPath(config, "percent.keepUnencoded"); got != "/:" {
		t.Errorf("percent.keepUnencoded = %v", got)
	}
	if _, ok := config["lone"]; ok {
		t.Error("a variable without a section should be ignored")
	}
	if len(config) != 2 {
		t.Errorf("config = %v", config)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("TEXTOPS_")
	tests := []struct {
		env  string
		want string
	}{
		{"TEXTOPS_LOGGING_LEVEL", "logging.level"},
		{"TEXTOPS_LINES_JOIN_WITH_SPACES", "lines.joinWithSpaces"},
		{"TEXTOPS_STATS_LIVE_THRESHOLD", "stats.liveThreshold"},
		{"TEXTOPS_SOLO", ""},
		{"TEXTOPS__X", ""},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-12", int64(-12)},
		{"true", true},
		{"OFF", false},
		{"1.5", 1.5},
		{"2s", 2 * time.Second},
		{"cp1252", "cp1252"},
		{"[oops", "[oops"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}

	arr, ok := parseValue(`["a", "b"]`).([]any)
	if !ok || len(arr) != 2 || arr[0] != "a" {
		t.Errorf("JSON array = %v", parseValue(`["a", "b"]`))
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("TEXTOPS_", nil)
	l.AddMapping("TEXTOPS_DEFAULT", "encoding.default")
	l.environ = func() []string { return []string{"TEXTOPS_DEFAULT=koi8_r"} }

	config, _ := l.Load()
	if got, _ := getByPath(config, "encoding.default"); got != "koi8_r" {
		t.Errorf("mapped value = %v", got)
	}

	l.RemoveMapping("TEXTOPS_DEFAULT")
	config, _ = l.Load()
	if len(config) != 0 {
		t.Errorf("after RemoveMapping config = %v", config)
	}
}
