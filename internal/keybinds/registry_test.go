package keybinds

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch_ContextThenGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextManage, "s", ActionCommit, true},
		{ContextManage, "ctrl+c", ActionQuitForce, true},
		{ContextPrompt, "q", "", false},
		{ContextInspect, "q", ActionClose, true},
		{ContextManage, " ", ActionFieldToggle, true},
	}

	for _, tt := range tests {
		got, ok := r.Match(tt.context, tt.key)
		if ok != tt.found || got != tt.want {
			t.Errorf("Match(%s, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.found)
		}
	}
}

func TestMatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	if _, complete, partial := r.MatchMultiKey(ContextInspect, "g"); complete || !partial {
		t.Fatalf("first g: complete=%v partial=%v", complete, partial)
	}
	action, complete, _ := r.MatchMultiKey(ContextInspect, "g")
	if !complete || action != ActionGoToTop {
		t.Errorf("gg = %q, complete=%v", action, complete)
	}

	r.MatchMultiKey(ContextInspect, "g")
	if _, complete, _ := r.MatchMultiKey(ContextInspect, "x"); complete {
		t.Error("g followed by x should not match")
	}

	action, complete, partial := r.MatchMultiKey(ContextInspect, "G")
	if !complete || partial || action != ActionGoToBottom {
		t.Errorf("G = %q, complete=%v partial=%v", action, complete, partial)
	}
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextManage, ActionCommit); got != "ctrl+s, s" {
		t.Errorf("commit keys = %q", got)
	}
	if got := r.GetBindingString(ContextManage, ActionFieldToggle); got != "space" {
		t.Errorf("toggle keys = %q", got)
	}
	if got := r.GetBindingString(ContextPicker, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("global fallback = %q", got)
	}
	if got := r.GetBindingString(ContextPicker, ActionCommit); got != "unbound" {
		t.Errorf("unbound action = %q", got)
	}
}

func TestApplyConfig_ReplacesDefaultKeys(t *testing.T) {
	r := NewDefaultRegistry()
	config, err := ParseConfig([]byte(`{
		// trailing commas and comments are fine
		"version": "1.0",
		"contexts": {
			"manage": { "commit": "ctrl+w, W", "field_toggle": "space,t", },
		},
	}`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if err := ApplyConfig(r, config); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	if r.HasBinding(ContextManage, "s") {
		t.Error("default commit key should be removed")
	}
	for _, key := range []string{"ctrl+w", "W"} {
		if a, _ := r.Match(ContextManage, key); a != ActionCommit {
			t.Errorf("%q = %q, want commit", key, a)
		}
	}
	if a, _ := r.Match(ContextManage, " "); a != ActionFieldToggle {
		t.Error("space alias not applied")
	}
}

func TestApplyConfig_ReportsBadEntries(t *testing.T) {
	r := NewDefaultRegistry()
	config := &Config{Contexts: map[string]map[string]string{
		"manage":  {"fly": "x"},
		"bogus":   {"quit": "q"},
		"inspect": {"close": "ctrl+"},
	}}

	if err := ApplyConfig(r, config); err == nil {
		t.Error("ApplyConfig() should report unknown actions and contexts")
	}
	if r.HasBinding(ContextManage, "x") {
		t.Error("unknown action must not be bound")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadOrDefault(filepath.Join(dir, "missing.jsonc"))
	if err != nil {
		t.Fatalf("missing file error = %v", err)
	}
	if !r.HasBinding(ContextManage, "s") {
		t.Error("defaults not loaded")
	}

	path := filepath.Join(dir, "keybinds.jsonc")
	if err := os.WriteFile(path, []byte(`{"contexts": {"picker": {"close": "q"}}}`), 0644); err != nil {
		t.Fatal(err)
	}
	r, err = LoadOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := r.Match(ContextPicker, "q"); a != ActionClose {
		t.Errorf("override not applied, got %q", a)
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("malformed file should return an error")
	}
}

func TestExportDefaults_RoundTrips(t *testing.T) {
	config := ExportDefaults()

	r := NewRegistry()
	if err := ApplyConfig(r, config); err != nil {
		t.Fatal(err)
	}

	for _, context := range AllContexts {
		for _, b := range NewDefaultRegistry().ListBindings(context) {
			if b.Context != context {
				continue
			}
			if got, _ := r.Match(context, b.Key); got != b.Action {
				t.Errorf("%s %q = %q, want %q", context, b.Key, got, b.Action)
			}
		}
	}
}
