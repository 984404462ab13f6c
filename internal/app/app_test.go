package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"score", "risk", "renewal", "behavior", "trends",
		"alerts", "evaluate", "portfolio", "import", "serve",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadProfileFile(t *testing.T) {
	path := writeTempFile(t, "profile.json", `{
		"id": "cust-1",
		"name": "Acme Corp",
		"arr": 85000,
		"health_score": 7.2
	}`)

	p, err := readProfileFile(path)
	if err != nil {
		t.Fatalf("readProfileFile returned error: %v", err)
	}
	if p.ID != "cust-1" || p.ARR != 85000 {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestReadProfileFile_RejectsInvalid(t *testing.T) {
	bad := writeTempFile(t, "bad.json", `{"id": "cust-1", "arr": -5}`)
	if _, err := readProfileFile(bad); err == nil {
		t.Error("expected a validation error for negative ARR")
	}

	garbage := writeTempFile(t, "garbage.json", `{nope`)
	if _, err := readProfileFile(garbage); err == nil {
		t.Error("expected a parse error")
	}
}

func TestReadProfilesFile(t *testing.T) {
	path := writeTempFile(t, "profiles.json", `[
		{"id": "cust-1", "arr": 10000, "health_score": 8},
		{"id": "cust-2", "arr": 20000, "health_score": 4}
	]`)

	profiles, err := readProfilesFile(path)
	if err != nil {
		t.Fatalf("readProfilesFile returned error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[1].ID != "cust-2" {
		t.Errorf("expected cust-2 second, got %s", profiles[1].ID)
	}
}

func TestReadProfilesFile_RejectsNullElements(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"lone null", `[null]`},
		{"null among valid profiles", `[
			{"id": "cust-1", "arr": 10000, "health_score": 8},
			null
		]`},
		{"invalid element", `[
			{"id": "cust-1", "arr": 10000, "health_score": 8},
			{"id": "cust-2", "arr": -1}
		]`},
	}
	for _, tt := range tests {
		path := writeTempFile(t, "profiles.json", tt.content)
		if _, err := readProfilesFile(path); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}
