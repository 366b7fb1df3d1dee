package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/quicktask/internal/apperr"
	"github.com/starford/quicktask/internal/platform"
)

func writeRegistry(t *testing.T, vaults map[string]string) string {
	t.Helper()
	entries := make(map[string]any, len(vaults))
	for id, p := range vaults {
		entries[id] = map[string]any{"path": p, "ts": 1700000000000, "open": true}
	}
	data, err := json.Marshal(map[string]any{"vaults": entries, "frame": "hidden"})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "obsidian.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegistryPath(t *testing.T) {
	env := platform.Fixed{Home: "/home/ana", Time: time.Now()}
	cases := map[string]string{
		"darwin":  filepath.Join("/home/ana", "Library", "Application Support", "obsidian", "obsidian.json"),
		"linux":   filepath.Join("/home/ana", ".config", "obsidian", "obsidian.json"),
		"windows": filepath.Join("/home/ana", "AppData", "Roaming", "obsidian", "obsidian.json"),
	}
	for goos, want := range cases {
		got, err := RegistryPath(env, goos)
		if err != nil {
			t.Fatalf("RegistryPath(%s): %v", goos, err)
		}
		if got != want {
			t.Errorf("RegistryPath(%s) = %q, want %q", goos, got, want)
		}
	}
}

func TestRegistryPath_NoHome(t *testing.T) {
	_, err := RegistryPath(platform.Fixed{}, "linux")
	if !errors.Is(err, apperr.ErrHomeDirectoryUnresolvable) {
		t.Errorf("err = %v, want ErrHomeDirectoryUnresolvable", err)
	}
}

func TestDiscover(t *testing.T) {
	work := t.TempDir()
	personal := t.TempDir()
	reg := writeRegistry(t, map[string]string{
		"a1": work,
		"b2": personal,
	})

	vaults, err := Discover(reg)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(vaults) != 2 {
		t.Fatalf("len = %d, want 2", len(vaults))
	}
	byID := map[string]string{}
	for _, v := range vaults {
		byID[v.ID] = v.Path
		if v.Name != filepath.Base(v.Path) {
			t.Errorf("name = %q, want %q", v.Name, filepath.Base(v.Path))
		}
	}
	if byID["a1"] != work || byID["b2"] != personal {
		t.Errorf("vaults = %+v", vaults)
	}
}

func TestDiscover_DropsMissingVaults(t *testing.T) {
	live := t.TempDir()
	gone := filepath.Join(t.TempDir(), "deleted-vault")
	reg := writeRegistry(t, map[string]string{"live": live, "gone": gone, "blank": ""})

	vaults, err := Discover(reg)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(vaults) != 1 || vaults[0].ID != "live" {
		t.Errorf("vaults = %+v, want only live", vaults)
	}
}

func TestDiscover_RegistryMissing(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "obsidian.json"))
	if !errors.Is(err, apperr.ErrConfigNotFound) {
		t.Errorf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestDiscover_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obsidian.json")
	if err := os.WriteFile(path, []byte(`{"vaults": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Discover(path)
	if !errors.Is(err, apperr.ErrConfigParse) {
		t.Errorf("err = %v, want ErrConfigParse", err)
	}
}

func TestDiscover_NoVaultsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obsidian.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	vaults, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(vaults) != 0 {
		t.Errorf("vaults = %+v, want none", vaults)
	}
}

func TestName(t *testing.T) {
	cases := map[string]string{
		"/Users/ana/Notes":  "Notes",
		"/Users/ana/Notes/": "Notes",
		"/":                 "/",
		"..":                "..",
	}
	for in, want := range cases {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}
