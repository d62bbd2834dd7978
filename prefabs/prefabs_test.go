package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/pengu-adventures/projectile"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	useDir(t, t.TempDir())
	for _, name := range []string{EnemySystemFile, EnemiesFile, ProjectilesFile, PlayerFile, "prefabs/" + PlayerFile} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) is empty", name)
		}
	}
	if _, err := Load("missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
	if _, ok := ModTime(PlayerFile); ok {
		t.Fatalf("embedded prefab should have no disk mod time")
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, PlayerFile), []byte("health: 9\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Health != 9 {
		t.Fatalf("Health = %d, want 9", spec.Health)
	}
	if spec.MoveSpeed != DefaultPlayerSpec().MoveSpeed || spec.ThrowCooldown != 300*time.Millisecond {
		t.Fatalf("missing keys lost their defaults: %+v", spec)
	}
	if _, ok := ModTime(PlayerFile); !ok {
		t.Fatalf("expected a disk mod time")
	}
}

func TestLoadSpecReportsBadYAML(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, PlayerFile), []byte("health: [\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	spec, err := LoadPlayerSpec()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if spec != DefaultPlayerSpec() {
		t.Fatalf("bad file should yield the defaults, got %+v", spec)
	}
}

func TestLoadProjectileSpecs(t *testing.T) {
	cases := []struct {
		name       string
		file       string
		wantPlayer projectile.Spec
		wantEnemy  projectile.Spec
	}{
		{
			name:       "embedded",
			wantPlayer: projectile.PlayerSnowball,
			wantEnemy:  projectile.EnemySnowball,
		},
		{
			name: "partial file keeps built-in enemy snowball",
			file: "player_snowball:\n  damage: 2\n  speed: 300\n  radius: 4\n  max_lifetime: 1s\n",
			wantPlayer: projectile.Spec{
				Damage:      2,
				Speed:       300,
				Radius:      4,
				MaxLifetime: time.Second,
			},
			wantEnemy: projectile.EnemySnowball,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			useDir(t, dir)
			if tc.file != "" {
				if err := os.WriteFile(filepath.Join(dir, ProjectilesFile), []byte(tc.file), 0o644); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}
			specs, err := LoadProjectileSpecs()
			if err != nil {
				t.Fatalf("LoadProjectileSpecs: %v", err)
			}
			if specs.Player != tc.wantPlayer {
				t.Fatalf("player = %+v, want %+v", specs.Player, tc.wantPlayer)
			}
			if specs.Enemy != tc.wantEnemy {
				t.Fatalf("enemy = %+v, want %+v", specs.Enemy, tc.wantEnemy)
			}
		})
	}
}

func TestReloadable(t *testing.T) {
	cases := map[string]bool{
		"prefabs/enemies.yaml": true,
		"a.YML":                true,
		"levels/level1.json":   true,
		"levels/level1.tengo":  true,
		"notes.txt":            false,
		"enemies.yaml~":        false,
		"":                     false,
	}
	for path, want := range cases {
		if got := Reloadable(path); got != want {
			t.Fatalf("Reloadable(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	target := filepath.Join(dir, EnemiesFile)
	if err := os.WriteFile(target, []byte("basic: {speed: 10}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if name, ok := w.Poll(); ok {
			if name != target {
				t.Fatalf("got event for %s, want %s", name, target)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no event for %s", target)
}

func TestWatcherCloseIsSafe(t *testing.T) {
	var nilWatcher *Watcher
	if err := nilWatcher.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
	if _, ok := nilWatcher.Poll(); ok {
		t.Fatalf("nil Poll reported an event")
	}
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
