package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func setPlayFlags(t *testing.T, levels string, watch bool) {
	t.Helper()
	oldLevels, oldWatch, oldDB := flagLevels, flagWatch, flagDBPath
	t.Cleanup(func() {
		flagLevels, flagWatch, flagDBPath = oldLevels, oldWatch, oldDB
	})
	flagLevels = levels
	flagWatch = watch
	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
}

func TestPlayWatchRequiresLevels(t *testing.T) {
	setPlayFlags(t, "", true)

	err := runPlay(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "--watch requires --levels") {
		t.Errorf("runPlay() error = %v, expected the missing --levels error", err)
	}
}

func TestPlayWatchErrorIsWrapped(t *testing.T) {
	setPlayFlags(t, filepath.Join(t.TempDir(), "missing"), true)

	err := runPlay(nil, nil)
	if err == nil {
		t.Fatal("runPlay() error = nil, expected a watcher error")
	}
	if !strings.HasPrefix(err.Error(), "watching levels: ") {
		t.Errorf("runPlay() error = %q, expected the watching levels prefix", err)
	}
}
