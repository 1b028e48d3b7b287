package main

import (
	"os"
	"testing"
)

func TestGetNextMigrationNum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"000001_credentials.sql", "000007_preferences.sql", "README.md", "x_notes.sql"} {
		if err := os.WriteFile(dir+"/"+name, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := getNextMigrationNum(entries); got != 8 {
		t.Errorf("getNextMigrationNum() = %d, want 8", got)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"add_index", "add_index"},
		{"Add Snapshot Table", "add_snapshot_table"},
		{"  drop--old  ", "drop_old"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "****"},
		{"abcd", "****"},
		{"secret-key-1234", "****1234"},
	}

	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
