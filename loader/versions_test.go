package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    Version
		wantErr bool
	}{
		{
			name:    "simple version",
			version: "1.21.1",
			want:    Version{Major: 1, Minor: 21, Patch: 1},
		},
		{
			name:    "snapshot version",
			version: "26.1-snapshot-1",
			want:    Version{Major: 26, Minor: 1},
		},
		{
			name:    "two part version",
			version: "26.1",
			want:    Version{Major: 26, Minor: 1},
		},
		{
			name:    "invalid version",
			version: "invalid",
			wantErr: true,
		},
		{
			name:    "bad patch",
			version: "1.21.x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseVersion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseVersion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.21.1", "1.21.5", true},
		{"1.21.5", "1.21.1", false},
		{"1.20.6", "1.21", true},
		{"1.21.5", "26.1-snapshot-1", true},
		{"1.21", "1.21.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			a, err := ParseVersion(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ParseVersion(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Less(b); got != tt.want {
				t.Errorf("%v.Less(%v) = %v, want %v", a, b, got, tt.want)
			}
		})
	}
}

func TestLatestVersion(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"1.20.6", "1.21.5", "1.21.1", "scratch"} {
		if err := os.MkdirAll(filepath.Join(root, d, "blocks"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "9.9.9"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LatestVersion(root)
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if got != "1.21.5" {
		t.Fatalf("LatestVersion = %q, want 1.21.5", got)
	}

	if _, err := LatestVersion(t.TempDir()); err == nil {
		t.Fatal("expected error for empty data root")
	}
}
