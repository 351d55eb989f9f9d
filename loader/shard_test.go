package loader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestShardExportFileRoundTrip(t *testing.T) {
	in := filepath.Join("testdata", "export.json")
	out := t.TempDir()

	n, err := ShardExportFile(in, out)
	if err != nil {
		t.Fatalf("ShardExportFile: %v", err)
	}
	if n != 3 {
		t.Fatalf("wrote %d files, want 3", n)
	}

	sharded, err := LoadBlocksDir(out)
	if err != nil {
		t.Fatalf("LoadBlocksDir: %v", err)
	}
	flat, err := LoadExportFile(in)
	if err != nil {
		t.Fatalf("LoadExportFile: %v", err)
	}
	if !reflect.DeepEqual(sharded, flat) {
		t.Fatalf("sharded tree loads differently:\n got %v\nwant %v", sharded, flat)
	}

	if _, err := LoadBlocksFile(filepath.Join(out, "minecraft", "ladder.json")); err != nil {
		t.Fatalf("ladder shard: %v", err)
	}
}

func TestShardExportFileErrors(t *testing.T) {
	if _, err := ShardExportFile(filepath.Join("testdata", "missing.json"), t.TempDir()); err == nil {
		t.Fatal("expected error for missing input")
	}
	if _, err := ShardExportFile(filepath.Join("testdata", "bad_export.json"), t.TempDir()); err == nil {
		t.Fatal("expected error for bad export")
	}
}

func TestShardExportFileRejectsUnsafeIDs(t *testing.T) {
	ids := []string{
		"minecraft:../../escape",
		"../x:stone",
		"minecraft:a/b",
		`minecraft:a\\b`,
		"..:stone",
		"minecraft:",
		":stone",
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "blocks.json")
			data := `[{"block_id": "` + id + `", "properties": {}, "collision_boxes": []}]`
			if err := os.WriteFile(in, []byte(data), 0o644); err != nil {
				t.Fatal(err)
			}
			out := filepath.Join(dir, "out")
			if _, err := ShardExportFile(in, out); err == nil {
				t.Fatalf("expected error for block_id %q", id)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Fatalf("output dir created for rejected id: %v", err)
			}
		})
	}
}

func TestSplitBlockID(t *testing.T) {
	tests := []struct {
		in, ns, path string
	}{
		{"minecraft:oak_fence", "minecraft", "oak_fence"},
		{"create:cogwheel", "create", "cogwheel"},
		{"stone", DefaultNamespace, "stone"},
	}
	for _, tt := range tests {
		ns, path := SplitBlockID(tt.in)
		if ns != tt.ns || path != tt.path {
			t.Errorf("SplitBlockID(%q) = %q, %q", tt.in, ns, path)
		}
	}
}
