package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ShardExportFile splits a flat exporter dump into one BlockStatesFile per
// block under outRoot/<namespace>/<path>.json, the layout LoadBlocksDir
// reads. It returns the number of files written.
func ShardExportFile(inputPath, outRoot string) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", inputPath, err)
	}

	var records []BlockStateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("unmarshal %s: %w", inputPath, err)
	}

	// Group by block_id
	byBlock := make(map[string][]BlockStateRecordSlim)
	for i, r := range records {
		if r.BlockID == "" {
			return 0, fmt.Errorf("%s: record %d: missing block_id", inputPath, i)
		}
		if ns, path := SplitBlockID(r.BlockID); !fileSegment(ns) || !fileSegment(path) {
			return 0, fmt.Errorf("%s: record %d: block_id %q is not a valid file name", inputPath, i, r.BlockID)
		}
		byBlock[r.BlockID] = append(byBlock[r.BlockID], r.BlockStateRecordSlim)
	}

	blockIDs := make([]string, 0, len(byBlock))
	for id := range byBlock {
		blockIDs = append(blockIDs, id)
	}
	sort.Strings(blockIDs)

	for _, id := range blockIDs {
		ns, path := SplitBlockID(id)
		dir := filepath.Join(outRoot, ns)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("mkdir %s: %w", dir, err)
		}

		buf, err := json.MarshalIndent(BlockStatesFile{BlockID: id, States: byBlock[id]}, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("marshal %s: %w", id, err)
		}
		outFile := filepath.Join(dir, path+".json")
		if err := os.WriteFile(outFile, buf, 0o644); err != nil {
			return 0, fmt.Errorf("write %s: %w", outFile, err)
		}
	}

	return len(blockIDs), nil
}

// SplitBlockID splits "minecraft:oak_fence" into its namespace and path.
// An id without a namespace gets DefaultNamespace.
func SplitBlockID(blockID string) (namespace, path string) {
	ns, p, ok := strings.Cut(blockID, ":")
	if !ok {
		return DefaultNamespace, blockID
	}
	return ns, p
}

// fileSegment reports whether s can be used as a single path element
// without leaving its parent directory.
func fileSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, filepath.Separator)
}
