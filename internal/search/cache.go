package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// fingerprints maps vector id to a sha256 of the composed profile text. An
// unchanged fingerprint means the stored embedding is still valid, so the
// record can be skipped without the staleness blind spot a bare marker file
// would have.
type fingerprints map[string]string

func loadFingerprints(path string) (fingerprints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fingerprints{}, nil
		}
		return nil, fmt.Errorf("read fingerprint cache: %w", err)
	}
	var fp fingerprints
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, fmt.Errorf("parse fingerprint cache %s: %w", path, err)
	}
	return fp, nil
}

func (fp fingerprints) save(path string) error {
	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
