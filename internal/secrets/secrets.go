// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// The xplore CLI reads its IEEE Xplore key from the ieee-api-key file.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultDir is the secrets directory the CLI reads at startup.
const DefaultDir = ".secrets"

// IEEEAPIKey is the secret holding the IEEE Xplore API key.
const IEEEAPIKey = "ieee-api-key"

// Secrets maps secret names to their values.
type Secrets map[string]string

// Load reads all files in dir and returns their trimmed contents by filename.
// A missing directory or missing files are not errors; Load returns an empty set.
// Unreadable files are logged as warnings and skipped. A nil log discards them.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Default returns fallback when it is set, otherwise the secret stored
// under key, otherwise "".
func (s Secrets) Default(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Names returns the loaded secret names in sorted order. Values are never
// exposed through it, so it is safe to log.
func (s Secrets) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
