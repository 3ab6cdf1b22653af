// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets locates the USPTO API key. Keys come from the process
// environment, a dotenv file, or a directory of plain-text files where the
// filename is the key name and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// APIKeyEnv is the environment (and dotenv) variable holding the key.
	APIKeyEnv = "USPTO_API_KEY"

	// APIKeyFile is the file name of the key inside the secrets directory.
	APIKeyFile = "uspto-api-key"
)

// Store holds the secrets found at startup.
type Store struct {
	files  map[string]string
	dotenv map[string]string
	getenv func(string) string
}

// Load reads the secrets directory dir and the dotenv file envFile.
// Missing directories and files are not errors.
func Load(dir, envFile string) (*Store, error) {
	files, err := loadDir(dir)
	if err != nil {
		return nil, err
	}
	dotenv, err := loadDotenv(envFile)
	if err != nil {
		return nil, err
	}
	return &Store{files: files, dotenv: dotenv, getenv: os.Getenv}, nil
}

// APIKey returns the USPTO API key: the process environment wins over the
// dotenv file, which wins over the secrets directory. Empty when unset.
func (s *Store) APIKey() string {
	if v := strings.TrimSpace(s.getenv(APIKeyEnv)); v != "" {
		return v
	}
	if v := s.dotenv[APIKeyEnv]; v != "" {
		return v
	}
	return s.files[APIKeyFile]
}

// Names lists the loaded secret names, sorted, without their values.
func (s *Store) Names() []string {
	var names []string
	for k := range s.files {
		names = append(names, k)
	}
	for k := range s.dotenv {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// loadDir reads every non-hidden regular file in dir. Unreadable files
// produce a warning on stderr but do not abort.
func loadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// loadDotenv parses envFile without modifying the process environment.
func loadDotenv(envFile string) (map[string]string, error) {
	if envFile == "" {
		return map[string]string{}, nil
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out, nil
}
