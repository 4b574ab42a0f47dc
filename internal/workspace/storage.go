package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"shoulders/pkg/logging"
)

const (
	configFileName = "config.yaml"
	userConfigDir  = ".shoulders"
)

// Preferences is the content of the preference file.
type Preferences struct {
	CurrentWorkspace string `yaml:"current_workspace,omitempty"`

	// Extra keeps keys written by other tools.
	Extra map[string]interface{} `yaml:",inline"`
}

// Storage provides access to the preference file. Writes are read-modify-write
// under a process-local lock; concurrent writers in other processes race and
// the last one wins.
type Storage struct {
	mu         sync.RWMutex
	configPath string
}

// NewStorage uses ~/.shoulders as the configuration directory.
func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return &Storage{configPath: filepath.Join(homeDir, userConfigDir)}, nil
}

// NewStorageWithPath uses configPath as the configuration directory.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{configPath: configPath}
}

// FilePath returns the preference file location.
func (s *Storage) FilePath() string {
	return filepath.Join(s.configPath, configFileName)
}

// Load reads the preferences. A missing or unparsable file yields empty
// preferences.
func (s *Storage) Load() (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked()
}

func (s *Storage) loadLocked() (*Preferences, error) {
	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Preferences{}, nil
		}
		return nil, fmt.Errorf("failed to read preference file: %w", err)
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		logging.Warn("Workspace", "Ignoring unparsable preference file %s: %v", s.FilePath(), err)
		return &Preferences{}, nil
	}
	return &prefs, nil
}

func (s *Storage) saveLocked(prefs *Preferences) error {
	if err := os.MkdirAll(s.configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(s.FilePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write preference file: %w", err)
	}
	return nil
}

// Current returns the selected workspace, or "" when none is set.
func (s *Storage) Current() (string, error) {
	prefs, err := s.Load()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(prefs.CurrentWorkspace), nil
}

// SetCurrent records name as the selected workspace.
func (s *Storage) SetCurrent(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.loadLocked()
	if err != nil {
		return err
	}
	prefs.CurrentWorkspace = name
	return s.saveLocked(prefs)
}

// Resolve returns explicit when set, else the selected workspace.
// ok is false when neither is available.
func (s *Storage) Resolve(explicit string) (namespace string, ok bool, err error) {
	if ns := strings.TrimSpace(explicit); ns != "" {
		return ns, true, nil
	}
	current, err := s.Current()
	if err != nil {
		return "", false, err
	}
	return current, current != "", nil
}
