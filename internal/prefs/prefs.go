// Package prefs persists the reader preferences between runs.
// Preferences are stored in ~/.config/novel-t/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/justyntemme/novel-t/internal/store"
)

// Prefs holds the persisted part of the preferences slice. Zero values
// mean "not set" and leave the in-memory default alone.
type Prefs struct {
	FontSize        int    `toml:"font_size,omitempty"`
	FontFamily      string `toml:"font_family,omitempty"`
	BackgroundColor string `toml:"background_color,omitempty"`
	TextColor       string `toml:"text_color,omitempty"`
}

const defaultPrefsPath = "~/.config/novel-t/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// FromState captures the persistable fields of s.
func FromState(s store.PreferencesState) Prefs {
	return Prefs{
		FontSize:        s.FontSize,
		FontFamily:      s.FontFamily,
		BackgroundColor: string(s.BackgroundColor),
		TextColor:       string(s.TextColor),
	}
}

// Event returns the transition that restores p into the store.
func (p Prefs) Event() store.PreferencesRestored {
	return store.PreferencesRestored{
		FontSize:        p.FontSize,
		FontFamily:      p.FontFamily,
		BackgroundColor: store.Color(p.BackgroundColor),
		TextColor:       store.Color(p.TextColor),
	}
}

// IsZero reports whether nothing was restored.
func (p Prefs) IsZero() bool {
	return p == Prefs{}
}

// Load reads preferences from the given path. A missing or unreadable file
// yields empty preferences.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}, nil // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, nil // Graceful degradation
	}

	p.FontFamily = strings.TrimSpace(p.FontFamily)
	p.BackgroundColor = strings.TrimSpace(p.BackgroundColor)
	p.TextColor = strings.TrimSpace(p.TextColor)
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
