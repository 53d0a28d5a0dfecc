package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/justyntemme/novel-t/internal/api"
	"github.com/justyntemme/novel-t/internal/store"
)

const (
	configFileName  = "config.json"
	configDirName   = "novel-t"
	logFileName     = "novel-t.log"
	MaxRecentlyRead = 10 // Maximum number of recently read books to track
)

// Log levels understood by the logger package
const (
	LogNone   = "none"
	LogDebug  = "debug"
	LogNormal = "normal"
)

// RecentlyReadEntry represents a recently read book
type RecentlyReadEntry struct {
	BookID   string    `json:"book_id"`
	Title    string    `json:"title"`
	OpenedAt time.Time `json:"opened_at"`
}

// RoutesConfig holds the REST path templates
type RoutesConfig struct {
	Books   string `json:"books" validate:"omitempty,startswith=/"`
	TOC     string `json:"toc" validate:"omitempty,startswith=/,contains={book}"`
	Chapter string `json:"chapter" validate:"omitempty,startswith=/,contains={book},contains={chapter}"`
}

// LogConfig selects the file log level and destination
type LogConfig struct {
	Level string `json:"level" validate:"omitempty,oneof=none debug normal"`
	Path  string `json:"path,omitempty" validate:"omitempty,filepath"`
}

// Config holds the application configuration
type Config struct {
	ServerURL         string              `json:"server_url" validate:"required,url"`
	Routes            RoutesConfig        `json:"routes"`
	DarkThemes        []string            `json:"dark_themes,omitempty" validate:"omitempty,dive,hexcolor"`
	BackgroundPalette []string            `json:"background_palette,omitempty" validate:"omitempty,dive,hexcolor"`
	TextPalette       []string            `json:"text_palette,omitempty" validate:"omitempty,dive,hexcolor"`
	FontFamilies      []string            `json:"font_families,omitempty" validate:"omitempty,dive,required"`
	Log               LogConfig           `json:"log"`
	RecentlyRead      []RecentlyReadEntry `json:"recently_read,omitempty"`

	// Fields reset to defaults because they failed validation (not persisted)
	Fallbacks []string `json:"-"`

	// Path to config file (not persisted)
	path string
}

// Default returns the built-in configuration
func Default() *Config {
	routes := api.DefaultRoutes()
	return &Config{
		ServerURL: api.DefaultBaseURL,
		Routes: RoutesConfig{
			Books:   routes.Books,
			TOC:     routes.TOC,
			Chapter: routes.Chapter,
		},
		DarkThemes: colorStrings(store.DefaultDarkThemes),
		BackgroundPalette: []string{
			"#ffffff", "#f5f5f5", "#f0f9eb", "#f4ecd8",
			"#332d20", "#1e1e1e", "#1a1a1a", "#000000",
		},
		TextPalette: []string{
			"#000000", "#ffffff", "#666666", "#8b4513", "#0000ff", "#ff0000", "#008000",
		},
		FontFamilies: []string{
			"Arial, sans-serif", "Georgia, serif", "Courier New, monospace", "Times New Roman, serif",
		},
		Log: LogConfig{Level: LogNone},
	}
}

// Load loads configuration from path, or from the default location when
// path is empty. A missing file yields the defaults. Values that fail
// validation are replaced by their defaults and listed in Fallbacks.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.path = path
	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills empty sections and resets invalid ones
func (c *Config) applyDefaults() {
	def := Default()
	if c.ServerURL == "" {
		c.ServerURL = def.ServerURL
	}
	if c.Routes.Books == "" {
		c.Routes.Books = def.Routes.Books
	}
	if c.Routes.TOC == "" {
		c.Routes.TOC = def.Routes.TOC
	}
	if c.Routes.Chapter == "" {
		c.Routes.Chapter = def.Routes.Chapter
	}
	if len(c.DarkThemes) == 0 {
		c.DarkThemes = def.DarkThemes
	}
	if len(c.BackgroundPalette) == 0 {
		c.BackgroundPalette = def.BackgroundPalette
	}
	if len(c.TextPalette) == 0 {
		c.TextPalette = def.TextPalette
	}
	if len(c.FontFamilies) == 0 {
		c.FontFamilies = def.FontFamilies
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	var verrs validator.ValidationErrors
	if err := newValidator().Struct(c); !errors.As(err, &verrs) {
		return
	}
	reset := make(map[string]bool)
	for _, fe := range verrs {
		field := topLevelField(fe.Namespace())
		if reset[field] {
			continue
		}
		reset[field] = true
		c.Fallbacks = append(c.Fallbacks, field)

		switch field {
		case "server_url":
			c.ServerURL = def.ServerURL
		case "routes":
			c.Routes = def.Routes
		case "dark_themes":
			c.DarkThemes = def.DarkThemes
		case "background_palette":
			c.BackgroundPalette = def.BackgroundPalette
		case "text_palette":
			c.TextPalette = def.TextPalette
		case "font_families":
			c.FontFamilies = def.FontFamilies
		case "log":
			c.Log = def.Log
		}
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// topLevelField turns "Config.dark_themes[2]" into "dark_themes"
func topLevelField(namespace string) string {
	_, rest, _ := strings.Cut(namespace, ".")
	name, _, _ := strings.Cut(rest, ".")
	name, _, _ = strings.Cut(name, "[")
	return name
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o600)
}

// Path returns the file the configuration is read from and saved to
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the config file
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// LogPath returns the log file destination
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(c.Dir(), logFileName)
}

// APIRoutes converts the route templates for the client
func (c *Config) APIRoutes() api.Routes {
	return api.Routes{
		Books:   c.Routes.Books,
		TOC:     c.Routes.TOC,
		Chapter: c.Routes.Chapter,
	}
}

// DarkThemeColors returns the configured dark themes plus every dark
// entry of the background palette, so any background the settings panel
// offers gets a readable automatic text color.
func (c *Config) DarkThemeColors() []store.Color {
	set := store.NewThemeSet(toColors(c.DarkThemes)...)
	out := toColors(c.DarkThemes)
	for _, bg := range toColors(c.BackgroundPalette) {
		if bg.IsDark() && !set.Contains(bg) {
			out = append(out, bg)
		}
	}
	return out
}

// BackgroundColors returns the background palette
func (c *Config) BackgroundColors() []store.Color {
	return toColors(c.BackgroundPalette)
}

// TextColors returns the text palette
func (c *Config) TextColors() []store.Color {
	return toColors(c.TextPalette)
}

// AddRecentlyRead adds a book to the recently read list
func (c *Config) AddRecentlyRead(bookID, title string) error {
	// Remove existing entry for this book if present
	list := make([]RecentlyReadEntry, 0, MaxRecentlyRead)
	for _, entry := range c.RecentlyRead {
		if entry.BookID != bookID {
			list = append(list, entry)
		}
	}

	entry := RecentlyReadEntry{
		BookID:   bookID,
		Title:    title,
		OpenedAt: time.Now(),
	}
	c.RecentlyRead = append([]RecentlyReadEntry{entry}, list...)

	if len(c.RecentlyRead) > MaxRecentlyRead {
		c.RecentlyRead = c.RecentlyRead[:MaxRecentlyRead]
	}

	return c.Save()
}

// RecentlyReadIDs returns the list of recently read book IDs
func (c *Config) RecentlyReadIDs() []string {
	ids := make([]string, len(c.RecentlyRead))
	for i, entry := range c.RecentlyRead {
		ids[i] = entry.BookID
	}
	return ids
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate config dir: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, configDirName, configFileName), nil
}

func toColors(in []string) []store.Color {
	out := make([]store.Color, len(in))
	for i, s := range in {
		out[i] = store.Color(s)
	}
	return out
}

func colorStrings(in []store.Color) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = string(c)
	}
	return out
}
