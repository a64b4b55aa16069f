package wakey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings mirrors settings.yaml.
type Settings struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`
	Window struct {
		Width       int `yaml:"width"`
		Height      int `yaml:"height"`
		TitleMargin int `yaml:"title_margin"`
	} `yaml:"window"`
	Mouse struct {
		XOffset int `yaml:"x_offset"`
		YOffset int `yaml:"y_offset"`
	} `yaml:"mouse"`
	// MockTest forces the awake test to run regardless of the alarm
	// state on the server.
	MockTest bool `yaml:"mock_test"`
	// Seed fixes the corridor layout; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

func DefaultSettings() Settings {
	var s Settings
	s.Server.Address = "127.0.0.1"
	s.Server.Port = 6543
	s.Window.Width = 400
	s.Window.Height = 300
	s.Window.TitleMargin = 0
	return s
}

// LoadSettings reads and validates the settings file. Missing keys
// fall back to defaults; a malformed file or degenerate values fail
// fast here, before anything touches the server or the screen.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings: %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects values the rest of the program cannot work with and
// coerces the canvas dimensions up to the supported minimum.
func (s *Settings) Validate() error {
	if s.Server.Address == "" {
		return fmt.Errorf("server address is empty")
	}
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", s.Server.Port)
	}
	if s.Window.Width < MinCanvasSize {
		s.Window.Width = MinCanvasSize
	}
	if s.Window.Height < MinCanvasSize {
		s.Window.Height = MinCanvasSize
	}
	if s.Window.TitleMargin < 0 {
		return fmt.Errorf("window title margin %d is negative", s.Window.TitleMargin)
	}
	return nil
}
