package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Theme              string `json:"theme"`
	WordWrap           bool   `json:"word_wrap"`
	ShowPreview        bool   `json:"show_preview"`
	SyncScroll         bool   `json:"sync_scroll"`
	TrimTrailingSpace  bool   `json:"trim_trailing_whitespace"`
	InsertFinalNewline bool   `json:"insert_final_newline"`
}

type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	StatusBarModeBg  tcell.Color
	PreviewFg        tcell.Color
	PreviewHeading   tcell.Color
	PaneBorder       tcell.Color
	MatchBg          tcell.Color
	MatchActiveBg    tcell.Color
	FindBarBg        tcell.Color
	FindBarFg        tcell.Color
	FindBarInputBg   tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:             "Dark",
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		Selection:        tcell.ColorDarkBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorWhite,
		StatusBarBg:      tcell.ColorDarkBlue,
		StatusBarFg:      tcell.ColorWhite,
		StatusBarModeBg:  tcell.ColorBlue,
		PreviewFg:        tcell.ColorWhite,
		PreviewHeading:   tcell.ColorYellow,
		PaneBorder:       tcell.ColorGray,
		MatchBg:          tcell.ColorDarkGreen,
		MatchActiveBg:    tcell.ColorGreen,
		FindBarBg:        tcell.ColorBlack,
		FindBarFg:        tcell.ColorWhite,
		FindBarInputBg:   tcell.ColorDarkBlue,
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.ColorLightBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorBlack,
		StatusBarBg:      tcell.ColorLightBlue,
		StatusBarFg:      tcell.ColorBlack,
		StatusBarModeBg:  tcell.ColorBlue,
		PreviewFg:        tcell.ColorBlack,
		PreviewHeading:   tcell.ColorBlue,
		PaneBorder:       tcell.ColorGray,
		MatchBg:          tcell.ColorLightGreen,
		MatchActiveBg:    tcell.ColorGreen,
		FindBarBg:        tcell.ColorWhite,
		FindBarFg:        tcell.ColorBlack,
		FindBarInputBg:   tcell.ColorLightGray,
	},
	"monokai": {
		Name:             "Monokai",
		Background:       tcell.NewRGBColor(39, 40, 34),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(73, 72, 62),
		LineNumber:       tcell.NewRGBColor(144, 144, 128),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(102, 217, 239),
		PreviewFg:        tcell.NewRGBColor(248, 248, 242),
		PreviewHeading:   tcell.NewRGBColor(249, 38, 114),
		PaneBorder:       tcell.NewRGBColor(144, 144, 128),
		MatchBg:          tcell.NewRGBColor(73, 72, 62),
		MatchActiveBg:    tcell.NewRGBColor(166, 226, 46),
		FindBarBg:        tcell.NewRGBColor(39, 40, 34),
		FindBarFg:        tcell.NewRGBColor(248, 248, 242),
		FindBarInputBg:   tcell.NewRGBColor(73, 72, 62),
	},
	"nord": {
		Name:             "Nord",
		Background:       tcell.NewRGBColor(46, 52, 64),
		Foreground:       tcell.NewRGBColor(236, 239, 244),
		Selection:        tcell.NewRGBColor(67, 76, 94),
		LineNumber:       tcell.NewRGBColor(76, 86, 106),
		LineNumberActive: tcell.NewRGBColor(236, 239, 244),
		StatusBarBg:      tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:      tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg:  tcell.NewRGBColor(136, 192, 208),
		PreviewFg:        tcell.NewRGBColor(236, 239, 244),
		PreviewHeading:   tcell.NewRGBColor(136, 192, 208),
		PaneBorder:       tcell.NewRGBColor(76, 86, 106),
		MatchBg:          tcell.NewRGBColor(67, 76, 94),
		MatchActiveBg:    tcell.NewRGBColor(163, 190, 140),
		FindBarBg:        tcell.NewRGBColor(46, 52, 64),
		FindBarFg:        tcell.NewRGBColor(236, 239, 244),
		FindBarInputBg:   tcell.NewRGBColor(67, 76, 94),
	},
	"gruvbox": {
		Name:             "Gruvbox Dark",
		Background:       tcell.NewRGBColor(40, 40, 40),
		Foreground:       tcell.NewRGBColor(235, 219, 178),
		Selection:        tcell.NewRGBColor(60, 56, 54),
		LineNumber:       tcell.NewRGBColor(146, 131, 116),
		LineNumberActive: tcell.NewRGBColor(251, 241, 199),
		StatusBarBg:      tcell.NewRGBColor(60, 56, 54),
		StatusBarFg:      tcell.NewRGBColor(235, 219, 178),
		StatusBarModeBg:  tcell.NewRGBColor(184, 187, 38),
		PreviewFg:        tcell.NewRGBColor(235, 219, 178),
		PreviewHeading:   tcell.NewRGBColor(254, 128, 25),
		PaneBorder:       tcell.NewRGBColor(102, 92, 84),
		MatchBg:          tcell.NewRGBColor(60, 56, 54),
		MatchActiveBg:    tcell.NewRGBColor(184, 187, 38),
		FindBarBg:        tcell.NewRGBColor(40, 40, 40),
		FindBarFg:        tcell.NewRGBColor(235, 219, 178),
		FindBarInputBg:   tcell.NewRGBColor(60, 56, 54),
	},
	"dracula": {
		Name:             "Dracula",
		Background:       tcell.NewRGBColor(40, 42, 54),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(68, 71, 90),
		LineNumber:       tcell.NewRGBColor(98, 114, 164),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(68, 71, 90),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(189, 147, 249),
		PreviewFg:        tcell.NewRGBColor(248, 248, 242),
		PreviewHeading:   tcell.NewRGBColor(255, 121, 198),
		PaneBorder:       tcell.NewRGBColor(98, 114, 164),
		MatchBg:          tcell.NewRGBColor(68, 71, 90),
		MatchActiveBg:    tcell.NewRGBColor(80, 250, 123),
		FindBarBg:        tcell.NewRGBColor(40, 42, 54),
		FindBarFg:        tcell.NewRGBColor(248, 248, 242),
		FindBarInputBg:   tcell.NewRGBColor(68, 71, 90),
	},
}

func Default() *Config {
	return &Config{
		Theme:              "monokai",
		WordWrap:           true,
		ShowPreview:        true,
		SyncScroll:         true,
		TrimTrailingSpace:  false,
		InsertFinalNewline: true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "markedit", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
