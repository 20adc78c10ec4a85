// Package theme maps style ids to colors and fonts.
//
// A Registry holds the active appearance of every style id. Switching themes
// only touches the registry; the styler's tables and tokenizer never change.
package theme

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/pubsub"
	"github.com/zjrosen/lexstyle/internal/styler"
)

// ThemeConfig mirrors config.ThemeConfig to avoid an import cycle.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// Appearance is what a host needs to paint one style id.
type Appearance struct {
	Foreground string
	Background string
	Font       Font
}

// Registry is safe for concurrent use. A host may toggle themes while
// another goroutine renders.
type Registry struct {
	mu          sync.RWMutex
	cfg         ThemeConfig
	preset      Preset
	colors      map[ColorToken]string
	appearances [styler.NumStyles]Appearance
	styles      [styler.NumStyles]lipgloss.Style
	publisher   pubsub.Publisher[string]
}

// Option configures a Registry.
type Option func(*Registry)

// WithPublisher publishes a ThemeChangedEvent carrying the preset name after
// every successful Apply.
func WithPublisher(p pubsub.Publisher[string]) Option {
	return func(r *Registry) {
		r.publisher = p
	}
}

// NewRegistry returns a registry with the default preset applied.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	colors, preset, _ := resolve(ThemeConfig{})
	r.install(ThemeConfig{}, preset, colors)
	return r
}

// Apply replaces the active theme. Order of application:
//  1. start from the default colors
//  2. overlay the preset, switching to its partner if Mode asks for the other family
//  3. overlay individual color overrides
//  4. rebuild every style
//
// On error the registry is left unchanged.
func (r *Registry) Apply(cfg ThemeConfig) error {
	colors, preset, err := resolve(cfg)
	if err != nil {
		log.ErrorErr(log.CatTheme, "Theme rejected", err, "preset", cfg.Preset)
		return err
	}

	r.mu.Lock()
	r.install(cfg, preset, colors)
	r.mu.Unlock()

	log.Info(log.CatTheme, "Theme applied", "preset", preset.Name, "mode", preset.Mode, "overrides", len(cfg.Colors))
	if r.publisher != nil {
		r.publisher.Publish(pubsub.ThemeChangedEvent, preset.Name)
	}
	return nil
}

func resolve(cfg ThemeConfig) (map[ColorToken]string, Preset, error) {
	colors := maps.Clone(DefaultPreset.Colors)
	preset := DefaultPreset

	if cfg.Preset != "" && cfg.Preset != DefaultPreset.Name {
		p, ok := Presets[cfg.Preset]
		if !ok {
			return nil, Preset{}, fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		preset = p
	}

	switch Mode(cfg.Mode) {
	case "":
	case ModeDark, ModeLight:
		if preset.Mode != Mode(cfg.Mode) {
			partner, ok := Presets[preset.Partner]
			if !ok || partner.Mode != Mode(cfg.Mode) {
				return nil, Preset{}, fmt.Errorf("theme preset %s has no %s variant", preset.Name, cfg.Mode)
			}
			preset = partner
		}
	default:
		return nil, Preset{}, fmt.Errorf("invalid theme mode: %s (want dark or light)", cfg.Mode)
	}
	maps.Copy(colors, preset.Colors)

	// Sorted so the first reported error is stable.
	for _, key := range slices.Sorted(maps.Keys(cfg.Colors)) {
		value := cfg.Colors[key]
		token := ColorToken(key)
		if !isValidToken(token) {
			return nil, Preset{}, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return nil, Preset{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = strings.ToUpper(value)
	}

	if preset.Font == (Font{}) {
		preset.Font = DefaultFont
	}
	return colors, preset, nil
}

// install must be called with r.mu held (or before r is shared).
func (r *Registry) install(cfg ThemeConfig, preset Preset, colors map[ColorToken]string) {
	r.cfg = ThemeConfig{Preset: cfg.Preset, Mode: cfg.Mode, Colors: maps.Clone(cfg.Colors)}
	r.preset = preset
	r.colors = colors

	paper := colors[TokenPaper]
	for _, id := range styler.AllStyles() {
		fg := colors[TokenFor(id)]
		r.appearances[id] = Appearance{Foreground: fg, Background: paper, Font: preset.Font}
		r.styles[id] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(paper)).
			Bold(preset.Font.Bold).
			TabWidth(lipgloss.NoTabConversion)
	}
}

// Toggle switches to the active preset's partner in the other mode,
// keeping any color overrides.
func (r *Registry) Toggle() error {
	r.mu.RLock()
	cfg := r.cfg
	partner := r.preset.Partner
	r.mu.RUnlock()

	if partner == "" {
		return fmt.Errorf("theme preset %s has no partner", r.PresetName())
	}
	return r.Apply(ThemeConfig{Preset: partner, Colors: cfg.Colors})
}

// Next switches to the preset after the active one in PresetNames order.
func (r *Registry) Next() error {
	names := PresetNames()
	current := r.PresetName()
	i := slices.Index(names, current)

	r.mu.RLock()
	overrides := r.cfg.Colors
	r.mu.RUnlock()

	return r.Apply(ThemeConfig{Preset: names[(i+1)%len(names)], Colors: overrides})
}

// PresetName returns the name of the active preset.
func (r *Registry) PresetName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preset.Name
}

// Mode returns the brightness family of the active preset.
func (r *Registry) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preset.Mode
}

// Config returns the configuration that produced the active theme.
func (r *Registry) Config() ThemeConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg := r.cfg
	cfg.Colors = maps.Clone(cfg.Colors)
	return cfg
}

// Color returns the active value of a token.
func (r *Registry) Color(token ColorToken) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.colors[token]
}

// Appearance returns the colors and font for a style id. Unknown ids get the
// regular appearance.
func (r *Registry) Appearance(id styler.StyleID) Appearance {
	if !id.Valid() {
		id = styler.Regular
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.appearances[id]
}

// Style returns the lipgloss style for a style id.
func (r *Registry) Style(id styler.StyleID) lipgloss.Style {
	if !id.Valid() {
		id = styler.Regular
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styles[id]
}
