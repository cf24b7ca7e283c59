package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/use-agent/huntdex/models"
)

// Run modes. Debug widens the render settle wait and engages the raw
// HTML dump side channel; it never changes extraction logic.
const (
	ModeNormal = "normal"
	ModeDebug  = "debug"
)

// Config holds all application configuration.
type Config struct {
	Mode     string
	Site     SiteConfig
	Browser  BrowserConfig
	Render   RenderConfig
	Run      RunConfig
	Output   OutputConfig
	Log      LogConfig
	Sections []SectionConfig
}

// SectionConfig binds one section name to its page URL and entity type.
type SectionConfig struct {
	Name string
	URL  string
	Type models.EntityType
}

// SiteConfig identifies the target site.
type SiteConfig struct {
	// BaseURL is the site root; section paths are appended to it.
	BaseURL string // default: "https://mhn.quest"

	// SelectorsFile optionally points at a JSON file of selector chain
	// overrides, applied on top of the built-in defaults.
	SelectorsFile string
}

// BrowserConfig controls the rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth enables navigator.webdriver masking before navigation.
	Stealth bool // default: false
}

// RenderConfig controls per-section rendering.
type RenderConfig struct {
	// NavigationTimeout bounds one full render (navigate + wait).
	NavigationTimeout time.Duration // default: 30s

	// SettleNormal is the post-navigation settle wait in normal mode.
	SettleNormal time.Duration // default: 4s

	// SettleDebug is the settle wait in debug mode. Longer, because a
	// human is usually watching a dev instance of the site.
	SettleDebug time.Duration // default: 8s
}

// RunConfig controls the orchestrator.
type RunConfig struct {
	// Workers is the section worker pool size, clamped to [1, 4].
	// Each worker owns its own browser page while a section runs.
	Workers int // default: 1

	// RendersPerSecond rate-limits render starts against the single
	// target host.
	RendersPerSecond float64 // default: 1
}

// OutputConfig controls where artifacts land.
type OutputConfig struct {
	DataDir  string // default: "./output"
	DebugDir string // default: "./debug"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"; debug mode forces "debug"
	Format string // "json" or "text"; default: "text"
}

// SettleWait returns the mode-selected settle duration.
func (c *Config) SettleWait() time.Duration {
	if c.Mode == ModeDebug {
		return c.Render.SettleDebug
	}
	return c.Render.SettleNormal
}

// Load reads configuration from environment variables with sane
// defaults. The mode is passed in from the command line.
func Load(mode string) *Config {
	if mode != ModeDebug {
		mode = ModeNormal
	}

	baseURL := strings.TrimRight(envOr("HUNTDEX_BASE_URL", "https://mhn.quest"), "/")

	cfg := &Config{
		Mode: mode,
		Site: SiteConfig{
			BaseURL:       baseURL,
			SelectorsFile: os.Getenv("HUNTDEX_SELECTORS"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("HUNTDEX_HEADLESS", true),
			MaxPages:   envIntOr("HUNTDEX_MAX_PAGES", 4),
			NoSandbox:  envBoolOr("HUNTDEX_NO_SANDBOX", false),
			BrowserBin: os.Getenv("HUNTDEX_BROWSER_BIN"),
			Stealth:    envBoolOr("HUNTDEX_STEALTH", false),
		},
		Render: RenderConfig{
			NavigationTimeout: envDurationOr("HUNTDEX_NAV_TIMEOUT", 30*time.Second),
			SettleNormal:      envDurationOr("HUNTDEX_SETTLE_NORMAL", 4*time.Second),
			SettleDebug:       envDurationOr("HUNTDEX_SETTLE_DEBUG", 8*time.Second),
		},
		Run: RunConfig{
			Workers:          clampWorkers(envIntOr("HUNTDEX_WORKERS", 1)),
			RendersPerSecond: envFloatOr("HUNTDEX_RATE_RPS", 1.0),
		},
		Output: OutputConfig{
			DataDir:  envOr("HUNTDEX_OUTPUT_DIR", "./output"),
			DebugDir: envOr("HUNTDEX_DEBUG_DIR", "./debug"),
		},
		Log: LogConfig{
			Level:  envOr("HUNTDEX_LOG_LEVEL", "info"),
			Format: envOr("HUNTDEX_LOG_FORMAT", "text"),
		},
		Sections: defaultSections(baseURL),
	}

	if mode == ModeDebug {
		cfg.Log.Level = "debug"
	}
	return cfg
}

// defaultSections lists the five site sections in canonical order.
func defaultSections(baseURL string) []SectionConfig {
	return []SectionConfig{
		{Name: "monsters", URL: baseURL + "/monster", Type: models.TypeMonster},
		{Name: "weapons", URL: baseURL + "/weapon", Type: models.TypeWeapon},
		{Name: "armor", URL: baseURL + "/armor", Type: models.TypeArmor},
		{Name: "skills", URL: baseURL + "/skill", Type: models.TypeSkill},
		{Name: "items", URL: baseURL + "/material", Type: models.TypeItem},
	}
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
