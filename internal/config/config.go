package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWSCLIPPER_CONFIG"
	naverClientIDEnv  = "NAVER_CLIENT_ID"
	naverSecretEnv    = "NAVER_CLIENT_SECRET"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiProjectEnv  = "GEMINI_PROJECT"
	geminiLocationEnv = "GEMINI_LOCATION"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Naver      NaverConfig      `yaml:"naver"`
	RSS        RSSConfig        `yaml:"rss"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Curator    string           `yaml:"curator"`
	Enrich     EnrichConfig     `yaml:"enrich"`
	Store      StoreConfig      `yaml:"store"`
	Report     ReportConfig     `yaml:"report"`
	Days       int              `yaml:"days"`
	Categories []CategoryConfig `yaml:"categories"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NaverConfig wires the Naver open-API search credentials.
type NaverConfig struct {
	Endpoint     string `yaml:"endpoint"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	Display      int    `yaml:"display"`
}

// RSSConfig toggles the Google News feed source.
type RSSConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible chat API.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// GeminiConfig defines the Gemini/Vertex backend. APIKey selects the
// Gemini API; Project+Location select Vertex with ambient credentials.
type GeminiConfig struct {
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// EnrichConfig bounds the content-extraction worker pool.
type EnrichConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
}

// StoreConfig locates the local article database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
	FontPath  string `yaml:"fontPath"`
}

// CategoryConfig is one labelled keyword group to scrape.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Sort     string   `yaml:"sort"`
	Keywords []string `yaml:"keywords"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultConfig().Categories
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(naverClientIDEnv); v != "" {
		c.Naver.ClientID = v
	}
	if v := os.Getenv(naverSecretEnv); v != "" {
		c.Naver.ClientSecret = v
	}
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(geminiProjectEnv); v != "" {
		c.Gemini.Project = v
	}
	if v := os.Getenv(geminiLocationEnv); v != "" {
		c.Gemini.Location = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Naver.Endpoint != "" {
		base.Naver.Endpoint = override.Naver.Endpoint
	}
	if override.Naver.ClientID != "" {
		base.Naver.ClientID = override.Naver.ClientID
	}
	if override.Naver.ClientSecret != "" {
		base.Naver.ClientSecret = override.Naver.ClientSecret
	}
	if override.Naver.Display > 0 {
		base.Naver.Display = override.Naver.Display
	}

	base.RSS.Enabled = base.RSS.Enabled || override.RSS.Enabled

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.Project != "" {
		base.Gemini.Project = override.Gemini.Project
	}
	if override.Gemini.Location != "" {
		base.Gemini.Location = override.Gemini.Location
	}

	if override.Curator != "" {
		base.Curator = override.Curator
	}

	if override.Enrich.Workers > 0 {
		base.Enrich.Workers = override.Enrich.Workers
	}
	if override.Enrich.RequestsPerSecond > 0 {
		base.Enrich.RequestsPerSecond = override.Enrich.RequestsPerSecond
	}

	if override.Store.Path != "" {
		base.Store = override.Store
	}

	if override.Report.OutputDir != "" {
		base.Report.OutputDir = override.Report.OutputDir
	}
	if override.Report.FontPath != "" {
		base.Report.FontPath = override.Report.FontPath
	}

	if override.Days > 0 {
		base.Days = override.Days
	}

	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Naver: NaverConfig{
			Endpoint: "https://openapi.naver.com/v1/search/news",
			Display:  60,
		},
		OpenAI: OpenAIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model:    "gemini-2.0-flash",
			Location: "us-central1",
		},
		Enrich: EnrichConfig{Workers: 5},
		Store:  StoreConfig{Path: "news_data/articles.db"},
		Report: ReportConfig{OutputDir: "output"},
		Days:   1,
		Categories: []CategoryConfig{
			{
				Name:     "본원",
				Sort:     "date",
				Keywords: []string{"강북삼성병원"},
			},
			{
				Name:     "의료",
				Sort:     "sim",
				Keywords: []string{"병원", "의료", "전공의", "PA간호사"},
			},
			{
				Name:     "관계사",
				Sort:     "sim",
				Keywords: []string{"삼성전자", "삼성바이오"},
			},
		},
	}
}
