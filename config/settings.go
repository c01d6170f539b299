// Package config provides configuration structures for the filtering engine.
// Settings are passed explicitly into the components that need them; nothing
// in the engine reads ambient global state.
package config

import (
	"fmt"
	"time"
)

// Weights holds the scoring rubric weights. With every dimension requested
// and perfectly matched the weights sum to 100.
type Weights struct {
	Tier       float64 `json:"tier" mapstructure:"tier"`
	Geography  float64 `json:"geography" mapstructure:"geography"`
	Department float64 `json:"department" mapstructure:"department"`
	Insurance  float64 `json:"insurance" mapstructure:"insurance"`
	Rating     float64 `json:"rating" mapstructure:"rating"`
}

// Translator configures the intent translator client. An empty APIKey
// disables translation entirely: free-text queries then degrade to the empty
// criteria instead of calling out.
type Translator struct {
	BaseURL string        `json:"base_url" mapstructure:"base_url"`
	APIKey  string        `json:"api_key" mapstructure:"api_key"`
	Model   string        `json:"model" mapstructure:"model"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// Settings contains all configuration options for the filtering engine.
type Settings struct {
	Port     string `json:"port" mapstructure:"port"`
	DBPath   string `json:"db_path" mapstructure:"db_path"`
	MaxBody  int64  `json:"max_body_bytes" mapstructure:"max_body_bytes"`
	PoolSize int    `json:"pool_size" mapstructure:"pool_size"` // scoring worker pool size

	DefaultPageSize int `json:"default_page_size" mapstructure:"default_page_size"`
	MaxPageSize     int `json:"max_page_size" mapstructure:"max_page_size"`

	// CandidateCap bounds how many candidates one request may pull out of the
	// catalog store before scoring. Hitting the cap is a caller-visible error,
	// not a silent truncation.
	CandidateCap int `json:"candidate_cap" mapstructure:"candidate_cap"`

	Weights    Weights    `json:"weights" mapstructure:"weights"`
	Translator Translator `json:"translator" mapstructure:"translator"`
}

// ApplyDefaults applies default values to the settings
func (s *Settings) ApplyDefaults() {
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.DBPath == "" {
		s.DBPath = "./catalog.db"
	}
	if s.MaxBody <= 0 {
		s.MaxBody = 1 << 20 // 1 MiB
	}
	if s.PoolSize <= 0 {
		s.PoolSize = 8
	}
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = 10
	}
	if s.MaxPageSize <= 0 {
		s.MaxPageSize = 100
	}
	if s.CandidateCap <= 0 {
		s.CandidateCap = 5000
	}

	zero := Weights{}
	if s.Weights == zero {
		s.Weights = Weights{
			Tier:       30,
			Geography:  20,
			Department: 30,
			Insurance:  10,
			Rating:     10,
		}
	}

	if s.Translator.BaseURL == "" {
		s.Translator.BaseURL = "https://open.bigmodel.cn/api/paas/v4"
	}
	if s.Translator.Model == "" {
		s.Translator.Model = "glm-4-flash"
	}
	if s.Translator.Timeout <= 0 {
		s.Translator.Timeout = 3 * time.Second
	}
}

// Validate checks the settings for values the engine cannot run with.
func (s *Settings) Validate() error {
	if s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf("default_page_size %d exceeds max_page_size %d", s.DefaultPageSize, s.MaxPageSize)
	}
	if s.CandidateCap < s.MaxPageSize {
		return fmt.Errorf("candidate_cap %d is smaller than max_page_size %d", s.CandidateCap, s.MaxPageSize)
	}
	for name, w := range map[string]float64{
		"tier":       s.Weights.Tier,
		"geography":  s.Weights.Geography,
		"department": s.Weights.Department,
		"insurance":  s.Weights.Insurance,
		"rating":     s.Weights.Rating,
	} {
		if w < 0 {
			return fmt.Errorf("scoring weight '%s' cannot be negative", name)
		}
	}
	if s.Weights.Geography+s.Weights.Rating <= 0 {
		return fmt.Errorf("always-applicable scoring weights (geography, rating) must sum above zero")
	}
	return nil
}
