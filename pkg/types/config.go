package types

import "time"

// Default endpoints of the IEEE Xplore API.
const (
	DefaultSearchEndpoint     = "http://ieeexploreapi.ieee.org/api/v1/search/articles"
	DefaultOpenAccessEndpoint = "http://ieeexploreapi.ieee.org/api/v1/search/document"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "xplore/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// XploreConfig holds settings for the IEEE Xplore client and paginator.
type XploreConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is the IEEE Xplore API key sent as the apikey parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// SearchEndpoint is the metadata search endpoint.
	SearchEndpoint string `json:"search_endpoint" yaml:"search_endpoint" mapstructure:"search_endpoint"`

	// OpenAccessEndpoint is the base of the full-text endpoint; the article
	// number and "/fulltext" are appended to it.
	OpenAccessEndpoint string `json:"open_access_endpoint" yaml:"open_access_endpoint" mapstructure:"open_access_endpoint"`

	// PageDelay is the pause between consecutive pagination requests (default 1s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay" mapstructure:"page_delay"`
}

// LibraryConfig holds settings for the local paper library.
type LibraryConfig struct {
	// Dir is the directory holding the library database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups every configuration section of the CLI.
type Config struct {
	Xplore   XploreConfig  `json:"xplore" yaml:"xplore" mapstructure:"xplore"`
	Library  LibraryConfig `json:"library" yaml:"library" mapstructure:"library"`
	LogLevel string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// ApplyDefaults fills zero-valued endpoint and HTTP settings.
func (c *XploreConfig) ApplyDefaults() {
	if c.SearchEndpoint == "" {
		c.SearchEndpoint = DefaultSearchEndpoint
	}
	if c.OpenAccessEndpoint == "" {
		c.OpenAccessEndpoint = DefaultOpenAccessEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "xplore/0.1"
	}
}
