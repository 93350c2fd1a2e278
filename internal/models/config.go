package models

// Config represents the application configuration
type Config struct {
	Templates TemplateConfig `yaml:"templates"`
	Auth      AuthConfig     `yaml:"auth"`
	Graph     GraphConfig    `yaml:"graph"`
	OpenAI    OpenAIConfig   `yaml:"openai"`
}

// TemplateConfig holds the subject and body template texts rendered for every contact
type TemplateConfig struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// AuthConfig represents the identity provider configuration for the device-code flow
type AuthConfig struct {
	Authority string   `yaml:"authority"`
	Scopes    []string `yaml:"scopes"`
	CacheFile string   `yaml:"cacheFile"`
}

// GraphConfig represents the Microsoft Graph API configuration
type GraphConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// OpenAIConfig represents the optional personalization service configuration
type OpenAIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"maxTokens"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}
