package config

import (
	"os"

	"outlook-draft-mailer/internal/models"

	"gopkg.in/yaml.v2"
)

// Defaults mirror the fixed endpoints of the Microsoft identity platform and
// Graph API; a config file only needs to override what differs.
func defaults() *models.Config {
	return &models.Config{
		Templates: models.TemplateConfig{
			Subject: defaultSubject,
			Body:    defaultBody,
		},
		Auth: models.AuthConfig{
			Authority: "https://login.microsoftonline.com/common",
			Scopes:    []string{"Mail.ReadWrite", "offline_access"},
			CacheFile: "token_cache.bin",
		},
		Graph: models.GraphConfig{
			Endpoint: "https://graph.microsoft.com/v1.0",
		},
		OpenAI: models.OpenAIConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-3.5-turbo",
			MaxTokens:      50,
			TimeoutSeconds: 10,
		},
	}
}

const defaultSubject = `PASTE YOUR SUBJECT HERE (you may include {{.placeholders}})`

const defaultBody = `PASTE YOUR BODY HERE EXACTLY.
You may reference spreadsheet fields like {{.first_name}}, {{.company}}, {{.role}}, {{.observation}}.
If you don't want placeholders, leave plain text.
`

// Load reads the configuration from the specified YAML file layered over the
// built-in defaults. An empty path returns the defaults unchanged.
func Load(filepath string) (*models.Config, error) {
	config := defaults()
	if filepath == "" {
		return config, nil
	}

	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
