package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ActionsEnv carries the GitHub Actions runtime variables a run needs.
type ActionsEnv struct {
	EventName   string
	EventPath   string
	Repository  string
	StepSummary string
	Output      string
	RunID       string
}

// envBindings maps config keys to the environment variables that may set
// them, in priority order. Actions inputs arrive as INPUT_<NAME>.
var envBindings = map[string][]string{
	"provider.default":             {"DOXAI_PROVIDER_DEFAULT", "INPUT_PROVIDER"},
	"provider.model":               {"DOXAI_PROVIDER_MODEL", "INPUT_MODEL"},
	"provider.max_tokens":          {"DOXAI_PROVIDER_MAX_TOKENS", "INPUT_MAX_TOKENS"},
	"provider.requests_per_minute": {"DOXAI_PROVIDER_REQUESTS_PER_MINUTE"},
	"github.api_url":               {"DOXAI_GITHUB_API_URL", "GITHUB_API_URL"},
	"github.repository":            {"DOXAI_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"},
	"docs.command":                 {"DOXAI_DOCS_COMMAND", "INPUT_COMMAND"},
	"docs.language":                {"DOXAI_DOCS_LANGUAGE", "INPUT_LANGUAGE"},
	"log.json":                     {"DOXAI_LOG_JSON"},
	"log.level":                    {"DOXAI_LOG_LEVEL", "INPUT_LOG_LEVEL"},
	"ledger.path":                  {"DOXAI_LEDGER_PATH"},
}

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the file or default value in place.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, newEnvViper())
}

// LoadActionsEnv reads the Actions runtime variables.
func LoadActionsEnv() ActionsEnv {
	v := viper.New()
	v.SetEnvPrefix("GITHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return ActionsEnv{
		EventName:   v.GetString("event_name"),
		EventPath:   v.GetString("event_path"),
		Repository:  v.GetString("repository"),
		StepSummary: v.GetString("step_summary"),
		Output:      v.GetString("output"),
		RunID:       v.GetString("run_id"),
	}
}

func newEnvViper() *viper.Viper {
	v := viper.New()
	for key, names := range envBindings {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
	return v
}

func applyEnv(cfg *Config, v *viper.Viper) error {
	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	setString("provider.default", &cfg.Provider.Default)
	setString("provider.model", &cfg.Provider.Model)
	if v.IsSet("provider.max_tokens") {
		cfg.Provider.MaxTokens = v.GetInt("provider.max_tokens")
	}
	if v.IsSet("provider.requests_per_minute") {
		cfg.Provider.RequestsPerMinute = v.GetInt("provider.requests_per_minute")
	}
	setString("github.api_url", &cfg.GitHub.APIURL)
	setString("github.repository", &cfg.GitHub.Repository)
	setString("docs.command", &cfg.Docs.Command)
	setString("docs.language", &cfg.Docs.Language)
	setString("log.level", &cfg.Log.Level)
	if v.IsSet("log.json") {
		cfg.Log.JSON = v.GetBool("log.json")
	}
	setString("ledger.path", &cfg.Ledger.Path)

	if cfg.GitHub.APIURL != "" && !strings.HasSuffix(cfg.GitHub.APIURL, "/") {
		cfg.GitHub.APIURL += "/"
	}
	return cfg.Validate()
}

// GitHubToken resolves the repository credential. In Actions the token is
// usually GITHUB_TOKEN or an explicit INPUT_GITHUB_TOKEN.
func (c *Config) GitHubToken() (string, error) {
	return ResolveAPIKey(c.GitHub.TokenSource, c.GitHub.Token, "INPUT_GITHUB_TOKEN", "GITHUB_TOKEN")
}
