package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voice-to-docs/internal/domain"
)

type Config struct {
	Mode          string              `yaml:"mode"`
	Audio         AudioConfig         `yaml:"audio"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	LLM           LLMConfig           `yaml:"llm"`
	Prompts       PromptsConfig       `yaml:"prompts"`
	GitHub        GitHubConfig        `yaml:"github"`
	Issues        IssuesConfig        `yaml:"issues"`
	Output        OutputConfig        `yaml:"output"`
	History       HistoryConfig       `yaml:"history"`
	Notify        NotifyConfig        `yaml:"notify"`
	Log           LogConfig           `yaml:"log"`

	// Warnings collects non-fatal problems found while loading.
	Warnings []string `yaml:"-"`
}

type AudioConfig struct {
	Device           *int     `yaml:"device"`
	SampleRate       int      `yaml:"sample_rate"`
	PreferredVendors []string `yaml:"preferred_vendors"`
}

type TranscriptionConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type PromptConfig struct {
	System      string `yaml:"system"`
	Instruction string `yaml:"instruction"`
}

type PromptsConfig struct {
	Normal  PromptConfig `yaml:"normal"`
	AgilePM PromptConfig `yaml:"agile_pm"`
}

type GitHubConfig struct {
	Token  string   `yaml:"token"`
	Repo   string   `yaml:"repo"`
	Labels []string `yaml:"labels"`
}

type IssuesConfig struct {
	Triggers     []string `yaml:"triggers"`
	PromptAlways bool     `yaml:"prompt_always"`
}

type OutputConfig struct {
	CopyToClipboard bool `yaml:"copy_to_clipboard"`
}

type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type NotifyConfig struct {
	Desktop  bool           `yaml:"desktop"`
	Pushover PushoverConfig `yaml:"pushover"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	openAIHost = "api.openai.com"
)

// Load builds the configuration from, lowest precedence first: the .env file
// at envFile, the YAML file at path (with ${VAR} expansion), and the process
// environment. Missing files are skipped.
func Load(path, envFile string) (*Config, error) {
	dotenv := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
		if vars != nil {
			dotenv = vars
		}
	}
	env := envSource{dotenv: dotenv}

	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			expanded := os.Expand(string(data), env.get)
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	cfg.applyEnv(env)
	cfg.setDefaults()

	return &cfg, nil
}

// envSource resolves variables from the process environment first and the
// .env file second.
type envSource struct {
	dotenv map[string]string
}

func (e envSource) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.dotenv[key]
}

// apply sets *dst from the process environment, overriding the YAML value, or
// from the .env file when the YAML left it empty.
func (e envSource) apply(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
		return
	}
	if *dst == "" {
		*dst = e.dotenv[key]
	}
}

func (c *Config) applyEnv(env envSource) {
	env.apply(&c.Mode, "VOICE_DOCS_MODE")
	env.apply(&c.Transcription.APIKey, "OPENAI_API_KEY")
	env.apply(&c.Transcription.BaseURL, "WHISPER_BASE_URL")
	env.apply(&c.GitHub.Token, "GITHUB_TOKEN")
	env.apply(&c.GitHub.Repo, "GITHUB_REPO")
	env.apply(&c.Prompts.Normal.System, "SYSTEM_PROMPT")

	switch strings.ToLower(c.LLM.Provider) {
	case ProviderGemini:
		env.apply(&c.LLM.APIKey, "GEMINI_API_KEY")
	default:
		env.apply(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
	}

	var raw string
	if os.Getenv("AUDIO_DEVICE") != "" || c.Audio.Device == nil {
		env.apply(&raw, "AUDIO_DEVICE")
	}
	if raw = strings.TrimSpace(raw); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			c.Audio.Device = &id
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("invalid AUDIO_DEVICE value %q ignored", raw))
		}
	}
}

func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = string(domain.ModeNormal)
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://" + openAIHost + "/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderAnthropic
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports missing credentials and malformed values. The returned
// error wraps domain.ErrConfiguration.
func (c *Config) Validate() error {
	var problems []string

	if _, err := domain.ParseMode(c.Mode); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.LLM.Provider {
	case ProviderAnthropic:
		if c.LLM.APIKey == "" {
			problems = append(problems, "ANTHROPIC_API_KEY environment variable not set (or llm.api_key / --api-key)")
		}
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			problems = append(problems, "GEMINI_API_KEY environment variable not set (or llm.api_key / --api-key)")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown llm.provider %q (want anthropic or gemini)", c.LLM.Provider))
	}

	u, err := url.Parse(c.Transcription.BaseURL)
	if err != nil || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid transcription.base_url %q", c.Transcription.BaseURL))
	} else if u.Hostname() == openAIHost && c.Transcription.APIKey == "" {
		problems = append(problems, "OPENAI_API_KEY not set; required for OpenAI transcription (or point transcription.base_url at a local whisper server)")
	}

	if (c.GitHub.Token == "") != (c.GitHub.Repo == "") {
		problems = append(problems, "GITHUB_TOKEN and GITHUB_REPO must be set together")
	}

	if c.Audio.SampleRate < 8000 {
		problems = append(problems, fmt.Sprintf("audio.sample_rate %d is too low", c.Audio.SampleRate))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) GitHubEnabled() bool {
	return c.GitHub.Token != "" && c.GitHub.Repo != ""
}

func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled != nil && *c.History.Enabled
}

func (c *Config) PromptSet() domain.PromptSet {
	prompts := domain.DefaultPrompts()
	override := func(mode domain.Mode, pc PromptConfig) {
		p := prompts[mode]
		if pc.System != "" {
			p.System = pc.System
		}
		if pc.Instruction != "" {
			p.Instruction = pc.Instruction
		}
		prompts[mode] = p
	}
	override(domain.ModeNormal, c.Prompts.Normal)
	override(domain.ModeAgilePM, c.Prompts.AgilePM)
	return prompts
}
