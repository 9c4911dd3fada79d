package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"`
	LLM          LLMConfig          `mapstructure:"llm" validate:"required"`
	Conversation ConversationConfig `mapstructure:"conversation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	// MaxUploadMB caps multipart uploads (audio and images).
	MaxUploadMB int `mapstructure:"max_upload_mb" validate:"gt=0,lte=100"`
}

// DatabaseConfig contains all database-related configuration settings.
// The database is optional; it only stores additional practice phrases.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is checked when the Gemini client is created, so commands
	// that never call the model can run without it.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	TextModel   string `mapstructure:"text_model" validate:"required"`
	VisionModel string `mapstructure:"vision_model" validate:"required"`
	AudioModel  string `mapstructure:"audio_model" validate:"required"`
	SpeechModel string `mapstructure:"speech_model" validate:"required"`

	MaxRetries            int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds     int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// ConversationConfig controls sequential conversation practice sessions.
type ConversationConfig struct {
	SessionTTLMinutes      int  `mapstructure:"session_ttl_minutes" validate:"gt=0"`
	MaxSessions            int  `mapstructure:"max_sessions" validate:"gt=0"`
	JanitorIntervalSeconds int  `mapstructure:"janitor_interval_seconds" validate:"gt=0"`
	OpenWithGreeting       bool `mapstructure:"open_with_greeting"`

	// PhrasesFile is an optional YAML phrase bank merged over the built-in one.
	PhrasesFile string `mapstructure:"phrases_file" validate:"omitempty,file"`

	// EnrichmentEnabled asks the model for fresh phrases once a session has
	// used every phrase in its language pool.
	EnrichmentEnabled        bool `mapstructure:"enrichment_enabled"`
	EnrichmentTimeoutSeconds int  `mapstructure:"enrichment_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown bound.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the multipart upload cap in bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// RetryDelay returns the base backoff delay.
func (c LLMConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// RequestTimeout returns the per-call bound for model requests.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns the idle time after which a session is evicted.
func (c ConversationConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// JanitorInterval returns how often expired sessions are swept.
func (c ConversationConfig) JanitorInterval() time.Duration {
	return time.Duration(c.JanitorIntervalSeconds) * time.Second
}

// EnrichmentTimeout returns the bound on a single phrase generation call.
func (c ConversationConfig) EnrichmentTimeout() time.Duration {
	return time.Duration(c.EnrichmentTimeoutSeconds) * time.Second
}
