package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Routing core
	Routing    RoutingConfig
	Classifier ClassifierConfig
	Retrieval  RetrievalConfig
	Generation GenerationConfig
	Escalation EscalationConfig

	// Collaborators
	Qdrant QdrantConfig
	Voyage VoyageConfig
	LLM    LLMConfig

	// Supporting infrastructure
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
	Costs     CostConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RoutingConfig drives the bucket decision.
type RoutingConfig struct {
	Threshold     float64
	TopK          int
	PinEscalation bool
	TablePath     string // empty: built-in table
	TemplatesPath string // empty: built-in templates
}

// ClassifierConfig selects and configures the intent classifier backend.
type ClassifierConfig struct {
	Backend    string // linear | remote | llm
	ModelPath  string // linear: JSON weights artifact
	URL        string // remote: classification endpoint
	Timeout    string
	MaxRetries int
}

// RetrievalConfig selects the knowledge base backend.
type RetrievalConfig struct {
	Backend            string // filesystem | qdrant
	IndexPath          string // filesystem: JSON snapshot
	Dimension          int
	EmbeddingCacheSize int
	MinScore           float64
}

// GenerationConfig holds fixed generation parameters per path.
type GenerationConfig struct {
	LowCost          GenerationParams
	Escalate         GenerationParams
	MaxContextTokens int
	Tokenizer        string
}

type GenerationParams struct {
	Temperature float64
	MaxTokens   int
}

// EscalationConfig picks between the fixed acknowledgment and a generated one.
type EscalationConfig struct {
	Mode    string // static | generate
	Message string
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// CacheConfig configures the redis response cache.
type CacheConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      string
}

type RateLimitConfig struct {
	Enabled         bool
	RequestsPerMin  int
	MaxTrackedUsers int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// CostConfig is the estimated USD cost of one request per bucket.
type CostConfig struct {
	ZeroCost float64
	LowCost  float64
	Escalate float64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/ (or CONFIG_PATH).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	}
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Routing core
	cfg.Routing.Threshold = viper.GetFloat64("routing.threshold")
	cfg.Routing.TopK = viper.GetInt("routing.top_k")
	cfg.Routing.PinEscalation = viper.GetBool("routing.pin_escalation")
	cfg.Routing.TablePath = viper.GetString("routing.table_path")
	cfg.Routing.TemplatesPath = viper.GetString("routing.templates_path")

	cfg.Classifier.Backend = viper.GetString("classifier.backend")
	cfg.Classifier.ModelPath = viper.GetString("classifier.model_path")
	cfg.Classifier.URL = viper.GetString("classifier.url")
	cfg.Classifier.Timeout = viper.GetString("classifier.timeout")
	cfg.Classifier.MaxRetries = viper.GetInt("classifier.max_retries")

	cfg.Retrieval.Backend = viper.GetString("retrieval.backend")
	cfg.Retrieval.IndexPath = viper.GetString("retrieval.index_path")
	cfg.Retrieval.Dimension = viper.GetInt("retrieval.dimension")
	cfg.Retrieval.EmbeddingCacheSize = viper.GetInt("retrieval.embedding_cache_size")
	cfg.Retrieval.MinScore = viper.GetFloat64("retrieval.min_score")

	cfg.Generation.LowCost.Temperature = viper.GetFloat64("generation.low_cost.temperature")
	cfg.Generation.LowCost.MaxTokens = viper.GetInt("generation.low_cost.max_tokens")
	cfg.Generation.Escalate.Temperature = viper.GetFloat64("generation.escalate.temperature")
	cfg.Generation.Escalate.MaxTokens = viper.GetInt("generation.escalate.max_tokens")
	cfg.Generation.MaxContextTokens = viper.GetInt("generation.max_context_tokens")
	cfg.Generation.Tokenizer = viper.GetString("generation.tokenizer")

	cfg.Escalation.Mode = viper.GetString("escalation.mode")
	cfg.Escalation.Message = viper.GetString("escalation.message")

	// Qdrant / Voyage
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.APIKey = viper.GetString("qdrant.api_key")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	cfg.Voyage.Model = viper.GetString("voyage.model")
	cfg.Voyage.BaseURL = viper.GetString("voyage.base_url")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// Supporting infrastructure
	cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	cfg.Cache.Address = viper.GetString("cache.address")
	cfg.Cache.Password = viper.GetString("cache.password")
	cfg.Cache.DB = viper.GetInt("cache.db")
	cfg.Cache.TTL = viper.GetString("cache.ttl")

	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxTrackedUsers = viper.GetInt("rate_limit.max_tracked_users")

	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Path = viper.GetString("metrics.path")

	cfg.Costs.ZeroCost = viper.GetFloat64("costs.zero_cost")
	cfg.Costs.LowCost = viper.GetFloat64("costs.low_cost")
	cfg.Costs.Escalate = viper.GetFloat64("costs.escalate")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (cfg *Config) Validate() error {
	if math.IsNaN(cfg.Routing.Threshold) || cfg.Routing.Threshold < 0 || cfg.Routing.Threshold > 1 {
		return fmt.Errorf("routing.threshold must be within [0,1], got %v", cfg.Routing.Threshold)
	}
	if cfg.Routing.TopK <= 0 {
		return fmt.Errorf("routing.top_k must be positive, got %d", cfg.Routing.TopK)
	}
	switch cfg.Classifier.Backend {
	case ClassifierLinear, ClassifierRemote, ClassifierLLM:
	default:
		return fmt.Errorf("classifier.backend %q is not one of linear, remote, llm", cfg.Classifier.Backend)
	}
	switch cfg.Retrieval.Backend {
	case RetrievalFilesystem, RetrievalQdrant:
	default:
		return fmt.Errorf("retrieval.backend %q is not one of filesystem, qdrant", cfg.Retrieval.Backend)
	}
	switch cfg.Escalation.Mode {
	case EscalationStatic, EscalationGenerate:
	default:
		return fmt.Errorf("escalation.mode %q is not one of static, generate", cfg.Escalation.Mode)
	}
	return validateLLMConfig(&cfg.LLM)
}

const (
	ClassifierLinear = "linear"
	ClassifierRemote = "remote"
	ClassifierLLM    = "llm"

	RetrievalFilesystem = "filesystem"
	RetrievalQdrant     = "qdrant"

	EscalationStatic   = "static"
	EscalationGenerate = "generate"
)

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Routing defaults
	viper.SetDefault("routing.threshold", 0.5)
	viper.SetDefault("routing.top_k", 3)
	viper.SetDefault("routing.pin_escalation", false)

	viper.SetDefault("classifier.backend", ClassifierLinear)
	viper.SetDefault("classifier.model_path", "data/intent_model.json")
	viper.SetDefault("classifier.timeout", "5s")
	viper.SetDefault("classifier.max_retries", 3)

	viper.SetDefault("retrieval.backend", RetrievalFilesystem)
	viper.SetDefault("retrieval.index_path", "data/kb_index.json")
	viper.SetDefault("retrieval.dimension", 1024)
	viper.SetDefault("retrieval.embedding_cache_size", 1024)
	viper.SetDefault("retrieval.min_score", 0.0)

	viper.SetDefault("generation.low_cost.temperature", 0.2)
	viper.SetDefault("generation.low_cost.max_tokens", 512)
	viper.SetDefault("generation.escalate.temperature", 0.3)
	viper.SetDefault("generation.escalate.max_tokens", 1000)
	viper.SetDefault("generation.max_context_tokens", 1500)
	viper.SetDefault("generation.tokenizer", "cl100k_base")

	viper.SetDefault("escalation.mode", EscalationStatic)

	viper.SetDefault("qdrant.collection_name", "support_kb")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("voyage.model", "voyage-3")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "500ms")
	viper.SetDefault("llm.max_total_timeout", "30s")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.address", "localhost:6379")
	viper.SetDefault("cache.ttl", "1h")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 30)
	viper.SetDefault("rate_limit.max_tracked_users", 10000)

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	viper.SetDefault("costs.zero_cost", 0.0)
	viper.SetDefault("costs.low_cost", 0.001)
	viper.SetDefault("costs.escalate", 0.02)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration. An empty provider list is
// allowed: the service then runs with template and escalation answers only and
// every generation attempt degrades.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
