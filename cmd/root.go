package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-scorer/internal/server"
)

const (
	app = "ats-scorer"
)

type Config struct {
	AI     *AIConfig     `mapstructure:"ai" validate:"required"`
	Cache  *CacheConfig  `mapstructure:"cache" validate:"required"`
	Server server.Config `mapstructure:"server"`
}

type AIConfig struct {
	Enabled           bool               `mapstructure:"enabled"`
	Provider          string             `mapstructure:"provider" validate:"oneof=huggingface gemini"`
	Timeout           time.Duration      `mapstructure:"timeout" validate:"gte=0"`
	RequestsPerSecond float64            `mapstructure:"requests-per-second" validate:"gte=0"`
	Burst             int                `mapstructure:"burst" validate:"gte=0"`
	ParallelSections  bool               `mapstructure:"parallel-sections"`
	MaxLogLength      int                `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini            *GeminiConfig      `mapstructure:"gemini" validate:"required"`
	HuggingFace       *HuggingFaceConfig `mapstructure:"huggingface" validate:"required"`
}

type GeminiConfig struct {
	APIKey               string `mapstructure:"api-key"`
	APIKeyFile           string `mapstructure:"api-key-file"`
	Model                string `mapstructure:"model"`
	OutputDimensionality int32  `mapstructure:"output-dimensionality" validate:"gte=0"`
}

type HuggingFaceConfig struct {
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token-file"`
	URL       string `mapstructure:"url" validate:"omitempty,url"`
	Model     string `mapstructure:"model"`
}

type CacheConfig struct {
	RedisURL string        `mapstructure:"redis-url"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-scorer scores resumes the way applicant tracking systems do",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindEnv := map[string]string{
		"ai.gemini.api-key-file":     "GEMINI_API_KEY_FILE",
		"ai.huggingface.token-file": "HF_TOKEN_FILE",
		"cache.redis-url":           "ATS_REDIS_URL",
	}
	for key, env := range bindEnv {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "huggingface")
	v.SetDefault("ai.timeout", 10*time.Second)
	v.SetDefault("ai.requests-per-second", 5)
	v.SetDefault("ai.burst", 1)
	v.SetDefault("ai.parallel-sections", false)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "text-embedding-004")
	v.SetDefault("ai.gemini.output-dimensionality", 0)
	v.SetDefault("ai.huggingface.token", "")
	v.SetDefault("ai.huggingface.token-file", "")
	v.SetDefault("ai.huggingface.url", "")
	v.SetDefault("ai.huggingface.model", "sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("cache.redis-url", "")
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", 30*time.Second)
}

func initConfig() {
	// Credentials may live in a local .env; it is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig reads an explicit config file or, when none is given, an
// optional ats-scorer.yaml from the working directory.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
