package cmd

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "screener"

	defaultStorePath = "screener.db"
)

type Config struct {
	Provider  string           `mapstructure:"provider"`
	Gemini    *GeminiConfig    `mapstructure:"gemini"`
	OpenAI    *OpenAIConfig    `mapstructure:"openai"`
	Groq      *GroqConfig      `mapstructure:"groq"`
	Interview *InterviewConfig `mapstructure:"interview"`
	Store     *StoreConfig     `mapstructure:"store"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type OpenAIConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type GroqConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type InterviewConfig struct {
	ExitKeywords          []string      `mapstructure:"exit-keywords"`
	ClosingMarkers        []string      `mapstructure:"closing-markers"`
	MinTechnicalQuestions int           `mapstructure:"min-technical-questions"`
	MaxHistoryLength      int           `mapstructure:"max-history-length"`
	GeneratorTimeout      time.Duration `mapstructure:"generator-timeout"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "screener is a conversational cli for initial technical candidate screenings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env file is optional; environment variables win over it.
	_ = godotenv.Load()

	if err := viper.BindEnv("provider", "SCREENER_PROVIDER"); err != nil {
		log.Fatalf("binding SCREENER_PROVIDER environment variable: %v", err)
	}
	if err := viper.BindEnv("store.path", "SCREENER_DB_PATH"); err != nil {
		log.Fatalf("binding SCREENER_DB_PATH environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("db", "", "path to the session database")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: env vars and defaults are enough to run.
	// An explicitly given file must parse, though.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func storePath(config *Config) string {
	if path := viper.GetString("store.path"); path != "" {
		return path
	}
	if config.Store != nil && config.Store.Path != "" {
		return config.Store.Path
	}
	return defaultStorePath
}
