package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/ai/openai"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/interview"
	logging "github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/store"
	"github.com/talentscout/screener/internal/validate"
)

const defaultProvider = "gemini"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("provider", "p", "", "text generation provider: gemini, openai or groq")

	viper.BindPFlag("provider", runCmd.Flags().Lookup("provider"))
}

// run drives one screening conversation from greeting to close and saves
// the resulting record.
func run(cmd *cobra.Command) {
	ctx := cmd.Context()

	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	provider := resolveProvider(config)

	generator, err := newGenerator(ctx, provider, config, logger)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			fmt.Println(ai.NotConfiguredMessage(provider))
			return
		}
		logger.Fatal("building the generator", zap.Error(err))
	}

	st, err := store.Open(storePath(config))
	if err != nil {
		logger.Fatal("opening the session store", zap.Error(err))
	}
	defer st.Close()

	session := interview.New(interviewConfig(config), generator,
		logging.WithCommonFields(logger, provider, generator.Model()))

	fmt.Printf("\nAssistant: %s\n", session.Start(ctx))

	prompt := promptui.Prompt{Label: "You"}
	for {
		input, err := prompt.Run()
		if err != nil {
			logger.Info("input closed, ending the conversation", zap.Error(err))
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		reply, terminated := session.Process(ctx, input)
		fmt.Printf("\nAssistant: %s\n", reply)

		if terminated {
			break
		}
	}

	if err := saveSession(st, session, logger); err != nil {
		logger.Fatal("saving the session", zap.Error(err))
	}
}

// saveSession persists a finished conversation. A session interrupted before
// the close (Ctrl+C, closed stdin) is discarded rather than stored half-filled.
func saveSession(st *store.Store, session *interview.Session, logger *zap.Logger) error {
	if !session.Terminated() {
		logger.Info("conversation did not finish, discarding the session")
		return nil
	}

	record := session.Record()
	warnSuspiciousFields(logger, record)

	sessionID, err := st.Save(record, session.History())
	if err != nil {
		return err
	}

	logging.WithSession(logger, sessionID).Info("session saved",
		zap.String("phase", session.Phase().String()))
	fmt.Printf("\nSession saved with id %s\n", sessionID)
	return nil
}

// warnSuspiciousFields flags captured values that fail validation. Extraction
// is pattern based and can misread free text, so this is a log-only check.
func warnSuspiciousFields(logger *zap.Logger, rec candidate.Record) {
	if rec.Email != "" {
		if err := validate.Email(rec.Email); err != nil {
			logger.Warn("captured email looks invalid", zap.Error(err))
		}
	}
	if rec.Phone != "" {
		if err := validate.Phone(rec.Phone); err != nil {
			logger.Warn("captured phone looks invalid", zap.Error(err))
		}
	}
	if rec.YearsOfExperience != "" {
		if _, err := validate.YearsOfExperience(rec.YearsOfExperience); err != nil {
			logger.Warn("captured experience looks invalid", zap.Error(err))
		}
	}
	if rec.TechStack != "" {
		if _, err := validate.TechStack(rec.TechStack); err != nil {
			logger.Warn("captured tech stack looks invalid", zap.Error(err))
		}
	}
}

func resolveProvider(config *Config) string {
	provider := strings.TrimSpace(strings.ToLower(viper.GetString("provider")))
	if provider == "" && config.Provider != "" {
		provider = strings.TrimSpace(strings.ToLower(config.Provider))
	}
	if provider == "" {
		provider = defaultProvider
	}
	return provider
}

func newGenerator(ctx context.Context, provider string, config *Config, logger *zap.Logger) (ai.Generator, error) {
	switch provider {
	case "gemini":
		cfg := config.Gemini
		if cfg == nil {
			cfg = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		return gemini.New(ctx, apiKey, cfg.Model, cfg.MaxRetries,
			logging.WithCommonFields(logger, provider, cfg.Model))
	case "openai":
		cfg := config.OpenAI
		if cfg == nil {
			cfg = &OpenAIConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: cfg.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		return openai.New(apiKey, cfg.Model)
	case "groq":
		cfg := config.Groq
		if cfg == nil {
			cfg = &GroqConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "groq api key",
			File: cfg.APIKeyFile,
			Env:  "GROQ_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		return openai.NewGroq(apiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func interviewConfig(config *Config) *interview.Config {
	cfg := interview.DefaultConfig()
	if config.Interview == nil {
		return cfg
	}

	if len(config.Interview.ExitKeywords) > 0 {
		cfg.ExitKeywords = config.Interview.ExitKeywords
	}
	if len(config.Interview.ClosingMarkers) > 0 {
		cfg.ClosingMarkers = config.Interview.ClosingMarkers
	}
	if config.Interview.MinTechnicalQuestions != 0 {
		cfg.MinTechnicalQuestions = config.Interview.MinTechnicalQuestions
	}
	if config.Interview.MaxHistoryLength != 0 {
		cfg.MaxHistoryLength = config.Interview.MaxHistoryLength
	}
	if config.Interview.GeneratorTimeout != 0 {
		cfg.GeneratorTimeout = config.Interview.GeneratorTimeout
	}

	return cfg
}
