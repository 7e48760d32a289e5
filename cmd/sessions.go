package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logging "github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved screening sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(func(st *store.Store, logger *zap.Logger) error {
			records, err := st.List()
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("no saved sessions")
				return nil
			}

			for _, rec := range records {
				summary := rec.Candidate.AnonymizedSummary()
				fmt.Printf("%s  %s  %-20s  %s\n",
					rec.SessionID,
					rec.Timestamp.Format(time.RFC3339),
					summary.NameOrFallback("(no name)"),
					rec.Status,
				)
			}
			return nil
		})
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one saved session with contact details masked",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(st *store.Store, logger *zap.Logger) error {
			rec, err := st.Get(args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					fmt.Printf("session %s not found\n", args[0])
					return nil
				}
				return err
			}

			rec.Candidate = rec.Candidate.AnonymizedSummary()
			pretty, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(pretty))
			return nil
		})
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Erase one saved session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(st *store.Store, logger *zap.Logger) error {
			found, err := st.Delete(args[0])
			if err != nil {
				return err
			}

			if !found {
				fmt.Printf("session %s not found\n", args[0])
				return nil
			}

			logging.WithSession(logger, args[0]).Info("session erased")
			fmt.Printf("session %s erased\n", args[0])
			return nil
		})
	},
}

var sessionsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove sessions older than the retention period",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(func(st *store.Store, logger *zap.Logger) error {
			removed, err := st.CleanupExpired(time.Now())
			if err != nil {
				return err
			}

			logger.Info("retention sweep finished", zap.Int("removed", removed))
			fmt.Printf("removed %d expired session(s)\n", removed)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd, sessionsCleanupCmd)
}

// withStore opens the configured session store, runs fn, and handles the
// shared logging and teardown for the sessions subcommands.
func withStore(fn func(*store.Store, *zap.Logger) error) {
	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := store.Open(storePath(config))
	if err != nil {
		logger.Fatal("opening the session store", zap.Error(err))
	}
	defer st.Close()

	if err := fn(st, logger); err != nil {
		logger.Fatal("sessions command failed", zap.Error(err))
	}
}
