// Package cli implements the command-line interface for touchcube.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "touchcube",
	Short: "Touch-sensor Rubik's cube replica",
	Long: `touchcube drives a Rubik's cube replica made of LEDs and finger sensors.

Holding a face's sensors in its turning pattern turns that face, three
fingers on a corner undo the last turn, and four fingers on the top or
bottom face scramble the cube. Without hardware the whole game runs in the terminal
with the keyboard standing in for the sensors.

Sessions can be recorded to a local database and replayed frame by frame.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Root returns the root command with every subcommand attached.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "touchcube.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.touchcube/touchcube.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads the config file named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so they do not mix
// with command output.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.SetLevel(cfg.Level())
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// openDB opens the database named by the config, --db, or the default path.
func openDB(cfg *config.Config) (*storage.DB, error) {
	path := cfg.DBPath
	if path == "" {
		return storage.OpenDefault()
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// resolveSessionID maps "last" to the most recent session.
func resolveSessionID(db *storage.DB, id string) (string, error) {
	if id != "last" {
		return id, nil
	}
	s, err := storage.NewSessionRepository(db).GetLast()
	if err != nil {
		return "", err
	}
	return s.SessionID, nil
}
