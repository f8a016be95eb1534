package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/totem-project/totem/internal/store"
	badgerStore "github.com/totem-project/totem/internal/store/badger"
	bboltStore "github.com/totem-project/totem/internal/store/bbolt"
)

var (
	// persistent flags
	cfgFile       string
	dbPath        string
	dbBackend     string
	noDurableSync bool
)

var rootCmd = &cobra.Command{
	Use:   "totem",
	Short: "Structural changeset calculator",
	Long: `Totem computes structural change-sets between snapshots of data: a tree of
typed change records (additions, removals, modifications and nested sets)
instead of a flat textual diff. It can also record the revision history of an
object as an audit trail, storing every state together with the changes that
led to it.`,
}

var setupLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
	Timestamp().
	Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.totem.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "totem.db",
		"Path to the revision database (a file for bbolt, a directory for badger)")
	rootCmd.PersistentFlags().StringVar(&dbBackend, "backend", "bbolt",
		"Revision store backend: bbolt or badger")
	rootCmd.PersistentFlags().BoolVar(&noDurableSync, "no-durable-sync", false,
		"Skip fsync on every commit to improve throughput (unsafe on crashes)")

	// allow some flags to be set via environment variables / config file
	mustBind("db",
		viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db")))
	mustBind("backend",
		viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend")))
	mustBind("no-durable-sync",
		viper.BindPFlag("no-durable-sync", rootCmd.PersistentFlags().Lookup("no-durable-sync")))
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func mustBind(name string, err error) {
	if err != nil {
		setupLog.Fatal().Err(err).Msgf("Cannot bind flag %s", name)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".totem")
	}

	viper.SetEnvPrefix("totem")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		setupLog.Info().Msgf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// openStore opens the revision store the persistent flags select.
func openStore() (store.RevisionStore, error) {
	path := viper.GetString("db")
	durable := !viper.GetBool("no-durable-sync")

	switch backend := viper.GetString("backend"); backend {
	case "bbolt":
		return bboltStore.New(path, nil, durable)
	case "badger":
		return badgerStore.New(path, nil, durable)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
