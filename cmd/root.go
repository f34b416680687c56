package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/jjenkins/mirrulations/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "mirrulations",
	Short: "Search federal rulemaking dockets and their public comments",
	Long: `Mirrulations indexes dockets and public comments from regulations.gov
and serves a search interface over them.

Settings come from flags, MIRRULATIONS_* environment variables, a .env file
in the working directory, or a YAML config file passed with --config.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	_ = v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
}

// loadConfig decodes the configuration once flags and environment are known
func loadConfig() *config.Config {
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// bindFlag ties a command flag to a config key
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		log.Fatalf("failed to bind flag %s: %v", flag, err)
	}
}
