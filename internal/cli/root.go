package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rp-magrathea/vogsphere/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the release reported by the version command
const Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vogsphere",
	Short: "Vogsphere - character claim post generator for RP forums",
	Long: `Vogsphere turns the answers of a character claim form into the
forum post that registers the claim: the face claim, the occupation
claim and, for new labs, the lab listing.

Nothing is generated unless every answer checks out. Problems are
reported one per line, prefixed with ERROR:.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("output.verbose"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vogsphere %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vogsphere/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	configureViper(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".vogsphere"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configureViper registers env handling and the scalar defaults, so VOGSPHERE_* variables
// reach every key on Unmarshal. The field manifest is a list and stays file-only.
func configureViper(v *viper.Viper) {
	v.SetEnvPrefix("VOGSPHERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := model.DefaultConfig()
	v.SetDefault("post_tag", d.PostTag)
	v.SetDefault("true_literal", d.TrueLiteral)

	v.SetDefault("form.timeout", d.Form.Timeout)
	v.SetDefault("form.user_agent", d.Form.UserAgent)
	v.SetDefault("form.max_bytes", d.Form.MaxBytes)
	v.SetDefault("form.respect_robots", d.Form.RespectRobots)
	v.SetDefault("form.requests_per_second", d.Form.RequestsPerSecond)
	v.SetDefault("form.burst", d.Form.Burst)
	v.SetDefault("form.http_proxy", d.Form.HTTPProxy)
	v.SetDefault("form.https_proxy", d.Form.HTTPSProxy)
	v.SetDefault("form.no_proxy", d.Form.NoProxy)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.verbose", d.Output.Verbose)
}

// loadConfig returns the effective configuration from the global viper instance
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

// decodeConfig builds a Config from v and checks the field manifest
func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if v.IsSet("fields") {
		// A configured manifest replaces the default one entirely
		cfg.Fields = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// Weak decoding turns an unquoted YAML true into "1"; read the literals as strings
	cfg.PostTag = v.GetString("post_tag")
	cfg.TrueLiteral = v.GetString("true_literal")

	if err := cfg.Fields.Check(); err != nil {
		return nil, fmt.Errorf("invalid field manifest: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to stderr so stdout carries only the post.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
