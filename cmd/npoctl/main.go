// Package main is npoctl, a command-line client for the NPO Connect
// directory, document generators, chat assistant and task calendar.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
)

// version is set at build time via ldflags.
var version = "dev"

// apiKeyEnv is read when no key is configured for npoctl itself.
const apiKeyEnv = "API_KEY"

// newClient builds the completion client. Tests replace it.
var newClient = func(ctx context.Context, apiKey, model string) (aiclient.Client, error) {
	return aiclient.NewGenAI(ctx, apiKey, model)
}

var rootCmd = &cobra.Command{
	Use:   "npoctl",
	Short: "Browse Gauteng NPOs and run the NPO Connect tools",
	Long: `npoctl searches the NPO Connect directory of non-profit organizations and
runs the dashboard tools from the terminal: proposal, monthly report and donor
match generation, the AI chat assistant, and the task and deadline calendar.

The AI tools need a Gemini API key (--api-key, NPOCTL_API_KEY or API_KEY).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./npoctl.yaml or ~/.config/npoctl/config.yaml)")
	pf.String("dataset", "", "YAML organization dataset (default: built-in)")
	pf.String("api-key", "", "Gemini API key")
	pf.String("model", aiclient.DefaultModel, "Gemini model")
	pf.String("tasks-db", defaultTasksDB(), "SQLite file holding calendar tasks")
	pf.BoolP("verbose", "v", false, "log diagnostics to stderr")

	for key, flag := range map[string]string{
		"dataset":  "dataset",
		"api_key":  "api-key",
		"model":    "model",
		"tasks_db": "tasks-db",
		"verbose":  "verbose",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("npoctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "npoctl"))
		}
	}

	viper.SetEnvPrefix("NPOCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultTasksDB() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "npoctl", "tasks.db")
	}
	return "npoctl-tasks.db"
}

func newLogger() *zap.Logger {
	if !viper.GetBool("verbose") {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadDataset() (*dataset.Provider, error) {
	return dataset.Load(viper.GetString("dataset"))
}

func apiKey() string {
	if k := viper.GetString("api_key"); k != "" {
		return k
	}
	return os.Getenv(apiKeyEnv)
}

// newOrchestrator returns a usable orchestrator or the configuration error.
func newOrchestrator(ctx context.Context, logger *zap.Logger) (*generation.Orchestrator, error) {
	key := apiKey()
	if key == "" {
		return nil, generation.ErrNotConfigured
	}
	client, err := newClient(ctx, key, viper.GetString("model"))
	if err != nil {
		return nil, err
	}
	return generation.New(client, viper.GetString("model"), logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var invalid *generation.ValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintln(os.Stderr, "npoctl: payload incomplete:", invalid.Error())
		} else {
			fmt.Fprintln(os.Stderr, "npoctl:", err)
		}
		os.Exit(1)
	}
}
