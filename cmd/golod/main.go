// Command golod imputes left-censored values in geochemical CSV data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "golod",
	Short: "golod: impute left-censored geochemical data",
	Long: `golod detects "below detection limit" notation ("<5") in tabular
geochemical data and replaces the censored cells with statistically
defensible estimates using simple, multiplicative, beta-substitution,
spatial IDW, or log-ratio EM methods.`,
}

func main() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./golod.yaml)")
	rootCmd.AddCommand(imputeCmd)
}

// loadConfig resolves configuration with precedence flags > env > file >
// defaults. The GOLOD_ environment prefix maps GOLOD_MAX_ITER to max-iter.
func loadConfig() {
	v.SetEnvPrefix("GOLOD")
	v.AutomaticEnv()

	v.SetDefault("method", "beta")
	v.SetDefault("out", ".")
	v.SetDefault("center", "sqrt2")
	v.SetDefault("idw-center", "div2")
	v.SetDefault("delta", 0.65)
	v.SetDefault("power", 2.0)
	v.SetDefault("max-distance", 0.0)
	v.SetDefault("min-neighbors", 3)
	v.SetDefault("tolerance", 0.0001)
	v.SetDefault("max-iter", 50)
	v.SetDefault("frac", 0.65)
	v.SetDefault("init", "multRepl")
	v.SetDefault("seed", 42)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("golod")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config: %v\n", err)
		}
	}

	if err := v.BindPFlags(imputeCmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind flags: %v\n", err)
	}
}
