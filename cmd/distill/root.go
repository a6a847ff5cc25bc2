package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "distill",
	Short: "Distill runs distillation towers against a recipe catalog.",
	Long: `Distill runs distillation towers against a recipe catalog. ` +
		`A catalog directory holds molecules.yaml, recipes.yaml and an ` +
		`optional tuning.yaml. Settings can also come from distill.yaml, ` +
		`a .env file or DISTILL_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./distill.yaml)")
	rootCmd.PersistentFlags().String("log-file", "",
		"also write logs into this file, rotated by size")
	bindFlag(rootCmd.PersistentFlags().Lookup("log-file"), logFilenameKey)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers, such as the ones flushing data
// recorders, run before the process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
