package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pet-diet-planner/internal/platform/config"
	"pet-diet-planner/internal/platform/logger"
)

// env compartido por los subcomandos; se arma en PersistentPreRunE.
type env struct {
	configPath string
	verbose    bool

	cfg config.Config
	log logger.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "dietctl",
		Short:         "Pet diet proposals from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			e.cfg = cfg

			e.log = logger.Nop()
			if e.verbose {
				e.log = logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatText, App: "dietctl"})
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ./config.yaml if present)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "debug logs to stdout")

	root.AddCommand(proposeCmd(e), scheduleCmd(), foodsCmd(e))
	return root
}
