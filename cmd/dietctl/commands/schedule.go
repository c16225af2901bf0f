package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pet-diet-planner/internal/domain/diet"
)

func scheduleCmd() *cobra.Command {
	var (
		key     string
		meals   int
		species string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the deterministic feeding schedule for an animal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if meals < 1 {
				return fmt.Errorf("--meals must be >= 1, got %d", meals)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), diet.GenerateSchedule(key, meals, species))
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "animal identity key")
	cmd.Flags().IntVar(&meals, "meals", 2, "meals per day")
	cmd.Flags().StringVar(&species, "species", "", "species (dog, cat, ...)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
