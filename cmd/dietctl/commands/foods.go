package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pet-diet-planner/internal/bootstrap"
	"pet-diet-planner/internal/domain/diet"
)

func foodsCmd(e *env) *cobra.Command {
	var (
		species   string
		foodType  string
		condition string
		key       string
	)

	cmd := &cobra.Command{
		Use:   "foods",
		Short: "List catalog candidates for a species (and the pick for an animal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, err := bootstrap.OpenStores(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer stores.Close()

			sel := diet.NewFoodSelector(stores.Catalog, e.log)
			pool, err := sel.Candidates(ctx, species, foodType)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSPECIES\tKCAL/100G\tPRICE/KG")
			for _, it := range pool {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Type, it.Species, optFloat(it.KcalPer100g), optFloat(it.PricePerKg))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if key == "" {
				return nil
			}
			pick, ok := diet.PickFood(pool, diet.Condition(condition), key)
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "\npick: none")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\npick: %s\n", pick.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "species (dog, cat, ...); empty = only both-species items")
	cmd.Flags().StringVar(&foodType, "type", "", "food type filter (dry, wet, ...)")
	cmd.Flags().StringVar(&condition, "condition", string(diet.ConditionUndetermined), "weight condition for the pick (over, under, healthy, undetermined)")
	cmd.Flags().StringVar(&key, "key", "", "animal identity key; prints the deterministic pick")
	return cmd
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
