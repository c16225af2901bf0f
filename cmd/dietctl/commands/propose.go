package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pet-diet-planner/internal/bootstrap"
	"pet-diet-planner/internal/domain/diet"
	"pet-diet-planner/internal/platform/metrics"
)

// requestFile es el formato de --file (YAML; JSON también es YAML válido).
type requestFile struct {
	Animal struct {
		ID       string   `yaml:"id"`
		Species  string   `yaml:"species"`
		Name     string   `yaml:"name"`
		Breed    string   `yaml:"breed"`
		WeightKg *float64 `yaml:"weight_kg"`
	} `yaml:"animal"`

	Preferences struct {
		Goal              string   `yaml:"goal"`
		LikedFoods        []string `yaml:"liked_foods"`
		DislikedFoods     []string `yaml:"disliked_foods"`
		PreferredFoodType string   `yaml:"preferred_food_type"`
	} `yaml:"preferences"`

	Overrides struct {
		Goal          *string  `yaml:"goal"`
		MealsPerDay   *int     `yaml:"meals_per_day"`
		FoodType      *string  `yaml:"food_type"`
		MonthlyBudget *float64 `yaml:"monthly_budget"`
		DailyCalories *int     `yaml:"daily_calories"`
		Schedule      any      `yaml:"schedule"`
		StartDate     *string  `yaml:"start_date"`
		EndDate       *string  `yaml:"end_date"`
		Status        *string  `yaml:"status"`
	} `yaml:"overrides"`
}

func readRequestFile(path string) (diet.Request, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return diet.Request{}, err
	}
	var f requestFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return diet.Request{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return diet.Request{
		Animal: diet.AnimalProfile{
			ID:       f.Animal.ID,
			Species:  f.Animal.Species,
			Name:     f.Animal.Name,
			Breed:    f.Animal.Breed,
			WeightKg: f.Animal.WeightKg,
		},
		Preferences: diet.Preferences{
			Goal:              f.Preferences.Goal,
			LikedFoods:        f.Preferences.LikedFoods,
			DislikedFoods:     f.Preferences.DislikedFoods,
			PreferredFoodType: f.Preferences.PreferredFoodType,
		},
		Input: diet.UserInput{
			Goal:          f.Overrides.Goal,
			MealsPerDay:   f.Overrides.MealsPerDay,
			FoodType:      f.Overrides.FoodType,
			MonthlyBudget: f.Overrides.MonthlyBudget,
			DailyCalories: f.Overrides.DailyCalories,
			Schedule:      f.Overrides.Schedule,
			StartDate:     f.Overrides.StartDate,
			EndDate:       f.Overrides.EndDate,
			Status:        f.Overrides.Status,
		},
	}, nil
}

func proposeCmd(e *env) *cobra.Command {
	var (
		file string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Generate a diet proposal from a YAML/JSON request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequestFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stores, err := bootstrap.OpenStores(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer stores.Close()

			drafter, err := bootstrap.NewDrafter(ctx, e.cfg.AI, e.log, metrics.New())
			if err != nil {
				return err
			}

			assembler := diet.NewAssembler(diet.AssemblerDeps{
				Breeds:  stores.Catalog,
				Foods:   stores.Catalog,
				Drafter: drafter,
				Log:     e.log,
			})

			var out any
			if save {
				sp, err := diet.NewService(assembler, stores.Proposals).Generate(ctx, req)
				if err != nil {
					return err
				}
				out = map[string]any{"id": sp.ID, "created_at": sp.CreatedAt, "proposal": sp.Proposal}
			} else {
				p, err := assembler.Assemble(ctx, req)
				if err != nil {
					return err
				}
				out = p
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON)")
	cmd.Flags().BoolVar(&save, "save", false, "store the proposal in the configured database")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
