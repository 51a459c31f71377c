package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
	"github.com/florenciacomuzzi/amp-report/internal/seed"
)

func seedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the amenity catalog, skipping names that already exist",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}

			res, err := seed.Amenities(c.Context(), repository.NewAmenityRepository(a.db), catalog, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the built-in one")
	return cmd
}

func loadCatalog(file string) ([]models.Amenity, error) {
	if file == "" {
		return seed.DefaultCatalog()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return seed.ParseCatalog(data)
}
