package main

import (
	"github.com/4oBuko/mission-archive/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load countries, cities, target types and missions from a yaml file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			a, err := newApp(load)
			if err != nil {
				return err
			}
			defer a.close()

			missionService, geographyService := a.services()
			_, err = seed.NewSeeder(geographyService, missionService, a.logger).Apply(cmd.Context(), fixtures)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "fixture file to load")
	return cmd
}
