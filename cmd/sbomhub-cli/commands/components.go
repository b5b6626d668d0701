package commands

import (
	"context"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/database/repositories"
	"github.com/opencomply/sbomhub/enrichment"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/utils"
)

func NewComponentsCommand() *cobra.Command {
	componentsCmd := cobra.Command{
		Use: "components",
	}

	componentsCmd.AddCommand(newCleanupOrphaned())
	componentsCmd.AddCommand(newRefreshLicenses())
	return &componentsCmd
}

func newCleanupOrphaned() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-orphaned",
		Short: "Delete components no snapshot references anymore",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			shared.LoadConfig() // nolint
			db, err := shared.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			componentRepository := repositories.NewComponentRepository(db)
			deleted, err := componentRepository.DeleteOrphaned(nil)
			if err != nil {
				slog.Error("could not delete orphaned components", "err", err)
				return
			}
			slog.Info("deleted orphaned components", "count", deleted)
		},
	}
}

func newRefreshLicenses() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-licenses",
		Short: "Will look up license information for all components without a confirmed license",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			shared.LoadConfig() // nolint
			db, err := shared.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			componentRepository := repositories.NewComponentRepository(db)
			client := enrichment.NewClientFromEnv()

			components, err := componentRepository.FindAllWithoutConfirmedLicense()
			if err != nil {
				slog.Error("could not get components", "err", err)
				return
			}
			if len(components) == 0 {
				slog.Info("all components carry a confirmed license")
				return
			}

			bar := progressbar.Default(int64(len(components)))

			for _, batch := range utils.Chunk(components, 100) {
				queries := utils.Map(batch, func(c models.Component) enrichment.ComponentQuery {
					return enrichment.ComponentQuery{
						Purl:      c.Purl,
						Name:      c.Name,
						Version:   c.Version,
						Ecosystem: c.Ecosystem,
					}
				})

				intel, err := client.LookupBatch(context.Background(), queries)
				if err != nil {
					slog.Error("lookup batch failed, skipping", "err", err)
					bar.Add(len(batch)) // nolint
					continue
				}

				byPurl := make(map[string]enrichment.ComponentIntelligence, len(intel))
				for _, entry := range intel {
					byPurl[entry.Purl] = entry
				}

				updated := make([]models.Component, 0, len(batch))
				for _, component := range batch {
					entry, ok := byPurl[component.Purl]
					if !ok {
						continue
					}
					if entry.License != "" {
						component.ConfirmedLicense = utils.Ptr(entry.License)
					}
					if entry.LatestVersion != "" {
						component.LatestVersion = utils.Ptr(entry.LatestVersion)
					}
					updated = append(updated, component)
				}

				if len(updated) > 0 {
					if err := componentRepository.SaveComponents(nil, updated); err != nil {
						slog.Error("could not save batch", "err", err)
						return
					}
				}
				bar.Add(len(batch)) // nolint
			}
		},
	}
}
