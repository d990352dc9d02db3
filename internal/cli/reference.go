package cli

import (
	"fmt"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/usecase"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show listing statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := rt.referenceData(rt.api()).Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			return render.NewTextRenderer(out(cmd)).RenderStats(stats)
		},
	}
}

func newNeighborhoodsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "barrios",
		Aliases: []string{"neighborhoods"},
		Short:   "List neighborhoods with listing counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := rt.referenceData(rt.api()).Neighborhoods(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get neighborhoods: %w", err)
			}
			return render.NewTextRenderer(out(cmd)).RenderOptions(render.NeighborhoodOptions(rows))
		},
	}
}

func newSourcesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "fuentes",
		Aliases: []string{"sources"},
		Short:   "List listing sources with counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := rt.referenceData(rt.api()).Sources(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get sources: %w", err)
			}
			return render.NewTextRenderer(out(cmd)).RenderOptions(render.SourceOptions(rows))
		},
	}
}

func newShowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show listing details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			detail, err := usecase.NewGetListingDetailsUseCase(rt.api()).Execute(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render.NewTextRenderer(out(cmd)).RenderDetail(detail)
		},
	}
}

func newFindCommand(rt *runtime) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find [text]",
		Short: "Free-text search over title, description and address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := usecase.NewFindListingsByTextUseCase(rt.api()).Execute(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(listings) == 0 {
				fmt.Fprintln(out(cmd), "No se encontraron propiedades.")
				return nil
			}
			r := render.NewTextRenderer(out(cmd))
			for _, l := range listings {
				if err := r.RenderCard(domain.NewListingCard(l)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (1-100, default 20)")

	return cmd
}
