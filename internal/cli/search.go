package cli

import (
	"fmt"
	"listing-search-service/internal/adapters/presenter"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/usecase"
	"strings"

	"github.com/spf13/cobra"
)

// parseFilterArgs разбирает значения --filter вида "barrio=Centro"
func parseFilterArgs(args []string) (domain.FilterState, error) {
	var filters domain.FilterState
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return filters, fmt.Errorf("filter %q must look like field=value", arg)
		}
		field, err := domain.ParseFilterField(name)
		if err != nil {
			return filters, err
		}
		if err := filters.Set(field, value); err != nil {
			return filters, err
		}
	}
	return filters, nil
}

func newSearchCommand(rt *runtime) *cobra.Command {
	var (
		filterArgs []string
		page       int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings with filters",
		Example: "  listings-cli search --filter barrio=Centro --filter precio_max=80000\n" +
			"  listings-cli search --filter ordenar=precio_asc --page 2",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilterArgs(filterArgs)
			if err != nil {
				return err
			}

			api := rt.api()
			cursor := domain.NewPageCursor(page)
			query := usecase.BuildListingsQuery(filters, cursor, rt.pageSize)

			listings, err := api.FindListings(cmd.Context(), query)
			outcome := domain.ClassifySearchResult(listings, err, cursor.Page(), rt.pageSize, api.BaseURL())

			presenter.NewTextPresenter(render.NewTextRenderer(out(cmd))).Present(cmd.Context(), "", outcome)
			if outcome.Kind == domain.OutcomeError {
				return outcome.Err
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&filterArgs, "filter", "f", nil, "filter as field=value (repeatable)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}
