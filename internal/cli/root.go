package cli

import (
	"io"
	"listing-search-service/internal/adapters/cache"
	"listing-search-service/internal/constants"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/usecase"
	"time"

	"github.com/spf13/cobra"
)

// ClientFactory создает клиента API объявлений по адресу из флага --api-url
type ClientFactory func(apiURL string, timeout time.Duration) port.ListingsAPIPort

// Options - значения по умолчанию для глобальных флагов
type Options struct {
	APIURL   string
	Timeout  time.Duration
	PageSize int
	Debounce time.Duration
}

type runtime struct {
	apiURL   string
	timeout  time.Duration
	pageSize int
	debounce time.Duration
	factory  ClientFactory
}

func (r *runtime) api() port.ListingsAPIPort {
	return r.factory(r.apiURL, r.timeout)
}

func (r *runtime) referenceData(api port.ListingsAPIPort) *usecase.GetReferenceDataUseCase {
	refCache := usecase.NewReferenceCache(cache.NewMemoryStore(), constants.DefaultReferenceCacheTTL, nil)
	return usecase.NewGetReferenceDataUseCase(api, refCache)
}

// NewRootCommand собирает дерево команд listings-cli
func NewRootCommand(opts Options, factory ClientFactory) *cobra.Command {
	rt := &runtime{factory: factory}

	root := &cobra.Command{
		Use:           "listings-cli",
		Short:         "Búsqueda de propiedades desde la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.apiURL, "api-url", opts.APIURL, "base URL of the listings API")
	flags.DurationVar(&rt.timeout, "timeout", opts.Timeout, "listings API request timeout")
	flags.IntVar(&rt.pageSize, "page-size", opts.PageSize, "results per page")
	flags.DurationVar(&rt.debounce, "debounce", opts.Debounce, "pause before searching after a price or surface change")

	root.AddCommand(
		newSearchCommand(rt),
		newBrowseCommand(rt),
		newStatsCommand(rt),
		newNeighborhoodsCommand(rt),
		newSourcesCommand(rt),
		newShowCommand(rt),
		newFindCommand(rt),
	)

	return root
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
