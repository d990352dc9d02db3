package cli

import (
	"bufio"
	"fmt"
	"io"
	"listing-search-service/internal/adapters/presenter"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/usecase"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const browseHelp = `Comandos:
  set <campo> <valor>   cambia un filtro (precio_min, barrio, ambientes, ...)
  unset <campo>         quita un filtro
  search                busca de nuevo desde la página 1
  next | prev           página siguiente / anterior
  page <n>              va a la página n
  clear                 limpia todos los filtros
  filters               muestra los filtros actuales
  quit                  sale`

// syncWriter сериализует вывод: результат отложенного поиска печатается из другой горутины
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newBrowseCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive search session reading commands from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &syncWriter{w: out(cmd)}
			textPresenter := presenter.NewTextPresenter(render.NewTextRenderer(w))

			session := usecase.NewSearchSession(
				uuid.New().String(),
				usecase.SearchSessionConfig{PageSize: rt.pageSize, Debounce: rt.debounce},
				rt.api(), textPresenter, nil, nil,
			)
			defer session.Close()

			fmt.Fprintln(w, browseHelp)
			session.SearchNow(cmd.Context())

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				quit, err := runBrowseLine(cmd, session, w, scanner.Text())
				if err != nil {
					fmt.Fprintf(w, "error: %v\n", err)
				}
				if quit {
					return nil
				}
			}
			return scanner.Err()
		},
	}
}

func runBrowseLine(cmd *cobra.Command, session *usecase.SearchSession, w io.Writer, line string) (bool, error) {
	ctx := cmd.Context()
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(w, browseHelp)
	case "set", "unset":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: %s <campo> [valor]", parts[0])
		}
		field, err := domain.ParseFilterField(parts[1])
		if err != nil {
			return false, err
		}
		value := ""
		if parts[0] == "set" {
			value = strings.Join(parts[2:], " ")
		}
		return false, session.ChangeFilter(ctx, field, value)
	case "search":
		session.SearchNow(ctx)
	case "next":
		if _, moved := session.NextPage(ctx); !moved {
			fmt.Fprintln(w, "No hay página siguiente.")
		}
	case "prev":
		if _, moved := session.PrevPage(ctx); !moved {
			fmt.Fprintln(w, "Ya estás en la primera página.")
		}
	case "page":
		if len(parts) != 2 {
			return false, fmt.Errorf("usage: page <n>")
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil || page < 1 {
			return false, fmt.Errorf("invalid page %q", parts[1])
		}
		session.GoToPage(ctx, page)
	case "clear":
		session.ClearFilters(ctx)
	case "filters":
		filters := session.Filters()
		for _, field := range domain.FilterFields() {
			if value, ok := filters.Value(field); ok {
				fmt.Fprintf(w, "%s=%s\n", field, value)
			}
		}
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", parts[0])
	}
	return false, nil
}
