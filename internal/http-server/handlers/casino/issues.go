package casino

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
	resp "github.com/jmenichole/TiltCheck-sub005/internal/lib/api/response"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

type IssuesResponse struct {
	resp.Response
	Summary *model.CasinoIssueSummary `json:"summary,omitempty"`
}

// Issues serves the per-casino issue summary. Summaries change slowly and
// are read by every dashboard poll, so they sit behind a short TTL cache.
type Issues struct {
	log    *slog.Logger
	ledger *ledger.Ledger
	cache  *cache.Cache
}

func NewIssues(log *slog.Logger, ledgerStore *ledger.Ledger) *Issues {
	return &Issues{
		log:    log,
		ledger: ledgerStore,
		cache:  cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (i *Issues) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.casino.issues.New"

		log := i.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		casinoID := chi.URLParam(r, "casinoId")

		if cached, found := i.cache.Get(casinoID); found {
			render.JSON(w, r, IssuesResponse{
				Response: resp.OK(),
				Summary:  cached.(*model.CasinoIssueSummary),
			})

			return
		}

		summary, err := i.ledger.Summary(r.Context(), casinoID)
		if err != nil {
			log.Error("failed to load casino issue summary", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to load casino issue summary", http.StatusInternalServerError))

			return
		}

		i.cache.Set(casinoID, summary, cache.DefaultExpiration)

		render.JSON(w, r, IssuesResponse{
			Response: resp.OK(),
			Summary:  summary,
		})
	}
}
