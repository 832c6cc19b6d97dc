package verify

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
	resp "github.com/jmenichole/TiltCheck-sub005/internal/lib/api/response"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

type HistoryResponse struct {
	resp.Response
	Verifications []model.SessionVerdict `json:"verifications"`
}

type History struct {
	log    *slog.Logger
	ledger *ledger.Ledger
}

func NewHistory(log *slog.Logger, ledgerStore *ledger.Ledger) *History {
	return &History{
		log:    log,
		ledger: ledgerStore,
	}
}

func (h *History) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verify.history.New"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userUUID := chi.URLParam(r, "uuid")

		verifications, err := h.ledger.VerificationHistory(r.Context(), userUUID)
		if err != nil {
			log.Error("failed to load verification history", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to load verification history", http.StatusInternalServerError))

			return
		}

		render.JSON(w, r, HistoryResponse{
			Response:      resp.OK(),
			Verifications: verifications,
		})
	}
}
