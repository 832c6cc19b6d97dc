package notify

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

type PendingResponse struct {
	resp.Response
	Notifications []model.PendingNotification `json:"notifications"`
}

type Pending struct {
	log    *slog.Logger
	ledger *ledger.Ledger
}

func NewPending(log *slog.Logger, ledgerStore *ledger.Ledger) *Pending {
	return &Pending{
		log:    log,
		ledger: ledgerStore,
	}
}

func (p *Pending) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.notify.pending.New"

		log := p.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userUUID := chi.URLParam(r, "uuid")

		notifications, err := p.ledger.PendingNotifications(r.Context(), userUUID)
		if err != nil {
			log.Error("failed to load pending notifications", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to load pending notifications", http.StatusInternalServerError))

			return
		}

		render.JSON(w, r, PendingResponse{
			Response:      resp.OK(),
			Notifications: notifications,
		})
	}
}
