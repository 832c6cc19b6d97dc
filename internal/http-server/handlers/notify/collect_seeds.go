package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/fairness"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/event"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/job"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
	resp "github.com/jmenichole/TiltCheck-sub005/internal/lib/api/response"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

// Request is what the external RTP deviation detector posts when it decides
// a user should collect seed material. Severity is the detector's own
// classification and is passed through, not recomputed.
type Request struct {
	UserUUID       string              `json:"user_uuid" validate:"required"`
	CasinoID       string              `json:"casino_id" validate:"required"`
	CasinoName     string              `json:"casino_name" validate:"required"`
	SessionID      string              `json:"session_id" validate:"required"`
	Deviation      float64             `json:"deviation"`
	Severity       string              `json:"severity" validate:"required,oneof=minor moderate major critical"`
	SuspiciousBets []SuspiciousBetItem `json:"suspicious_bets" validate:"dive"`
}

type SuspiciousBetItem struct {
	BetID  string `json:"bet_id" validate:"required"`
	Reason string `json:"reason"`
}

type Response struct {
	resp.Response
	Notification *model.PendingNotification `json:"notification,omitempty"`
}

type CollectSeeds struct {
	log       *slog.Logger
	validator *validator.Validate
	composer  *fairness.NotificationComposer
	ledger    *ledger.Ledger
	event     *event.VerdictPublisher
}

func NewCollectSeeds(
	log *slog.Logger,
	composer *fairness.NotificationComposer,
	ledgerStore *ledger.Ledger,
	eventClient *event.VerdictPublisher) *CollectSeeds {
	return &CollectSeeds{
		log:       log,
		validator: validator.New(),
		composer:  composer,
		ledger:    ledgerStore,
		event:     eventClient,
	}
}

func (c *CollectSeeds) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.notify.collect_seeds.New"

		var (
			err error
			req Request
		)

		log := c.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		if err = c.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		suspiciousBets := make([]model.SuspiciousBetRef, len(req.SuspiciousBets))
		for i, bet := range req.SuspiciousBets {
			suspiciousBets[i] = model.SuspiciousBetRef{
				BetID:  bet.BetID,
				Reason: bet.Reason,
			}
		}

		notification := c.composer.Compose(fairness.MismatchData{
			UserID:         req.UserUUID,
			CasinoID:       req.CasinoID,
			CasinoName:     req.CasinoName,
			SessionID:      req.SessionID,
			Deviation:      req.Deviation,
			Severity:       req.Severity,
			SuspiciousBets: suspiciousBets,
		})

		if err = c.ledger.RecordNotification(r.Context(), notification); err != nil {
			log.Error("failed to record notification", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to record notification", http.StatusInternalServerError))

			return
		}

		log.Info("seed collection notification issued",
			slog.String("notification_id", notification.NotificationID),
			slog.String("user_id", req.UserUUID),
			slog.String("casino_id", req.CasinoID))

		if c.event != nil {
			job.Dispatch(&job.SendEventJob{
				EventMessage: event.NewNotificationMessage(&notification),
				Event:        c.event,
			}, 0)
		}

		render.JSON(w, r, Response{
			Response:     resp.OK(),
			Notification: &notification,
		})
	}
}
