package verify

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
	"github.com/jmenichole/TiltCheck-sub005/internal/fairness"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/event"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/job"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
	resp "github.com/jmenichole/TiltCheck-sub005/internal/lib/api/response"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

type Request struct {
	UserUUID  string       `json:"user_uuid" validate:"required"`
	SessionID string       `json:"session_id" validate:"required"`
	Bets      []BetRequest `json:"bets" validate:"required,min=1,dive"`
}

type BetRequest struct {
	BetID          string            `json:"bet_id" validate:"required"`
	ServerSeed     string            `json:"server_seed" validate:"required"`
	ServerSeedHash string            `json:"server_seed_hash" validate:"required"`
	ClientSeed     string            `json:"client_seed" validate:"required"`
	Nonce          uint64            `json:"nonce"`
	GameType       string            `json:"game_type" validate:"required,oneof=dice crash slots other"`
	ClaimedResult  model.ResultValue `json:"claimed_result"`
}

type Response struct {
	resp.Response
	Verdict *model.SessionVerdict `json:"verdict,omitempty"`
}

type VerifySeeds struct {
	log       *slog.Logger
	validator *validator.Validate
	sessions  *fairness.SessionVerifier
	ledger    *ledger.Ledger
	event     *event.VerdictPublisher
}

func NewVerifySeeds(
	log *slog.Logger,
	sessions *fairness.SessionVerifier,
	ledgerStore *ledger.Ledger,
	eventClient *event.VerdictPublisher) *VerifySeeds {
	return &VerifySeeds{
		log:       log,
		validator: validator.New(),
		sessions:  sessions,
		ledger:    ledgerStore,
		event:     eventClient,
	}
}

func (v *VerifySeeds) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verify.verify_seeds.New"

		var (
			err     error
			req     Request
			verdict *model.SessionVerdict
		)

		log := v.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		if err = v.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		casinoID := chi.URLParam(r, "casinoId")

		bets := make([]model.SeedBet, len(req.Bets))
		for i, bet := range req.Bets {
			bets[i] = model.SeedBet{
				BetID:          bet.BetID,
				ServerSeed:     bet.ServerSeed,
				ServerSeedHash: bet.ServerSeedHash,
				ClientSeed:     bet.ClientSeed,
				Nonce:          bet.Nonce,
				GameType:       config.GameType(bet.GameType),
				ClaimedResult:  bet.ClaimedResult,
			}
		}

		verdict, err = v.sessions.VerifySession(r.Context(), req.UserUUID, casinoID, req.SessionID, bets)
		if err != nil {
			if errors.Is(err, fairness.ErrEmptyBatch) {
				render.JSON(w, r, resp.Error("bet batch is empty", http.StatusBadRequest))

				return
			}

			log.Error("failed to verify session", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to verify session", http.StatusInternalServerError))

			return
		}

		if err = v.ledger.RecordVerdict(r.Context(), *verdict); err != nil {
			log.Error("failed to record verdict", sl.Err(err))

			// The verdict was computed correctly but is not durably
			// recorded; the caller has to know either way.
			render.JSON(w, r, resp.Error("verdict computed but not recorded", http.StatusInternalServerError))

			return
		}

		log.Info("verdict recorded",
			slog.String("verification_id", verdict.VerificationID),
			slog.String("classification", string(verdict.Classification)))

		if v.event != nil {
			job.Dispatch(&job.SendEventJob{
				EventMessage: event.NewSessionVerdictMessage(verdict),
				Event:        v.event,
			}, 0)
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Verdict:  verdict,
		})
	}
}
