package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"keel-relay/internal/keel"
	"keel-relay/internal/relay"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type KeelHandlers struct {
	svc    *relay.Service
	logger zerolog.Logger
}

func NewKeelHandlers(svc *relay.Service, logger zerolog.Logger) *KeelHandlers {
	return &KeelHandlers{svc: svc, logger: logger}
}

// Notify answers with an empty body: 400 for an undecodable payload, 500 when
// the notification could not be handed to Discord, 200 otherwise.
func (h *KeelHandlers) Notify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := chimw.GetReqID(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		payload, err := decodePayload(r.Body)
		if err != nil {
			metricKeelBadRequestTotal.Add(1)
			h.logger.Warn().Err(err).Str("request_id", requestID).Msg("invalid keel payload")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.logger.Debug().
			Str("request_id", requestID).
			Str("keel_message", payload.Message).
			Str("created_at", payload.CreatedAt).
			Msg("keel notification received")

		res, err := h.svc.Relay(r.Context(), payload)
		if err != nil {
			kind := relay.Kind(err)
			metricKeelRelayErrors.Add(string(kind), 1)
			ev := h.logger.Error().
				Err(err).
				Str("kind", string(kind)).
				Str("request_id", requestID).
				Str("delivery_id", res.DeliveryID)
			if status := relay.UpstreamStatus(err); status != 0 {
				ev = ev.Int("upstream_status", status)
			}
			ev.Msg("keel notification relay failed")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		h.logger.Info().
			Str("request_id", requestID).
			Str("delivery_id", res.DeliveryID).
			Str("title", res.Embed.Title).
			Int("fields", len(res.Embed.Fields)).
			Msg("keel notification relayed")
		w.WriteHeader(http.StatusOK)
	}
}

var errTrailingData = errors.New("trailing data after payload")

// decodePayload accepts exactly one JSON value; anything after it makes the
// body invalid.
func decodePayload(body io.Reader) (keel.Payload, error) {
	dec := json.NewDecoder(body)
	var payload keel.Payload
	if err := dec.Decode(&payload); err != nil {
		return keel.Payload{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return keel.Payload{}, err
	}
	return payload, nil
}
