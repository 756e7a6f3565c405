// Package api exposes persisted benchmark runs over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/arturpietrzak/customer-service-llm/internal/api/middleware"
	"github.com/arturpietrzak/customer-service-llm/internal/store"
)

type Handler struct {
	reader store.Reader
	logger *zerolog.Logger
}

func NewHandler(reader store.Reader, logger *zerolog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok", Time: time.Now()})
}

// GET /api/v1/runs
func (h *Handler) ListRuns(req *restful.Request, resp *restful.Response) {
	runs, err := h.reader.ListRuns(req.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list runs")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, runs)
}

// GET /api/v1/runs/{run_id}
func (h *Handler) GetRun(req *restful.Request, resp *restful.Response) {
	runID := req.PathParameter("run_id")

	run, err := h.reader.GetRun(req.Request.Context(), runID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("run_id", runID).Msg("Failed to load run")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, run)
}

// GET /api/v1/runs/{run_id}/records/{model_id}/{scenario_id}
func (h *Handler) GetRecord(req *restful.Request, resp *restful.Response) {
	runID := req.PathParameter("run_id")
	modelID := req.PathParameter("model_id")
	scenarioID := req.PathParameter("scenario_id")

	record, err := h.reader.GetRecord(req.Request.Context(), runID, modelID, scenarioID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("run_id", runID).Msg("Failed to load record")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, record)
}
