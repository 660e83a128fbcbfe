package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/vessel-atlas/pkg/adapters"
	"github.com/de-tools/vessel-atlas/pkg/export"
	"github.com/de-tools/vessel-atlas/pkg/models/api"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/services/analytics"
	reportsvc "github.com/de-tools/vessel-atlas/pkg/services/report"
)

// Directory lists the vessels available for selection.
type Directory interface {
	ListVesselNames(ctx context.Context) ([]string, error)
}

// Generator builds a report set for a vessel selection.
type Generator interface {
	BuildReportSet(ctx context.Context, vessels []string, periodMonths int) (*domain.ReportSet, error)
}

// RendererSet maps an export format to its renderer.
type RendererSet map[domain.ExportFormat]export.Renderer

type Handler struct {
	directory Directory
	generator Generator
	renderers RendererSet
}

func NewHandler(directory Directory, generator Generator, renderers RendererSet) *Handler {
	return &Handler{
		directory: directory,
		generator: generator,
		renderers: renderers,
	}
}

func (h *Handler) ListVessels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	names, err := h.directory.ListVesselNames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list vessels")
		writeError(w, http.StatusBadGateway, "vessel directory unavailable")
		return
	}

	response := make([]api.Vessel, 0, len(names))
	for _, name := range names {
		response = append(response, api.Vessel{Name: name})
	}

	writeJSON(ctx, w, response)
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	set, ok := h.buildSet(w, r)
	if !ok {
		return
	}

	writeJSON(ctx, w, adapters.MapReportSetDomainToApi(set))
}

func (h *Handler) SummarizeReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	set, ok := h.buildSet(w, r)
	if !ok {
		return
	}

	writeJSON(ctx, w, adapters.MapSummaryDomainToApi(analytics.Summarize(set)))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	format := domain.ExportFormat(chi.URLParam(r, "format"))
	renderer, ok := h.renderers[format]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	set, ok := h.buildSet(w, r)
	if !ok {
		return
	}

	artifact, err := renderer.Render(set)
	if err != nil {
		logger.Error().Err(err).Str("format", string(format)).Msg("failed to render artifact")
		switch {
		case errors.Is(err, export.ErrTemplateMissing), errors.Is(err, export.ErrTemplateMalformed):
			writeError(w, http.StatusInternalServerError, "export template unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to render report")
		}
		return
	}

	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	if _, err := w.Write(artifact.Content); err != nil {
		logger.Error().Err(err).Msg("failed to write artifact")
	}
}

// buildSet decodes the generation request and runs it, writing the
// mapped error response itself when anything fails.
func (h *Handler) buildSet(w http.ResponseWriter, r *http.Request) (*domain.ReportSet, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	set, err := h.generator.BuildReportSet(ctx, req.Vessels, req.PeriodMonths)
	if err != nil {
		logger.Error().Err(err).Int("vessels", len(req.Vessels)).Msg("failed to build report set")
		switch {
		case errors.Is(err, reportsvc.ErrEmptySelection),
			errors.Is(err, reportsvc.ErrInvalidPeriod),
			errors.Is(err, reportsvc.ErrSelectionTooLarge):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, reportsvc.ErrSourceUnavailable):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to generate report")
		}
		return nil, false
	}
	return set, true
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
