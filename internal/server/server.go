// Package server exposes the installment-plan engine over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/installment-plan/internal/config"
	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/output"
	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/iwvelando/installment-plan/pkg/schedule"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	planner       *plans.Planner
	maxUploadSize int64
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the plan API. A nil
// cfg uses the server defaults.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		planner:       plans.NewPlanner(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		now:           time.Now,
	}
	return newRouter(h, cfg.AllowedOrigins)
}

func newRouter(h *handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/models", h.handleModels)

		r.Route("/plans", func(r chi.Router) {
			r.Post("/validate", h.handleValidate)
			r.Post("/calculate", h.handleCalculate)
			r.Post("/upload", h.handleUpload)
		})
	})

	return r
}

// requestLogger logs one line per request through zap.
func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("request served",
			zap.String("op", "server.requestLogger"),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type planResponse struct {
	Name       string             `json:"name,omitempty"`
	Model      plans.Model        `json:"model"`
	Violations []string           `json:"violations"`
	Result     *plans.Result      `json:"result,omitempty"`
	Summary    string             `json:"summary,omitempty"`
	Schedule   []schedule.Payment `json:"schedule,omitempty"`
}

type uploadResponse struct {
	Outcomes   []plans.Outcome `json:"outcomes"`
	Summaries  []string        `json:"summaries"`
	Warnings   []string        `json:"warnings,omitempty"`
	CSV        string          `json:"csv"`
	ResultYAML string          `json:"resultYaml"`
	Duration   string          `json:"duration"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, plans.Catalogue())
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidate"

	plan, calc, ok := h.decodePlan(w, r, op)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, planResponse{
		Name:       plan.Name,
		Model:      calc.Model(),
		Violations: nonNil(calc.Validate()),
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	plan, calc, ok := h.decodePlan(w, r, op)
	if !ok {
		return
	}

	outcome := h.planner.Run(plan.Name, calc)
	if outcome.Failed() {
		h.respondErrorWithOp(w, statusForError(outcome.Err), outcome.Error, op)
		return
	}

	h.writeJSON(w, http.StatusOK, planResponse{
		Name:       plan.Name,
		Model:      outcome.Model,
		Violations: nonNil(outcome.Violations),
		Result:     outcome.Result,
		Summary:    output.Summary(*outcome.Result),
		Schedule:   schedule.Build(*outcome.Result),
	})
}

// decodePlan reads a JSON plan request and converts it into a calculator.
// It writes the error response itself and reports false on failure.
func (h *handler) decodePlan(w http.ResponseWriter, r *http.Request, op string) (config.Plan, plans.Calculator, bool) {
	var plan config.Plan

	if r.ContentLength > h.maxUploadSize {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return plan, nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&plan); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return plan, nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode plan: %v", err), op)
		return plan, nil, false
	}

	calc, err := plan.ToCalculator(h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return plan, nil, false
	}
	return plan, calc, true
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"

	start := time.Now()
	if r.ContentLength > h.maxUploadSize {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing plan file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read plan file: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	named, err := cfg.Calculators(h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	outcomes := h.planner.RunAll(named)

	summaries := make([]string, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.Result != nil {
			summaries[i] = output.Summary(*outcome.Result)
		}
	}

	resultYAML, err := yaml.Marshal(outcomes)
	if err != nil {
		h.logger.Warn("failed to marshal outcomes as YAML",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)
	h.logger.Info("plan file computed",
		zap.String("op", op),
		zap.Int("plans", len(outcomes)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, uploadResponse{
		Outcomes:   outcomes,
		Summaries:  summaries,
		Warnings:   warnings,
		CSV:        output.CsvString(outcomes),
		ResultYAML: string(resultYAML),
		Duration:   elapsed.String(),
	})
}

// statusForError maps calculator errors to HTTP statuses. Input the
// engine refuses is the caller's fault; anything else is ours.
func statusForError(err error) int {
	switch {
	case errors.Is(err, plans.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, plans.ErrComputationOverflow):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func nonNil(violations []string) []string {
	if violations == nil {
		return []string{}
	}
	return violations
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
