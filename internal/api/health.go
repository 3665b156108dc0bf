// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
)

// probeTimeout bounds a single dependency check.
const probeTimeout = 2 * time.Second

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDependencies holds the injectable dependency checkers for the probes.
type HealthDependencies struct {
	// Database pings the PostgreSQL pool.
	Database Pinger

	// Cache pings the Redis client.
	Cache Pinger
}

// HealthHandler serves the liveness, readiness and ping probes.
type HealthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandler creates the probe handlers.
func NewHealthHandler(deps HealthDependencies, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{dependencies: deps, logger: logger}
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (handler *HealthHandler) check(ctx context.Context, name string, pinger Pinger) checkResult {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	result := checkResult{Name: name, IsOK: true}
	if err := pinger.Ping(probeCtx); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
	}
	return result
}

// Liveness handles GET /health. It always answers 200 while the process runs.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// Readiness handles GET /ready, reporting every configured dependency.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)

	if handler.dependencies.Database != nil {
		results = append(results, handler.check(request.Context(), "postgres", handler.dependencies.Database))
	}
	if handler.dependencies.Cache != nil {
		results = append(results, handler.check(request.Context(), "redis", handler.dependencies.Cache))
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK

	for _, result := range results {
		if !result.IsOK {
			responseStatus = "degraded"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	}})
}

// Ping handles GET /ping: {"status":"ok"} when the database answers, 503 otherwise.
func (handler *HealthHandler) Ping(writer http.ResponseWriter, request *http.Request) {
	if handler.dependencies.Database != nil {
		if result := handler.check(request.Context(), "postgres", handler.dependencies.Database); !result.IsOK {
			respond.JSON(writer, http.StatusServiceUnavailable, map[string]string{constants.FieldStatus: "error"})
			return
		}
	}

	respond.JSON(writer, http.StatusOK, map[string]string{constants.FieldStatus: "ok"})
}
