package handler

import (
	"net/http"

	"github.com/meu-financeiro/core-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 5. Projeção & Dashboard
// ============================================================

func projectionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/projection")
		defer span.End()

		target := r.URL.Query().Get("target")
		if target == "" {
			writeError(w, http.StatusBadRequest, "target date is required (YYYY-MM-DD)")
			return
		}
		span.SetAttributes(attribute.String("projection.target", target))

		result, err := svc.ProjectBalances(ctx, target)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func dashboardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		// empty month falls back to the current one
		summary, err := svc.GetDashboard(ctx, r.URL.Query().Get("month"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func netWorthHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/networth")
		defer span.End()

		nw, err := svc.GetNetWorth(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, nw)
	}
}
