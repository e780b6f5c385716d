package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// 4. Recorrências
// ============================================================

func listRecurringHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recurring")
		defer span.End()

		rules, err := svc.ListRecurring(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"recurring": rules})
	}
}

func createRecurringHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/recurring")
		defer span.End()

		var rt domain.RecurringTransaction
		if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.CreateRecurring(ctx, &rt)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateRecurringHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/recurring/{recurringId}")
		defer span.End()

		var rt domain.RecurringTransaction
		if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rt.ID = chi.URLParam(r, "recurringId")

		updated, err := svc.UpdateRecurring(ctx, &rt)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteRecurringHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/recurring/{recurringId}")
		defer span.End()

		if err := svc.DeleteRecurring(ctx, chi.URLParam(r, "recurringId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func reconcileRecurringHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/recurring/reconcile")
		defer span.End()

		posted, err := svc.ReconcileRecurring(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"posted": posted})
	}
}
