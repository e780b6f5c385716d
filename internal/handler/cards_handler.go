package handler

import (
	"encoding/json"
	"net/http"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 3. Cartões de Crédito & Faturas
// ============================================================

func listCardsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cards")
		defer span.End()

		cards, err := svc.ListCreditCards(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}

func getCardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cards/{cardId}")
		defer span.End()

		card, err := svc.GetCreditCard(ctx, chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func createCardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/cards")
		defer span.End()

		var card domain.CreditCard
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.CreateCreditCard(ctx, &card)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateCardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/cards/{cardId}")
		defer span.End()

		var card domain.CreditCard
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		card.ID = chi.URLParam(r, "cardId")

		updated, err := svc.UpdateCreditCard(ctx, &card)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/cards/{cardId}")
		defer span.End()

		if err := svc.DeleteCreditCard(ctx, chi.URLParam(r, "cardId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func cardLimitHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cards/{cardId}/limit")
		defer span.End()

		status, err := svc.GetCardLimit(ctx, chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func statementMonthsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cards/{cardId}/statements")
		defer span.End()

		months, err := svc.GetStatementMonths(ctx, chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"months": months})
	}
}

func getStatementHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/cards/{cardId}/statements/{month}")
		defer span.End()

		cardID := chi.URLParam(r, "cardId")
		month := chi.URLParam(r, "month")
		span.SetAttributes(attribute.String("card.id", cardID), attribute.String("statement.month", month))

		statement, err := svc.GetStatement(ctx, cardID, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, statement)
	}
}

func payStatementHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/cards/{cardId}/statements/{month}/pay")
		defer span.End()

		payment, err := svc.PayStatement(ctx, chi.URLParam(r, "cardId"), chi.URLParam(r, "month"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	}
}

// ============================================================
// Lançamentos no cartão
// ============================================================

func listCardTransactionsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/card-transactions")
		defer span.End()

		txs, err := svc.ListCardTransactions(ctx, r.URL.Query().Get("card_id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
	}
}

func createCardChargeHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/card-transactions")
		defer span.End()

		var req domain.CardChargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.CreateCardCharge(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"transactions": created})
	}
}

func updateCardTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/card-transactions/{chargeId}")
		defer span.End()

		var tx domain.CreditCardTransaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tx.ID = chi.URLParam(r, "chargeId")

		updated, err := svc.UpdateCardTransaction(ctx, &tx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCardTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/card-transactions/{chargeId}")
		defer span.End()

		if err := svc.DeleteCardTransaction(ctx, chi.URLParam(r, "chargeId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
