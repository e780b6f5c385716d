package handler

import (
	"net/http"

	"github.com/meu-financeiro/core-api/internal/infra/observability"
	"github.com/meu-financeiro/core-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.FinanceService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. 🏦 Contas
		// =============================================
		r.Get("/accounts", listAccountsHandler(svc, logger))
		r.Post("/accounts", createAccountHandler(svc, logger))
		r.Get("/accounts/balances", accountBalancesHandler(svc, logger))
		r.Get("/accounts/{accountId}", getAccountHandler(svc, logger))
		r.Put("/accounts/{accountId}", updateAccountHandler(svc, logger))
		r.Delete("/accounts/{accountId}", deleteAccountHandler(svc, logger))

		// =============================================
		// 2. 💰 Transações & Transferências
		// =============================================
		r.Get("/transactions", listTransactionsHandler(svc, logger))
		r.Post("/transactions", createTransactionHandler(svc, logger))
		r.Put("/transactions/{transactionId}", updateTransactionHandler(svc, logger))
		r.Delete("/transactions/{transactionId}", deleteTransactionHandler(svc, logger))
		r.Post("/transfers", transferHandler(svc, logger))

		// =============================================
		// 3. 💳 Cartões de Crédito & Faturas
		// =============================================
		r.Get("/cards", listCardsHandler(svc, logger))
		r.Post("/cards", createCardHandler(svc, logger))
		r.Get("/cards/{cardId}", getCardHandler(svc, logger))
		r.Put("/cards/{cardId}", updateCardHandler(svc, logger))
		r.Delete("/cards/{cardId}", deleteCardHandler(svc, logger))
		r.Get("/cards/{cardId}/limit", cardLimitHandler(svc, logger))
		r.Get("/cards/{cardId}/statements", statementMonthsHandler(svc, logger))
		r.Get("/cards/{cardId}/statements/{month}", getStatementHandler(svc, logger))
		r.Post("/cards/{cardId}/statements/{month}/pay", payStatementHandler(svc, logger))

		r.Get("/card-transactions", listCardTransactionsHandler(svc, logger))
		r.Post("/card-transactions", createCardChargeHandler(svc, logger))
		r.Put("/card-transactions/{chargeId}", updateCardTransactionHandler(svc, logger))
		r.Delete("/card-transactions/{chargeId}", deleteCardTransactionHandler(svc, logger))

		// =============================================
		// 4. 🔁 Recorrências
		// =============================================
		r.Get("/recurring", listRecurringHandler(svc, logger))
		r.Post("/recurring", createRecurringHandler(svc, logger))
		r.Put("/recurring/{recurringId}", updateRecurringHandler(svc, logger))
		r.Delete("/recurring/{recurringId}", deleteRecurringHandler(svc, logger))
		r.Post("/recurring/reconcile", reconcileRecurringHandler(svc, logger))

		// =============================================
		// 5. 📈 Projeção & Dashboard
		// =============================================
		r.Get("/projection", projectionHandler(svc, logger))
		r.Get("/dashboard", dashboardHandler(svc, logger))
		r.Get("/networth", netWorthHandler(svc, logger))

		// =============================================
		// 6. 🧾 Dívidas & Metas
		// =============================================
		r.Get("/debts", listDebtsHandler(svc, logger))
		r.Post("/debts", createDebtHandler(svc, logger))
		r.Put("/debts/{debtId}", updateDebtHandler(svc, logger))
		r.Delete("/debts/{debtId}", deleteDebtHandler(svc, logger))
		r.Post("/debts/{debtId}/pay", payDebtHandler(svc, logger))

		r.Get("/goals", listGoalsHandler(svc, logger))
		r.Post("/goals", createGoalHandler(svc, logger))
		r.Put("/goals/{goalId}", updateGoalHandler(svc, logger))
		r.Delete("/goals/{goalId}", deleteGoalHandler(svc, logger))
		r.Post("/goals/{goalId}/contribute", contributeGoalHandler(svc, logger))

		// =============================================
		// 7. 🗂 Cadastros auxiliares
		// =============================================
		r.Get("/people", listPeopleHandler(svc, logger))
		r.Post("/people", createPersonHandler(svc, logger))
		r.Delete("/people/{personId}", deletePersonHandler(svc, logger))

		r.Get("/categories", listCategoriesHandler(svc, logger))
		r.Post("/categories", createCategoryHandler(svc, logger))
		r.Delete("/categories/{categoryId}", deleteCategoryHandler(svc, logger))

		r.Get("/cost-centers", listCostCentersHandler(svc, logger))
		r.Post("/cost-centers", createCostCenterHandler(svc, logger))
		r.Delete("/cost-centers/{costCenterId}", deleteCostCenterHandler(svc, logger))

		r.Get("/investments", listInvestmentsHandler(svc, logger))
		r.Post("/investments", createInvestmentHandler(svc, logger))
		r.Put("/investments/{investmentId}", updateInvestmentHandler(svc, logger))
		r.Delete("/investments/{investmentId}", deleteInvestmentHandler(svc, logger))

		// =============================================
		// 8. 📊 Métricas
		// =============================================
		r.Get("/metrics/engine", engineMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Health
// ============================================================

func healthzHandler(svc *service.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		if _, err := svc.ListAccounts(r.Context()); err != nil {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func engineMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetEngineSnapshot())
	}
}
