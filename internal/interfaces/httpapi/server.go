package httpapi

import (
	"net/http"

	"github.com/turugol/quiniela/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerCatalogRoutes(mux, handler)
	registerPoolRoutes(mux, handler, verifier)
	registerDraftRoutes(mux, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
