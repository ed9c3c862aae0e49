package middleware

import "net/http"

// Chain wraps h so the middlewares run in the order given.
//
//	handler := Chain(mux,
//	    Config(cfg),     // executes first
//	    NonceMiddleware, // executes second
//	    RequestLogging,  // executes third
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	// Wrap in reverse so the first middleware ends up outermost
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
