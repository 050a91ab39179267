package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSearchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /searchdata", handler.SearchData)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{sport}/{playerID}", handler.GetPlayer)
}

func registerProxyRoutes(mux *http.ServeMux, proxy http.Handler) {
	if proxy == nil {
		return
	}
	mux.Handle("POST /search", proxy)
}
