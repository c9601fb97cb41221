// Package server exposes the journal over HTTP: reference-entity CRUD,
// the trade list and its transactions, period reports, and spreadsheet
// upload.
package server

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Routes builds the API mux. Every endpoint except /api/status sits
// behind the rate limiter and bearer-token authentication.
func (h *APIHandler) Routes(limit float64, burst int) *http.ServeMux {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return rateLimit(limiter, h.authenticate(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", h.StatusHandler)

	for _, api := range h.entityAPIs() {
		mux.HandleFunc("GET /api/"+api.name, guard(h.listEntityHandler(api)))
		mux.HandleFunc("POST /api/"+api.name, guard(h.createEntityHandler(api)))
		mux.HandleFunc("PUT /api/"+api.name+"/{id}", guard(h.updateEntityHandler(api)))
		mux.HandleFunc("DELETE /api/"+api.name+"/{id}", guard(h.deleteEntityHandler(api)))
	}

	mux.HandleFunc("GET /api/trades", guard(h.TradesHandler))
	mux.HandleFunc("POST /api/trades", guard(h.CreateTradeHandler))
	mux.HandleFunc("PUT /api/trades/{id}", guard(h.UpdateTradeHandler))
	mux.HandleFunc("DELETE /api/trades/{id}", guard(h.DeleteTradeHandler))
	mux.HandleFunc("GET /api/trades/open", guard(h.OpenTradesHandler))
	mux.HandleFunc("GET /api/trades/closed", guard(h.ClosedTradesHandler))
	mux.HandleFunc("POST /api/trades/{id}/buys", guard(h.CreateBuyHandler))
	mux.HandleFunc("POST /api/trades/{id}/sells", guard(h.CreateSellHandler))
	mux.HandleFunc("PUT /api/buys/{id}", guard(h.UpdateBuyHandler))
	mux.HandleFunc("PUT /api/sells/{id}", guard(h.UpdateSellHandler))

	mux.HandleFunc("GET /api/reports/{granularity}", guard(h.ReportHandler))
	mux.HandleFunc("POST /api/upload", guard(h.UploadHandler))

	return mux
}
