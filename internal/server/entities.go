package server

import (
	"context"
	"encoding/json"
	"net/http"
)

// EntityRequest is the shared create/update payload for reference
// entities. SetupID only applies to trade types.
type EntityRequest struct {
	Name    string `json:"name"`
	SetupID uint   `json:"setup_id"`
}

// entityAPI is the capability set behind one reference-entity resource.
// The four entity types differ only in these functions, so one handler
// set serves them all.
type entityAPI struct {
	name   string
	list   func(ctx context.Context, userID uint) (any, error)
	create func(ctx context.Context, userID uint, req EntityRequest) (any, error)
	update func(ctx context.Context, userID, id uint, req EntityRequest) (any, error)
	delete func(ctx context.Context, userID, id uint) error
}

func (h *APIHandler) entityAPIs() []entityAPI {
	return []entityAPI{
		{
			name: "markets",
			list: func(ctx context.Context, userID uint) (any, error) {
				return h.store.ListMarkets(ctx, userID)
			},
			create: func(ctx context.Context, userID uint, req EntityRequest) (any, error) {
				return h.store.CreateMarket(ctx, userID, req.Name)
			},
			update: func(ctx context.Context, userID, id uint, req EntityRequest) (any, error) {
				return h.store.UpdateMarket(ctx, userID, id, req.Name)
			},
			delete: h.store.DeleteMarket,
		},
		{
			name: "setups",
			list: func(ctx context.Context, userID uint) (any, error) {
				return h.store.ListSetups(ctx, userID)
			},
			create: func(ctx context.Context, userID uint, req EntityRequest) (any, error) {
				return h.store.CreateSetup(ctx, userID, req.Name)
			},
			update: func(ctx context.Context, userID, id uint, req EntityRequest) (any, error) {
				return h.store.UpdateSetup(ctx, userID, id, req.Name)
			},
			delete: h.store.DeleteSetup,
		},
		{
			name: "types",
			list: func(ctx context.Context, userID uint) (any, error) {
				return h.store.ListTradeTypes(ctx, userID)
			},
			create: func(ctx context.Context, userID uint, req EntityRequest) (any, error) {
				return h.store.CreateTradeType(ctx, userID, req.Name, req.SetupID)
			},
			update: func(ctx context.Context, userID, id uint, req EntityRequest) (any, error) {
				return h.store.UpdateTradeType(ctx, userID, id, req.Name, req.SetupID)
			},
			delete: h.store.DeleteTradeType,
		},
		{
			name: "accounts",
			list: func(ctx context.Context, userID uint) (any, error) {
				return h.store.ListAccounts(ctx, userID)
			},
			create: func(ctx context.Context, userID uint, req EntityRequest) (any, error) {
				return h.store.CreateAccount(ctx, userID, req.Name)
			},
			update: func(ctx context.Context, userID, id uint, req EntityRequest) (any, error) {
				return h.store.UpdateAccount(ctx, userID, id, req.Name)
			},
			delete: h.store.DeleteAccount,
		},
	}
}

func (h *APIHandler) listEntityHandler(api entityAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := api.list(r.Context(), userID(r))
		if err != nil {
			h.failure(w, err, "list "+api.name)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (h *APIHandler) createEntityHandler(api entityAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EntityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		item, err := api.create(r.Context(), userID(r), req)
		if err != nil {
			h.failure(w, err, "create "+api.name)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func (h *APIHandler) updateEntityHandler(api entityAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		var req EntityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		item, err := api.update(r.Context(), userID(r), id, req)
		if err != nil {
			h.failure(w, err, "update "+api.name)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (h *APIHandler) deleteEntityHandler(api entityAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := api.delete(r.Context(), userID(r), id); err != nil {
			h.failure(w, err, "delete "+api.name)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
