package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/report"
	"trade-journal-go/internal/store"
	"trade-journal-go/internal/upload"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log          *zap.Logger
	store        *store.Store
	service      *journal.Service
	importer     *upload.Importer
	maxUploadLen int64
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, st *store.Store, svc *journal.Service, imp *upload.Importer, maxUploadLen int64) *APIHandler {
	return &APIHandler{
		log:          log,
		store:        st,
		service:      svc,
		importer:     imp,
		maxUploadLen: maxUploadLen,
	}
}

// StatusHandler reports service health.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// failure maps known sentinel errors to client statuses; anything else is
// logged and answered with 500.
func (h *APIHandler) failure(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrEntityInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, journal.ErrQuantityExceedsRemaining):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error("Request failed", zap.String("action", action), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// TradeRequest is the create/update payload for a trade.
type TradeRequest struct {
	Name         string  `json:"name"`
	CreationDate apiDate `json:"creation_date"`
	AccountID    uint    `json:"account_id"`
	SetupID      uint    `json:"setup_id"`
	TypeID       uint    `json:"type_id"`
	MarketID     uint    `json:"market_id"`
	RiskPercent  float64 `json:"risk_percent"`
	GroupRank    float64 `json:"group_rank"`
	ProScore     float64 `json:"pro_score"`
	OneWeekRS    float64 `json:"one_week_rs"`
	OneMonthRS   float64 `json:"one_month_rs"`
}

func (req *TradeRequest) toModel(userID uint) *models.Trade {
	return &models.Trade{
		UserID:       userID,
		Name:         req.Name,
		CreationDate: req.CreationDate.Time,
		AccountID:    req.AccountID,
		SetupID:      req.SetupID,
		TypeID:       req.TypeID,
		MarketID:     req.MarketID,
		RiskPercent:  req.RiskPercent,
		GroupRank:    req.GroupRank,
		ProScore:     req.ProScore,
		OneWeekRS:    req.OneWeekRS,
		OneMonthRS:   req.OneMonthRS,
	}
}

// TradeListResponse carries one page of flattened trade rows.
type TradeListResponse struct {
	Rows  []journal.Row `json:"rows"`
	Total int           `json:"total"`
}

// TradesHandler returns the filtered, sorted, paginated trade list.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TradeRows(r.Context(), userID(r))
	if err != nil {
		h.failure(w, err, "list trades")
		return
	}

	rows = tradeFilter(r).Apply(rows)
	journal.SortRows(rows, r.URL.Query().Get("sort"), r.URL.Query().Get("direction"))
	page, total := journal.Paginate(rows, queryInt(r, "page", "1"), queryInt(r, "limit", "0"))

	writeJSON(w, http.StatusOK, TradeListResponse{Rows: page, Total: total})
}

func tradeFilter(r *http.Request) journal.Filter {
	return journal.Filter{
		Search:     r.URL.Query().Get("search"),
		SetupIDs:   queryIDs(r, "setups"),
		TypeIDs:    queryIDs(r, "types"),
		MarketIDs:  queryIDs(r, "markets"),
		AccountIDs: queryIDs(r, "accounts"),
		Start:      queryDate(r, "start"),
		End:        queryDate(r, "end"),
	}
}

// CreateTradeHandler records a new trade.
func (h *APIHandler) CreateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "trade name is required")
		return
	}

	trade, err := h.store.CreateTrade(r.Context(), req.toModel(userID(r)))
	if err != nil {
		h.failure(w, err, "create trade")
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

// UpdateTradeHandler updates an existing trade.
func (h *APIHandler) UpdateTradeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trade := req.toModel(userID(r))
	trade.ID = id
	updated, err := h.store.UpdateTrade(r.Context(), userID(r), trade)
	if err != nil {
		h.failure(w, err, "update trade")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTradeHandler removes a trade and its transactions.
func (h *APIHandler) DeleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}
	if err := h.store.DeleteTrade(r.Context(), userID(r), id); err != nil {
		h.failure(w, err, "delete trade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenTradesHandler returns trades that still hold quantity.
func (h *APIHandler) OpenTradesHandler(w http.ResponseWriter, r *http.Request) {
	open, err := h.service.OpenTrades(r.Context(), userID(r))
	if err != nil {
		h.failure(w, err, "list open trades")
		return
	}
	writeJSON(w, http.StatusOK, open)
}

// ClosedTradesResponse carries one page of closed-trade rows.
type ClosedTradesResponse struct {
	Rows  []report.ClosedTradeRow `json:"rows"`
	Total int                     `json:"total"`
}

// ClosedTradesHandler returns the filterable closed-trades listing.
func (h *APIHandler) ClosedTradesHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ClosedRows(r.Context(), userID(r), tradeFilter(r))
	if err != nil {
		h.failure(w, err, "list closed trades")
		return
	}

	journal.SortClosedRows(rows, r.URL.Query().Get("sort"), r.URL.Query().Get("direction"))
	page, total := journal.PaginateClosedRows(rows, queryInt(r, "page", "1"), queryInt(r, "limit", "0"))

	writeJSON(w, http.StatusOK, ClosedTradesResponse{Rows: page, Total: total})
}

// BuyRequest is the payload for recording a buy transaction.
type BuyRequest struct {
	Price           float64 `json:"buy_price"`
	Date            apiDate `json:"buy_date"`
	Quantity        float64 `json:"quantity"`
	InitialStop     float64 `json:"initial_stop"`
	StopLossPercent float64 `json:"stop_loss_percent"`
	Brokerage       float64 `json:"buy_brokerage"`
}

// CreateBuyHandler records an entry into a trade.
func (h *APIHandler) CreateBuyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}
	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	buy := &models.BuyTransaction{
		Price:           req.Price,
		Date:            req.Date.Time,
		Quantity:        req.Quantity,
		InitialStop:     req.InitialStop,
		StopLossPercent: req.StopLossPercent,
		Brokerage:       req.Brokerage,
	}
	created, err := h.service.AddBuyTransaction(r.Context(), userID(r), id, buy)
	if err != nil {
		h.failure(w, err, "create buy transaction")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateBuyHandler edits a recorded buy transaction.
func (h *APIHandler) UpdateBuyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	buy := &models.BuyTransaction{
		Price:           req.Price,
		Date:            req.Date.Time,
		Quantity:        req.Quantity,
		InitialStop:     req.InitialStop,
		StopLossPercent: req.StopLossPercent,
		Brokerage:       req.Brokerage,
	}
	buy.ID = id
	updated, err := h.service.UpdateBuyTransaction(r.Context(), userID(r), buy)
	if err != nil {
		h.failure(w, err, "update buy transaction")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SellRequest is the payload for recording a sell transaction.
type SellRequest struct {
	Price     float64 `json:"sell_price"`
	Date      apiDate `json:"sell_date"`
	Quantity  float64 `json:"quantity"`
	Brokerage float64 `json:"sell_brokerage"`
}

// CreateSellHandler records an exit from a trade. Selling more than the
// trade still holds is refused.
func (h *APIHandler) CreateSellHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sell := &models.SellTransaction{
		Price:     req.Price,
		Date:      req.Date.Time,
		Quantity:  req.Quantity,
		Brokerage: req.Brokerage,
	}
	created, err := h.service.AddSellTransaction(r.Context(), userID(r), id, sell)
	if err != nil {
		h.failure(w, err, "create sell transaction")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSellHandler edits a recorded sell transaction.
func (h *APIHandler) UpdateSellHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sell := &models.SellTransaction{
		Price:     req.Price,
		Date:      req.Date.Time,
		Quantity:  req.Quantity,
		Brokerage: req.Brokerage,
	}
	sell.ID = id
	updated, err := h.service.UpdateSellTransaction(r.Context(), userID(r), sell)
	if err != nil {
		h.failure(w, err, "update sell transaction")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ReportHandler runs the aggregation for one granularity, optionally
// bounded by ISO dates on the first buy date.
func (h *APIHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	granularity, err := report.ParseGranularity(r.PathValue("granularity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := h.service.ClosedTrades(r.Context(), userID(r), queryDate(r, "start"), queryDate(r, "end"))
	if err != nil {
		h.failure(w, err, "fetch closed trades")
		return
	}

	rows, err := report.Generate(trades, granularity)
	if err != nil {
		h.failure(w, err, "generate report")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// UploadHandler imports a multipart spreadsheet and returns the batch
// summary. Row-level failures are reported in the summary, not as an
// error status.
func (h *APIHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadLen)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	rows, err := upload.Parse(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.importer.Run(r.Context(), userID(r), rows)
	if err != nil {
		h.failure(w, err, "import spreadsheet")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
