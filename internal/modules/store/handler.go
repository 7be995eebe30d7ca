package store

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/georgemunganga/printa-retail/internal/apperror"
	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/georgemunganga/printa-retail/internal/modules/auth"
	"github.com/georgemunganga/printa-retail/internal/modules/cart"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Handler exposes the store over HTTP. Requests act as the user carried by
// their session token; the store itself is guarded by a single mutex.
type Handler struct {
	mu       sync.Mutex
	store    *Store
	auth     auth.Service
	recorder *audit.Recorder
}

// NewHandler serves base. recorder, when non-nil, backs GET /api/v1/audit.
func NewHandler(base *Store, authService auth.Service, recorder *audit.Recorder) *Handler {
	return &Handler{store: base, auth: authService, recorder: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.auth))

		r.Route("/api/v1/inventory", func(r chi.Router) {
			r.Get("/", h.listInventory)
			r.Get("/search", h.searchInventory) // ?q=...
			r.Post("/", h.addItem)
			r.Post("/discount", h.discountAll)
			r.Patch("/{id}/quantity", h.updateQuantity)
			r.Patch("/{id}/discount", h.discountItem)
		})

		r.Get("/api/v1/sales", h.listSales) // ?date=YYYY-MM-DD
		r.Get("/api/v1/sales/revenue", h.revenue)
		r.Post("/api/v1/checkout", h.checkout)

		r.Post("/api/v1/data/save", h.save)
		r.Post("/api/v1/data/load", h.load)

		r.Get("/api/v1/audit", h.auditTrail)
	})
}

type itemView struct {
	*inventory.Item
	DiscountedPrice float64 `json:"discounted_price"`
}

func viewItems(items []*inventory.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, itemView{Item: item, DiscountedPrice: item.DiscountedPrice()})
	}
	return out
}

// session returns the store acting as the request's user. Callers hold h.mu.
func (h *Handler) session(r *http.Request) *Store {
	u, _ := auth.UserFrom(r.Context())
	return h.store.WithUser(u)
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respond(w, http.StatusOK, viewItems(h.session(r).Inventory().Items()))
}

func (h *Handler) searchInventory(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respond(w, http.StatusOK, viewItems(h.session(r).SearchInventory(r.URL.Query().Get("q"))))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64   `json:"item_id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	if err := s.AddItemToInventory(req.ID, req.Name, req.Price, req.Quantity); err != nil {
		fail(w, err)
		return
	}
	item, _ := s.Inventory().FindItem(req.ID)
	respond(w, http.StatusCreated, itemView{Item: item, DiscountedPrice: item.DiscountedPrice()})
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "quantity is required"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	if err := s.UpdateInventoryQuantity(id, *req.Quantity); err != nil {
		fail(w, err)
		return
	}
	item, _ := s.Inventory().FindItem(id)
	respond(w, http.StatusOK, itemView{Item: item, DiscountedPrice: item.DiscountedPrice()})
}

type discountRequest struct {
	Percent *float64 `json:"percent"`
}

func decodeDiscount(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req discountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Percent == nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "percent is required"})
		return 0, false
	}
	return *req.Percent, true
}

func (h *Handler) discountItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	percent, ok := decodeDiscount(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	if err := s.ApplyDiscount(id, percent); err != nil {
		fail(w, err)
		return
	}
	item, _ := s.Inventory().FindItem(id)
	respond(w, http.StatusOK, itemView{Item: item, DiscountedPrice: item.DiscountedPrice()})
}

func (h *Handler) discountAll(w http.ResponseWriter, r *http.Request) {
	percent, ok := decodeDiscount(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	if err := s.ApplyDiscountToAll(percent); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, viewItems(s.Inventory().Items()))
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}
		respond(w, http.StatusOK, nonNil(s.SalesByDate(day)))
		return
	}
	respond(w, http.StatusOK, nonNil(s.History().Sales()))
}

func nonNil(list []sales.Sale) []sales.Sale {
	if list == nil {
		return []sales.Sale{}
	}
	return list
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	respond(w, http.StatusOK, map[string]interface{}{
		"total_revenue": s.TotalRevenue(),
		"sales":         s.History().Len(),
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string      `json:"customer_name"`
		Items        []cart.Line `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.session(r)
	c := cart.New(s.Inventory())
	for _, line := range req.Items {
		if err := c.Add(line.ItemID, line.Quantity); err != nil {
			fail(w, err)
			return
		}
	}
	total, err := s.Checkout(c, req.CustomerName)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"receipt_id":    uuid.New().String(),
		"customer_name": req.CustomerName,
		"items":         c.Lines(),
		"total_cost":    total,
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session(r).Save(r.Context()); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	res, err := h.session(r).Load(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *Handler) auditTrail(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		respond(w, http.StatusOK, []audit.Event{})
		return
	}
	events := h.recorder.Events()
	if events == nil {
		events = []audit.Event{}
	}
	respond(w, http.StatusOK, events)
}

func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "item id must be an integer"})
		return 0, false
	}
	return id, true
}

// fail maps err to a status by its apperror kind.
func fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperror.Kind(err) {
	case apperror.ErrInvalidArgument:
		status = http.StatusBadRequest
	case apperror.ErrPermissionDenied:
		status = http.StatusForbidden
	case apperror.ErrNotFound:
		status = http.StatusNotFound
	case apperror.ErrAlreadyExists:
		status = http.StatusConflict
	case apperror.ErrInsufficientStock:
		status = http.StatusUnprocessableEntity
	default:
		log.WithError(err).Error("store request failed")
	}
	respond(w, status, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
