package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type ProductsHandler struct {
	browser port.CatalogBrowser
	form    *service.FormController
	editor  port.CatalogEditor
	intent  *service.EditIntent
}

func RegisterProducts(
	mux *http.ServeMux,
	browser port.CatalogBrowser,
	editor port.CatalogEditor,
	sessions port.Sessions,
) {
	h := ProductsHandler{
		browser: browser,
		form:    service.NewFormController(editor),
		editor:  editor,
		intent:  service.NewEditIntent(),
	}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/categories", h.ListCategories)
	mux.Handle("POST /v1/products",
		RequireSession(sessions, http.HandlerFunc(h.CreateProduct)))
	mux.Handle("PUT /v1/products/{id}",
		RequireSession(sessions, http.HandlerFunc(h.UpdateProduct)))
	mux.Handle("DELETE /v1/products/{id}",
		RequireSession(sessions, http.HandlerFunc(h.DeleteProduct)))
	mux.Handle("POST /v1/edit-intent",
		RequireSession(sessions, http.HandlerFunc(h.SetEditIntent)))
	mux.Handle("GET /v1/edit-intent",
		RequireSession(sessions, http.HandlerFunc(h.TakeEditIntent)))
}

// ListProducts serves the storefront view: the catalog snapshot
// narrowed by search, category and max price query params. A missing
// max_price means the live catalog bound, so nothing is hidden by a
// stale default. An empty catalog is a plain 200 with an empty list.
func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op)

	q := r.URL.Query()
	fs := domain.FilterState{
		Search: q.Get("search"),
		Type:   q.Get("type"),
	}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest,
				ErrorResponse{Error: "invalid max_price"})
			return
		}
		fs.MaxPrice = maxPrice
	}

	ps, err := h.browser.FilterProducts(r.Context(), fs)
	if err != nil {
		h.writeStoreErr(w, err)
		log.Error("failed to list products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toWireList(ps))
}

func (h ProductsHandler) ListCategories(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.ListCategories"
	log := slog.With("op", op)

	cs, err := h.browser.Categories(r.Context())
	if err != nil {
		h.writeStoreErr(w, err)
		log.Error("failed to list categories", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

func (h ProductsHandler) CreateProduct(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.CreateProduct"
	log := slog.With("op", op)

	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	form.ID = ""

	p, err := h.form.Submit(r.Context(), form)
	if err != nil {
		h.writeSubmitErr(w, err)
		log.Warn("failed to create product", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, ProductResponse{
		Success: true,
		Message: "Product added successfully!",
		Product: toWire(p),
	})
	log.Info("product created", "productID", p.ID)
}

func (h ProductsHandler) UpdateProduct(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.UpdateProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if _, err := h.browser.GetProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound,
				ErrorResponse{Error: "Product not found"})
			return
		}
		h.writeStoreErr(w, err)
		log.Error("failed to load product", "productID", id, "err", err)
		return
	}

	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	form.ID = id

	p, err := h.form.Submit(r.Context(), form)
	if err != nil {
		h.writeSubmitErr(w, err)
		log.Warn("failed to update product", "productID", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: "Product updated successfully!",
		Product: toWire(p),
	})
	log.Info("product updated", "productID", p.ID)
}

func (h ProductsHandler) DeleteProduct(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	err := h.editor.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound,
				ErrorResponse{Error: "Product not found"})
			return
		}
		h.writeStoreErr(w, err)
		log.Error("failed to delete product", "productID", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
	log.Info("product deleted", "productID", id)
}

// SetEditIntent stores the product the admin is about to edit in the
// one-shot handoff slot, before navigating to the form.
func (h ProductsHandler) SetEditIntent(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.SetEditIntent"
	log := slog.With("op", op)

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			ErrorResponse{Error: "invalid JSON data"})
		return
	}

	p, err := h.browser.GetProduct(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound,
				ErrorResponse{Error: "Product not found"})
			return
		}
		h.writeStoreErr(w, err)
		log.Error("failed to load product", "productID", req.ID, "err", err)
		return
	}

	h.intent.Set(p)
	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Edit intent stored",
	})
}

// TakeEditIntent consumes the pending intent. An empty slot answers
// 204: the form opens in create mode.
func (h ProductsHandler) TakeEditIntent(
	w http.ResponseWriter, r *http.Request,
) {
	p, ok := h.intent.Take()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toWire(p))
}

// decodeForm reads the submission, rejecting unknown fields, and folds
// a legacy single image into the images list.
func (h ProductsHandler) decodeForm(
	w http.ResponseWriter, r *http.Request,
) (service.ProductForm, bool) {
	var wire ProductForm
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		writeJSON(w, http.StatusBadRequest,
			ErrorResponse{Error: "invalid JSON data"})
		return service.ProductForm{}, false
	}

	images := wire.Images
	if len(images) == 0 && wire.Image != "" {
		images = []string{wire.Image}
	}

	return service.ProductForm{
		ID:          wire.ID,
		Name:        wire.Name,
		Type:        wire.Type,
		Price:       wire.Price,
		Quantity:    wire.Quantity,
		Description: wire.Description,
		Images:      images,
	}, true
}

// writeSubmitErr maps form controller failures: validation messages go
// back inline, everything else is a retry prompt. Raw store errors
// never reach the body.
func (h ProductsHandler) writeSubmitErr(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Message})
	case errors.Is(err, domain.ErrSubmitPending):
		writeJSON(w, http.StatusConflict,
			ErrorResponse{Error: "another submit is in progress"})
	default:
		h.writeStoreErr(w, err)
	}
}

func (h ProductsHandler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable,
			ErrorResponse{Error: "catalog is unavailable, please retry"})
		return
	}
	writeJSON(w, http.StatusInternalServerError,
		ErrorResponse{Error: "operation failed, please retry"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}
