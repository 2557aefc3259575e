// Package api exposes the shop service over HTTP with chi.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// Handler handles HTTP requests for the shop service
type Handler struct {
	service simpleshop.Service
	logger  *slog.Logger
}

// New creates a new shop handler
func New(service simpleshop.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the routes of the shop API. Mount it under /api/v1.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewCustomers, h.service.ListCustomers))
		r.Post("/", createHandler(h, h.service.CreateCustomer))
		r.Get("/{id}", getHandler(h, h.service.GetCustomer))
		r.Put("/{id}", updateHandler(h, func(c *simpleshop.Customer, id uuid.UUID) { c.ID = id }, h.service.UpdateCustomer))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteCustomer))
	})

	r.Route("/work-orders", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewWorkOrders, h.service.ListWorkOrders))
		r.Post("/", createHandler(h, h.service.CreateWorkOrder))
		r.Get("/{id}", getHandler(h, h.service.GetWorkOrder))
		r.Put("/{id}", updateHandler(h, func(w *simpleshop.WorkOrder, id uuid.UUID) { w.ID = id }, h.service.UpdateWorkOrder))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteWorkOrder))
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewInventory, h.service.ListInventory))
		r.Post("/", createHandler(h, h.service.CreateInventoryItem))
		r.Get("/{id}", getHandler(h, h.service.GetInventoryItem))
		r.Put("/{id}", updateHandler(h, func(i *simpleshop.InventoryItem, id uuid.UUID) { i.ID = id }, h.service.UpdateInventoryItem))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteInventoryItem))
	})

	r.Route("/team", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewTeam, h.service.ListTeam))
		r.Post("/", createHandler(h, h.service.CreateTeamMember))
		r.Get("/{id}", getHandler(h, h.service.GetTeamMember))
		r.Put("/{id}", updateHandler(h, func(m *simpleshop.TeamMember, id uuid.UUID) { m.ID = id }, h.service.UpdateTeamMember))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteTeamMember))
	})

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewDeliveries, h.service.ListDeliveries))
		r.Post("/", createHandler(h, h.service.RecordDelivery))
		r.Get("/{id}", getHandler(h, h.service.GetDelivery))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteDelivery))
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/", listHandler(h, simpleshop.ViewPayments, h.service.ListPayments))
		r.Post("/", createHandler(h, h.service.RecordPayment))
		r.Get("/{id}", getHandler(h, h.service.GetPayment))
	})

	r.Get("/activity", listHandler(h, simpleshop.ViewActivity, h.service.ListActivity))
	r.Get("/routes", h.PlanRoutes)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/settings", h.Settings)

	r.Route("/saved-filters", func(r chi.Router) {
		r.Get("/", h.ListSavedFilters)
		r.Post("/", createHandler(h, h.service.SaveFilter))
		r.Get("/{id}", getHandler(h, h.service.GetSavedFilter))
		r.Delete("/{id}", deleteHandler(h, h.service.DeleteSavedFilter))
	})

	r.Post("/exports", h.CreateExport)
	r.Get("/exports/*", h.DownloadExport)

	return r
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, simpleshop.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, simpleshop.ErrDuplicateName), errors.Is(err, simpleshop.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, simpleshop.ErrInvalidInput),
		errors.Is(err, simpleshop.ErrInvalidFilter),
		errors.Is(err, simpleshop.ErrUnknownView),
		errors.Is(err, simpleshop.ErrUnsupportedFormat),
		errors.Is(err, listview.ErrUnknownField),
		errors.Is(err, listview.ErrInvalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "path", r.URL.Path, "error", err)
		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{Error: http.StatusText(status)})
		return
	}
	h.logger.Debug(msg, "path", r.URL.Path, "status", status, "error", err)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.badRequest(w, r, "invalid id "+idStr)
		return uuid.Nil, false
	}
	return id, true
}

func listHandler[T any](h *Handler, view simpleshop.ViewName, list func(context.Context, listview.FilterState) (*simpleshop.ListResult[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.filterFromQuery(r.Context(), view, r.URL.Query())
		if err != nil {
			h.writeError(w, r, "invalid filter", err)
			return
		}
		result, err := list(r.Context(), filter)
		if err != nil {
			h.writeError(w, r, "failed to list "+string(view), err)
			return
		}
		render.JSON(w, r, result)
	}
}

func createHandler[Req, T any](h *Handler, create func(context.Context, Req) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			h.badRequest(w, r, "invalid request body: "+err.Error())
			return
		}
		record, err := create(r.Context(), req)
		if err != nil {
			h.writeError(w, r, "failed to create record", err)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, record)
	}
}

func getHandler[T any](h *Handler, get func(context.Context, uuid.UUID) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.parseID(w, r)
		if !ok {
			return
		}
		record, err := get(r.Context(), id)
		if err != nil {
			h.writeError(w, r, "failed to get record", err)
			return
		}
		render.JSON(w, r, record)
	}
}

// updateHandler decodes the full record from the body; the id always comes
// from the path.
func updateHandler[T any](h *Handler, setID func(*T, uuid.UUID), update func(context.Context, *T) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.parseID(w, r)
		if !ok {
			return
		}
		var record T
		if err := render.DecodeJSON(r.Body, &record); err != nil {
			h.badRequest(w, r, "invalid request body: "+err.Error())
			return
		}
		setID(&record, id)
		updated, err := update(r.Context(), &record)
		if err != nil {
			h.writeError(w, r, "failed to update record", err)
			return
		}
		render.JSON(w, r, updated)
	}
}

func deleteHandler(h *Handler, del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.parseID(w, r)
		if !ok {
			return
		}
		if err := del(r.Context(), id); err != nil {
			h.writeError(w, r, "failed to delete record", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
