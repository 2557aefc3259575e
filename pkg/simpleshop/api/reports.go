package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/export"
)

// PlanRoutes returns the route plan of ?date=YYYY-MM-DD, today by default
func (h *Handler) PlanRoutes(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Settings().Zone()
	day := time.Now().In(loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			h.badRequest(w, r, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	plan, err := h.service.PlanRoutes(r.Context(), day)
	if err != nil {
		h.writeError(w, r, "failed to plan routes", err)
		return
	}
	render.JSON(w, r, plan)
}

// Dashboard returns the statistics of every module
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, "failed to build dashboard", err)
		return
	}
	render.JSON(w, r, dashboard)
}

// SettingsResponse is the public part of the shop settings
type SettingsResponse struct {
	ShopName          string   `json:"shop_name"`
	Currency          string   `json:"currency"`
	TimeZone          string   `json:"time_zone"`
	LowStockThreshold int      `json:"low_stock_threshold"`
	Views             []string `json:"views"`
}

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	settings := h.service.Settings()
	resp := SettingsResponse{
		ShopName:          settings.ShopName,
		Currency:          settings.Currency,
		TimeZone:          settings.Zone().String(),
		LowStockThreshold: settings.LowStockThreshold,
	}
	for _, v := range simpleshop.Views() {
		resp.Views = append(resp.Views, string(v))
	}
	render.JSON(w, r, resp)
}

// ListSavedFilters returns the saved filters of ?view=
func (h *Handler) ListSavedFilters(w http.ResponseWriter, r *http.Request) {
	view, err := simpleshop.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		h.writeError(w, r, "invalid view", err)
		return
	}
	filters, err := h.service.ListSavedFilters(r.Context(), view)
	if err != nil {
		h.writeError(w, r, "failed to list saved filters", err)
		return
	}
	render.JSON(w, r, filters)
}

// CreateExport renders a view to the report store
func (h *Handler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var req simpleshop.ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	// Snapshots are only taken by the scheduler.
	req.Snapshot = false

	result, err := h.service.Export(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "failed to export", err)
		return
	}
	h.logger.Info("export created", "view", req.View, "key", result.Key)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// DownloadExport streams a stored export
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		h.badRequest(w, r, "export key is required")
		return
	}

	reader, err := h.service.OpenExport(r.Context(), key)
	if err != nil {
		h.writeError(w, r, "failed to open export", err)
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".csv":
		contentType = export.ContentTypeCSV
	case ".xlsx":
		contentType = export.ContentTypeXLSX
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream export", "key", key, "error", err)
	}
}
