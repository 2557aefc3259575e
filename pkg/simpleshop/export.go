package simpleshop

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop/export"
)

// Export row layouts. The csv tags name the columns of both formats.
type (
	CustomerRow struct {
		Name      string `csv:"name"`
		Email     string `csv:"email"`
		Phone     string `csv:"phone"`
		Address   string `csv:"address"`
		City      string `csv:"city"`
		Type      string `csv:"type"`
		Status    string `csv:"status"`
		CreatedAt string `csv:"created_at"`
	}

	WorkOrderRow struct {
		Number         string  `csv:"number"`
		Customer       string  `csv:"customer"`
		Title          string  `csv:"title"`
		Status         string  `csv:"status"`
		Priority       string  `csv:"priority"`
		Assignee       string  `csv:"assignee"`
		ScheduledFor   string  `csv:"scheduled_for"`
		CompletedAt    string  `csv:"completed_at"`
		EstimatedHours float64 `csv:"estimated_hours"`
		Total          float64 `csv:"total"`
	}

	InventoryRow struct {
		SKU           string  `csv:"sku"`
		Name          string  `csv:"name"`
		Category      string  `csv:"category"`
		Supplier      string  `csv:"supplier"`
		Location      string  `csv:"location"`
		Quantity      int     `csv:"quantity"`
		ReorderLevel  int     `csv:"reorder_level"`
		UnitCost      float64 `csv:"unit_cost"`
		Value         float64 `csv:"value"`
		Stock         string  `csv:"stock"`
		LastRestocked string  `csv:"last_restocked_at"`
	}

	TeamRow struct {
		Name     string `csv:"name"`
		Email    string `csv:"email"`
		Phone    string `csv:"phone"`
		Role     string `csv:"role"`
		Status   string `csv:"status"`
		JoinedAt string `csv:"joined_at"`
	}

	DeliveryRow struct {
		Customer     string  `csv:"customer"`
		Address      string  `csv:"address"`
		Route        string  `csv:"route"`
		Driver       string  `csv:"driver"`
		Status       string  `csv:"status"`
		ScheduledFor string  `csv:"scheduled_for"`
		DeliveredAt  string  `csv:"delivered_at"`
		Gallons      float64 `csv:"gallons_delivered"`
		Bottles      int     `csv:"bottles_returned"`
		Notes        string  `csv:"notes"`
	}

	PaymentRow struct {
		Customer  string  `csv:"customer"`
		Reference string  `csv:"reference"`
		Method    string  `csv:"method"`
		Status    string  `csv:"status"`
		Amount    float64 `csv:"amount"`
		PaidAt    string  `csv:"paid_at"`
	}

	ActivityRow struct {
		CreatedAt  string `csv:"created_at"`
		EntityType string `csv:"entity_type"`
		EntityID   string `csv:"entity_id"`
		Action     string `csv:"action"`
		Summary    string `csv:"summary"`
	}
)

func (f ExportFormat) contentType() (string, error) {
	switch f {
	case FormatCSV:
		return export.ContentTypeCSV, nil
	case FormatXLSX:
		return export.ContentTypeXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Export renders the visible rows of a view and stores the file in the
// report store.
func (s *service) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if s.reportStore == nil || s.urls == nil {
		return nil, ErrNoReportStore
	}
	if req.Format == "" {
		req.Format = FormatCSV
	}
	contentType, err := req.Format.contentType()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	rows, err := s.render(ctx, &buf, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := s.keys.GenerateKey(uuid.New(), export.KeyMetadata{
		View:      string(req.View),
		Extension: string(req.Format),
		CreatedAt: now,
		Scheduled: req.Snapshot,
	})
	size := int64(buf.Len())
	if err := s.reportStore.Put(ctx, key, contentType, &buf); err != nil {
		return nil, fmt.Errorf("store export %s: %w", key, err)
	}

	result := &ExportResult{
		Key:         key,
		ContentType: contentType,
		Size:        size,
		Rows:        rows,
		CreatedAt:   now,
	}
	if url, err := s.urls.DownloadURL(ctx, key); err != nil {
		s.logger.Warn("failed to build export url", "key", key, "error", err)
	} else {
		result.URL = url
	}

	s.logger.Info("export stored", "view", req.View, "format", req.Format, "key", key, "rows", rows)
	return result, nil
}

func (s *service) OpenExport(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.reportStore == nil {
		return nil, ErrNoReportStore
	}
	return s.reportStore.Open(ctx, key)
}

func (s *service) render(ctx context.Context, w io.Writer, req ExportRequest) (int, error) {
	switch req.View {
	case ViewCustomers:
		res, err := s.ListCustomers(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.customerRow)
	case ViewWorkOrders:
		res, err := s.ListWorkOrders(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.workOrderRow)
	case ViewInventory:
		res, err := s.ListInventory(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.inventoryRow)
	case ViewTeam:
		res, err := s.ListTeam(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.teamRow)
	case ViewDeliveries:
		res, err := s.ListDeliveries(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.deliveryRow)
	case ViewPayments:
		res, err := s.ListPayments(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.paymentRow)
	case ViewActivity:
		res, err := s.ListActivity(ctx, req.Filter)
		if err != nil {
			return 0, err
		}
		return writeRows(w, req, res, s.activityRow)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, req.View)
}

func writeRows[T, R any](w io.Writer, req ExportRequest, res *ListResult[T], toRow func(T) R) (int, error) {
	rows := make([]R, len(res.Items))
	for i, item := range res.Items {
		rows[i] = toRow(item)
	}
	var err error
	switch req.Format {
	case FormatXLSX:
		err = export.WriteXLSX(w, string(req.View), rows, summarySheet(req.View, res.Total, res.Stats))
	default:
		err = export.WriteCSV(w, rows)
	}
	if err != nil {
		return 0, fmt.Errorf("render %s: %w", req.View, err)
	}
	return len(rows), nil
}

func summarySheet(view ViewName, total int, stats listview.Result) export.Sheet {
	rows := [][]any{
		{"view", string(view)},
		{"records", stats.Count},
		{"records before filters", total},
	}
	for _, name := range sortedKeys(stats.Sums) {
		rows = append(rows, []any{"sum of " + name, stats.Sums[name]})
		rows = append(rows, []any{"average " + name, stats.Averages[name]})
	}
	if stats.Earliest != nil {
		rows = append(rows, []any{"earliest", stats.Earliest.Format(time.DateOnly)})
		rows = append(rows, []any{"latest", stats.Latest.Format(time.DateOnly)})
		rows = append(rows, []any{"average days between", stats.AverageGapDays})
	}
	if c := stats.Comparison; c != nil {
		rows = append(rows,
			[]any{"current " + string(c.Period), c.Current},
			[]any{"previous " + string(c.Period), c.Previous},
			[]any{"change %", c.ChangePercent},
		)
	}
	for _, b := range stats.Series {
		rows = append(rows, []any{b.Label, b.Value})
	}
	return export.Sheet{Name: "Summary", Rows: rows}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *service) stamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(s.settings.Zone()).Format("2006-01-02 15:04")
}

func (s *service) customerRow(c Customer) CustomerRow {
	return CustomerRow{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Type:      string(c.Type),
		Status:    string(c.Status),
		CreatedAt: s.stamp(&c.CreatedAt),
	}
}

func (s *service) workOrderRow(w WorkOrder) WorkOrderRow {
	row := WorkOrderRow{
		Number:       w.Number,
		Customer:     w.CustomerName,
		Title:        w.Title,
		Status:       string(w.Status),
		Priority:     string(w.Priority),
		Assignee:     w.AssigneeName,
		ScheduledFor: s.stamp(w.ScheduledFor),
		CompletedAt:  s.stamp(w.CompletedAt),
		Total:        w.Total().InexactFloat64(),
	}
	if w.EstimatedHours != nil {
		row.EstimatedHours = *w.EstimatedHours
	}
	return row
}

func (s *service) inventoryRow(i InventoryItem) InventoryRow {
	return InventoryRow{
		SKU:           i.SKU,
		Name:          i.Name,
		Category:      i.Category,
		Supplier:      i.Supplier,
		Location:      i.Location,
		Quantity:      i.Quantity,
		ReorderLevel:  i.ReorderLevel,
		UnitCost:      i.UnitCost.InexactFloat64(),
		Value:         i.Value().InexactFloat64(),
		Stock:         string(i.StockStatus(s.settings.LowStockThreshold)),
		LastRestocked: s.stamp(i.LastRestockedAt),
	}
}

func (s *service) teamRow(m TeamMember) TeamRow {
	return TeamRow{
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Role:     string(m.Role),
		Status:   string(m.Status),
		JoinedAt: s.stamp(m.JoinedAt),
	}
}

func (s *service) deliveryRow(d Delivery) DeliveryRow {
	row := DeliveryRow{
		Customer:     d.CustomerName,
		Address:      d.Address,
		Route:        d.Route,
		Driver:       d.DriverName,
		Status:       string(d.Status),
		ScheduledFor: s.stamp(d.ScheduledFor),
		DeliveredAt:  s.stamp(d.DeliveredAt),
		Notes:        d.Notes,
	}
	if d.GallonsDelivered != nil {
		row.Gallons = *d.GallonsDelivered
	}
	if d.BottlesReturned != nil {
		row.Bottles = *d.BottlesReturned
	}
	return row
}

func (s *service) paymentRow(p Payment) PaymentRow {
	return PaymentRow{
		Customer:  p.CustomerName,
		Reference: p.Reference,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Amount:    p.Amount.InexactFloat64(),
		PaidAt:    s.stamp(p.PaidAt),
	}
}

func (s *service) activityRow(e AuditEntry) ActivityRow {
	return ActivityRow{
		CreatedAt:  s.stamp(&e.CreatedAt),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Action:     string(e.Action),
		Summary:    e.Summary,
	}
}
