package simpleshop

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Diff compares two flat records field by field and describes every field
// whose formatted value changed. Fields are reported in key order.
func Diff(before, after map[string]any) []Change {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []Change
	for _, field := range sorted {
		from, to := FormatValue(before[field]), FormatValue(after[field])
		if from == to {
			continue
		}
		changes = append(changes, Change{
			Field:       field,
			From:        from,
			To:          to,
			Description: describe(field, from, to),
		})
	}
	return changes
}

// Summarize joins change descriptions into one line.
func Summarize(changes []Change) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = c.Description
	}
	return strings.Join(parts, "; ")
}

func describe(field, from, to string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch {
	case from == "":
		return fmt.Sprintf("set %s to %q", label, to)
	case to == "":
		return fmt.Sprintf("cleared %s", label)
	default:
		return fmt.Sprintf("changed %s from %q to %q", label, from, to)
	}
}

// FormatValue renders a field value for audit descriptions. Nil pointers and
// empty strings render as "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return formatTime(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return formatTime(*x)
	case decimal.Decimal:
		return x.StringFixed(2)
	case *uuid.UUID:
		if x == nil {
			return ""
		}
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case *int:
		if x == nil {
			return ""
		}
		return strconv.Itoa(*x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case *float64:
		if x == nil {
			return ""
		}
		return strconv.FormatFloat(*x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func customerFields(c Customer) map[string]any {
	return map[string]any{
		"name":      c.Name,
		"email":     c.Email,
		"phone":     c.Phone,
		"address":   c.Address,
		"city":      c.City,
		"type":      string(c.Type),
		"status":    string(c.Status),
		"notes":     c.Notes,
		"latitude":  c.Latitude,
		"longitude": c.Longitude,
	}
}

func workOrderFields(w WorkOrder) map[string]any {
	return map[string]any{
		"number":          w.Number,
		"customer":        w.CustomerName,
		"title":           w.Title,
		"description":     w.Description,
		"status":          string(w.Status),
		"priority":        string(w.Priority),
		"assignee":        w.AssigneeName,
		"scheduled_for":   w.ScheduledFor,
		"completed_at":    w.CompletedAt,
		"estimated_hours": w.EstimatedHours,
		"total":           w.Total(),
		"line_count":      len(w.Lines),
	}
}

func inventoryFields(i InventoryItem) map[string]any {
	return map[string]any{
		"sku":               i.SKU,
		"name":              i.Name,
		"category":          i.Category,
		"supplier":          i.Supplier,
		"location":          i.Location,
		"quantity":          i.Quantity,
		"reorder_level":     i.ReorderLevel,
		"unit_cost":         i.UnitCost,
		"last_restocked_at": i.LastRestockedAt,
	}
}

func teamMemberFields(m TeamMember) map[string]any {
	return map[string]any{
		"name":      m.Name,
		"email":     m.Email,
		"phone":     m.Phone,
		"role":      string(m.Role),
		"status":    string(m.Status),
		"joined_at": m.JoinedAt,
	}
}

func (s *service) recordCreate(ctx context.Context, kind string, id uuid.UUID, label string) {
	s.appendAudit(ctx, &AuditEntry{
		EntityType: kind,
		EntityID:   id,
		Action:     AuditCreated,
		Summary:    fmt.Sprintf("created %s %s", strings.ReplaceAll(kind, "_", " "), label),
	})
}

func (s *service) recordUpdate(ctx context.Context, kind string, id uuid.UUID, before, after map[string]any) {
	changes := Diff(before, after)
	if len(changes) == 0 {
		return
	}
	s.appendAudit(ctx, &AuditEntry{
		EntityType: kind,
		EntityID:   id,
		Action:     AuditUpdated,
		Changes:    changes,
		Summary:    Summarize(changes),
	})
}

func (s *service) recordDelete(ctx context.Context, kind string, id uuid.UUID, label string) {
	s.appendAudit(ctx, &AuditEntry{
		EntityType: kind,
		EntityID:   id,
		Action:     AuditDeleted,
		Summary:    fmt.Sprintf("deleted %s %s", strings.ReplaceAll(kind, "_", " "), label),
	})
}

// appendAudit never fails the write it describes.
func (s *service) appendAudit(ctx context.Context, entry *AuditEntry) {
	entry.ID = uuid.New()
	entry.CreatedAt = s.now()
	if err := s.repository.Activity().Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"action", entry.Action,
			"error", err)
	}
}
