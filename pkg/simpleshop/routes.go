package simpleshop

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Marker is a map pin for one delivery stop.
type Marker struct {
	DeliveryID   uuid.UUID `json:"delivery_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address,omitempty"`
	Sequence     int       `json:"sequence"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	// FromCustomer is set when the stop had no coordinates of its own and
	// the customer's were used.
	FromCustomer bool `json:"from_customer,omitempty"`
}

// Bounds is the smallest box containing a set of markers.
type Bounds struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// Route is the ordered stops of one route on one day.
type Route struct {
	Name     string     `json:"name"`
	Driver   string     `json:"driver,omitempty"`
	Stops    []Marker   `json:"stops"`
	Unplaced []Unplaced `json:"unplaced,omitempty"`
	Bounds   *Bounds    `json:"bounds,omitempty"`
}

// Unplaced is a stop that cannot be pinned on the map.
type Unplaced struct {
	DeliveryID   uuid.UUID `json:"delivery_id"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address,omitempty"`
}

// RoutePlan is the map view of the scheduled deliveries of one day.
type RoutePlan struct {
	Date   string  `json:"date"`
	Routes []Route `json:"routes"`
	Stops  int     `json:"stops"`
}

// UnassignedRoute names the route of deliveries without one.
const UnassignedRoute = "unassigned"

// PlanRoutes groups the deliveries scheduled on the calendar day of day, in
// the shop time zone, by route. Stops are ordered by sequence then customer
// name. Coordinates come from the delivery or else its customer; stops with
// neither are reported as unplaced.
func (s *service) PlanRoutes(ctx context.Context, day time.Time) (*RoutePlan, error) {
	loc := s.settings.Zone()
	y, m, d := day.In(loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	until := from.AddDate(0, 0, 1)

	deliveries, err := s.repository.Deliveries().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	customers, err := s.repository.Customers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	byID := make(map[uuid.UUID]Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	var scheduled []Delivery
	for _, dl := range deliveries {
		if dl.Status != DeliveryStatusScheduled || dl.ScheduledFor == nil {
			continue
		}
		if dl.ScheduledFor.Before(from) || !dl.ScheduledFor.Before(until) {
			continue
		}
		scheduled = append(scheduled, dl)
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		a, b := scheduled[i], scheduled[j]
		if routeName(a) != routeName(b) {
			return routeName(a) < routeName(b)
		}
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		return a.CustomerName < b.CustomerName
	})

	plan := &RoutePlan{Date: from.Format("2006-01-02"), Routes: []Route{}, Stops: len(scheduled)}
	var current *Route
	for _, dl := range scheduled {
		name := routeName(dl)
		if current == nil || current.Name != name {
			plan.Routes = append(plan.Routes, Route{Name: name, Stops: []Marker{}})
			current = &plan.Routes[len(plan.Routes)-1]
		}
		if current.Driver == "" {
			current.Driver = dl.DriverName
		}

		marker, ok := markerFor(dl, byID)
		if !ok {
			current.Unplaced = append(current.Unplaced, Unplaced{
				DeliveryID:   dl.ID,
				CustomerName: dl.CustomerName,
				Address:      dl.Address,
			})
			continue
		}
		current.Stops = append(current.Stops, marker)
	}

	for i := range plan.Routes {
		plan.Routes[i].Bounds = boundsOf(plan.Routes[i].Stops)
	}
	return plan, nil
}

func routeName(d Delivery) string {
	if d.Route == "" {
		return UnassignedRoute
	}
	return d.Route
}

func markerFor(d Delivery, customers map[uuid.UUID]Customer) (Marker, bool) {
	m := Marker{
		DeliveryID:   d.ID,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		Address:      d.Address,
		Sequence:     d.Sequence,
	}
	if d.Latitude != nil && d.Longitude != nil {
		m.Latitude, m.Longitude = *d.Latitude, *d.Longitude
		return m, true
	}
	c, ok := customers[d.CustomerID]
	if ok && c.Latitude != nil && c.Longitude != nil {
		m.Latitude, m.Longitude = *c.Latitude, *c.Longitude
		m.FromCustomer = true
		return m, true
	}
	return m, false
}

func boundsOf(markers []Marker) *Bounds {
	if len(markers) == 0 {
		return nil
	}
	b := &Bounds{
		MinLatitude: markers[0].Latitude, MaxLatitude: markers[0].Latitude,
		MinLongitude: markers[0].Longitude, MaxLongitude: markers[0].Longitude,
	}
	for _, m := range markers[1:] {
		b.MinLatitude = min(b.MinLatitude, m.Latitude)
		b.MaxLatitude = max(b.MaxLatitude, m.Latitude)
		b.MinLongitude = min(b.MinLongitude, m.Longitude)
		b.MaxLongitude = max(b.MaxLongitude, m.Longitude)
	}
	return b
}
