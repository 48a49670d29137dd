package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

const maxBodyBytes = 1 << 20

// pathID parses the {id} URL parameter. Ids that are not positive integers
// cannot exist, so they are reported as not found.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// queryTime parses an optional RFC3339 query parameter.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, &railway.ValidationError{Field: name, Message: "Enter a valid date/time in RFC3339 format."}
	}
	return &t, nil
}

func searchFilter(r *http.Request) railway.SearchFilter {
	return railway.SearchFilter{Search: r.URL.Query().Get("search")}
}

func trainFilter(r *http.Request) railway.TrainFilter {
	q := r.URL.Query()
	return railway.TrainFilter{Name: q.Get("name"), TrainType: q.Get("train_type"), Search: q.Get("search")}
}

func routeFilter(r *http.Request) railway.RouteFilter {
	q := r.URL.Query()
	return railway.RouteFilter{Source: q.Get("source"), Destination: q.Get("destination"), Search: q.Get("search")}
}

func journeyFilter(r *http.Request) (railway.JourneyFilter, error) {
	q := r.URL.Query()
	f := railway.JourneyFilter{
		Source:      q.Get("source"),
		Destination: q.Get("destination"),
		TrainType:   q.Get("train_type"),
		Search:      q.Get("search"),
	}
	var err error
	if f.DepartureAfter, err = queryTime(r, "departure_after"); err != nil {
		return railway.JourneyFilter{}, err
	}
	if f.DepartureBefore, err = queryTime(r, "departure_before"); err != nil {
		return railway.JourneyFilter{}, err
	}
	return f, nil
}

func orderFilter(r *http.Request) (booking.OrderFilter, error) {
	var f booking.OrderFilter
	var err error
	if f.CreatedAfter, err = queryTime(r, "created_after"); err != nil {
		return booking.OrderFilter{}, err
	}
	if f.CreatedBefore, err = queryTime(r, "created_before"); err != nil {
		return booking.OrderFilter{}, err
	}
	return f, nil
}
