package railway

import "time"

type TrainType struct {
	ID   int64
	Name string
}

type Train struct {
	ID            int64
	Name          string
	CargoNum      int
	PlacesInCargo int
	TrainType     TrainType
}

type Station struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64
}

type Route struct {
	ID          int64
	Source      Station
	Destination Station
	Distance    int
}

// Name renders the route the way listings show it, e.g. "Central - Terminal".
func (r Route) Name() string {
	return r.Source.Name + " - " + r.Destination.Name
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Place is one booked (cargo, seat) position on a journey.
type Place struct {
	Cargo int
	Seat  int
}

type Journey struct {
	ID            int64
	Route         Route
	Train         Train
	DepartureTime time.Time
	ArrivalTime   time.Time
	Crew          []Crew

	// TicketsBooked is counted from the tickets table when the journey is read.
	TicketsBooked int
	// TakenPlaces is only loaded for single-journey reads.
	TakenPlaces []Place
}

type TrainTypeInput struct {
	Name string `json:"name"`
}

type TrainInput struct {
	Name          string `json:"name"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo"`
	TrainTypeID   int64  `json:"train_type"`
}

type StationInput struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteInput struct {
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

type CrewInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type JourneyInput struct {
	RouteID       int64     `json:"route"`
	TrainID       int64     `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}
