package httpapi

import (
	"time"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

type trainTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func shapeTrainType(tt railway.TrainType) trainTypeResponse {
	return trainTypeResponse{ID: tt.ID, Name: tt.Name}
}

// trains

type trainListItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo"`
	Capacity      int    `json:"capacity"`
	TrainType     string `json:"train_type"`
}

type trainDetail struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	CargoNum      int               `json:"cargo_num"`
	PlacesInCargo int               `json:"places_in_cargo"`
	Capacity      int               `json:"capacity"`
	TrainType     trainTypeResponse `json:"train_type"`
}

type trainWrite struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo"`
	TrainType     int64  `json:"train_type"`
}

func shapeTrainListItem(t railway.Train) trainListItem {
	return trainListItem{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		Capacity:      booking.Capacity(t),
		TrainType:     t.TrainType.Name,
	}
}

func shapeTrainDetail(t railway.Train) trainDetail {
	return trainDetail{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		Capacity:      booking.Capacity(t),
		TrainType:     shapeTrainType(t.TrainType),
	}
}

func shapeTrainWrite(t railway.Train) trainWrite {
	return trainWrite{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		TrainType:     t.TrainType.ID,
	}
}

// stations and crews have a single shape

type stationResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func shapeStation(s railway.Station) stationResponse {
	return stationResponse{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func shapeCrew(c railway.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

// routes

type routeListItem struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type routeDetail struct {
	ID          int64           `json:"id"`
	Source      stationResponse `json:"source"`
	Destination stationResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

type routeWrite struct {
	ID          int64 `json:"id"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func shapeRouteListItem(rt railway.Route) routeListItem {
	return routeListItem{ID: rt.ID, Source: rt.Source.Name, Destination: rt.Destination.Name, Distance: rt.Distance}
}

func shapeRouteDetail(rt railway.Route) routeDetail {
	return routeDetail{
		ID:          rt.ID,
		Source:      shapeStation(rt.Source),
		Destination: shapeStation(rt.Destination),
		Distance:    rt.Distance,
	}
}

func shapeRouteWrite(rt railway.Route) routeWrite {
	return routeWrite{ID: rt.ID, Source: rt.Source.ID, Destination: rt.Destination.ID, Distance: rt.Distance}
}

// journeys

type journeyListItem struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Train            string    `json:"train"`
	TrainType        string    `json:"train_type"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crew             []string  `json:"crew"`
	TicketsAvailable int       `json:"tickets_available"`
}

type placeResponse struct {
	Cargo int `json:"cargo"`
	Seat  int `json:"seat"`
}

type journeyDetail struct {
	ID               int64           `json:"id"`
	Route            routeDetail     `json:"route"`
	Train            trainDetail     `json:"train"`
	DepartureTime    time.Time       `json:"departure_time"`
	ArrivalTime      time.Time       `json:"arrival_time"`
	Crew             []crewResponse  `json:"crew"`
	TicketsAvailable int             `json:"tickets_available"`
	TakenPlaces      []placeResponse `json:"taken_places"`
}

type journeyWrite struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Train         int64     `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func shapeJourneyListItem(j railway.Journey) journeyListItem {
	crew := make([]string, 0, len(j.Crew))
	for _, c := range j.Crew {
		crew = append(crew, c.FullName())
	}
	return journeyListItem{
		ID:               j.ID,
		Route:            j.Route.Name(),
		Train:            j.Train.Name,
		TrainType:        j.Train.TrainType.Name,
		DepartureTime:    j.DepartureTime,
		ArrivalTime:      j.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: booking.AvailableSeats(j),
	}
}

func shapeJourneyDetail(j railway.Journey) journeyDetail {
	crew := make([]crewResponse, 0, len(j.Crew))
	for _, c := range j.Crew {
		crew = append(crew, shapeCrew(c))
	}
	taken := make([]placeResponse, 0, len(j.TakenPlaces))
	for _, p := range j.TakenPlaces {
		taken = append(taken, placeResponse{Cargo: p.Cargo, Seat: p.Seat})
	}
	return journeyDetail{
		ID:               j.ID,
		Route:            shapeRouteDetail(j.Route),
		Train:            shapeTrainDetail(j.Train),
		DepartureTime:    j.DepartureTime,
		ArrivalTime:      j.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: booking.AvailableSeats(j),
		TakenPlaces:      taken,
	}
}

func shapeJourneyWrite(j railway.Journey) journeyWrite {
	crew := make([]int64, 0, len(j.Crew))
	for _, c := range j.Crew {
		crew = append(crew, c.ID)
	}
	return journeyWrite{
		ID:            j.ID,
		Route:         j.Route.ID,
		Train:         j.Train.ID,
		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
		Crew:          crew,
	}
}

// orders

type ticketCreated struct {
	ID      int64 `json:"id"`
	Cargo   int   `json:"cargo"`
	Seat    int   `json:"seat"`
	Journey int64 `json:"journey"`
}

type orderCreated struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []ticketCreated `json:"tickets"`
}

type journeySummary struct {
	ID            int64     `json:"id"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type ticketListItem struct {
	ID      int64           `json:"id"`
	Cargo   int             `json:"cargo"`
	Seat    int             `json:"seat"`
	Journey *journeySummary `json:"journey"`
}

type orderListItem struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketListItem `json:"tickets"`
}

func shapeOrderCreated(o booking.Order) orderCreated {
	tickets := make([]ticketCreated, 0, len(o.Tickets))
	for _, tk := range o.Tickets {
		tickets = append(tickets, ticketCreated{ID: tk.ID, Cargo: tk.Cargo, Seat: tk.Seat, Journey: tk.JourneyID})
	}
	return orderCreated{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

func shapeOrder(o booking.Order) orderListItem {
	tickets := make([]ticketListItem, 0, len(o.Tickets))
	for _, tk := range o.Tickets {
		item := ticketListItem{ID: tk.ID, Cargo: tk.Cargo, Seat: tk.Seat}
		if tk.Journey != nil {
			item.Journey = &journeySummary{
				ID:            tk.Journey.ID,
				Route:         tk.Journey.Route,
				DepartureTime: tk.Journey.DepartureTime,
				ArrivalTime:   tk.Journey.ArrivalTime,
			}
		} else {
			item.Journey = &journeySummary{ID: tk.JourneyID}
		}
		tickets = append(tickets, item)
	}
	return orderListItem{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

func shapeList[T, R any](items []T, shape func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, shape(it))
	}
	return out
}
