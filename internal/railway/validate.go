package railway

import (
	"strings"
	"time"
)

const positiveMessage = "Ensure this value is greater than 0."

func (in TrainTypeInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Required("name")
	}
	return nil
}

func (in TrainInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Required("name")
	}
	if in.CargoNum <= 0 {
		return invalid("cargo_num", positiveMessage)
	}
	if in.PlacesInCargo <= 0 {
		return invalid("places_in_cargo", positiveMessage)
	}
	if in.TrainTypeID <= 0 {
		return Required("train_type")
	}
	return nil
}

func (in StationInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Required("name")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return invalid("latitude", "Ensure this value is between -90 and 90.")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return invalid("longitude", "Ensure this value is between -180 and 180.")
	}
	return nil
}

func (in RouteInput) Validate() error {
	if in.SourceID <= 0 {
		return Required("source")
	}
	if in.DestinationID <= 0 {
		return Required("destination")
	}
	if in.Distance <= 0 {
		return invalid("distance", positiveMessage)
	}
	return ValidateRoute(in.SourceID, in.DestinationID)
}

// ValidateRoute rejects routes that start and end at the same station.
func ValidateRoute(sourceID, destinationID int64) error {
	if sourceID == destinationID {
		return invalid("destination", "Source and destination stations must be different")
	}
	return nil
}

func (in CrewInput) Validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return Required("first_name")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return Required("last_name")
	}
	return nil
}

func (in JourneyInput) Validate() error {
	if in.RouteID <= 0 {
		return Required("route")
	}
	if in.TrainID <= 0 {
		return Required("train")
	}
	if in.DepartureTime.IsZero() {
		return Required("departure_time")
	}
	if in.ArrivalTime.IsZero() {
		return Required("arrival_time")
	}
	return ValidateSchedule(in.DepartureTime, in.ArrivalTime)
}

// ValidateSchedule requires arrival strictly after departure.
func ValidateSchedule(departure, arrival time.Time) error {
	if !arrival.After(departure) {
		return invalid("arrival_time", "Arrival time must be after departure time")
	}
	return nil
}
