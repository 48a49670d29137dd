package booking

import "github.com/andreasstove999/railway-system/booking-service-go/internal/railway"

// Capacity is the number of sellable seats on a train.
func Capacity(t railway.Train) int {
	return t.CargoNum * t.PlacesInCargo
}

// AvailableSeats is the journey capacity minus the tickets booked on it.
// TicketsBooked must come from the same read as the journey; the value is
// never stored.
func AvailableSeats(j railway.Journey) int {
	return Capacity(j.Train) - j.TicketsBooked
}
