package booking

import "github.com/andreasstove999/railway-system/booking-service-go/internal/railway"

// ValidateSeat checks a 1-based seat number against the seats of one cargo.
func ValidateSeat(seat, numSeats int) error {
	return validateRange("seat", seat, numSeats)
}

// ValidateCargo checks a 1-based cargo number against the train's cargo count.
func ValidateCargo(cargo, cargoNum int) error {
	return validateRange("cargo", cargo, cargoNum)
}

// ValidatePlace validates cargo first, then seat.
func ValidatePlace(train railway.Train, cargo, seat int) error {
	if err := ValidateCargo(cargo, train.CargoNum); err != nil {
		return err
	}
	return ValidateSeat(seat, train.PlacesInCargo)
}

func validateRange(field string, value, max int) error {
	if value < 1 || value > max {
		return &OutOfRangeError{Field: field, Min: 1, Max: max, Value: value}
	}
	return nil
}
