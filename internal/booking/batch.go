package booking

type seatKey struct {
	journeyID int64
	cargo     int
	seat      int
}

// batch tracks the places already claimed by earlier tickets of one order.
type batch map[seatKey]struct{}

func (b batch) claim(req TicketRequest) error {
	k := seatKey{journeyID: req.JourneyID, cargo: req.Cargo, seat: req.Seat}
	if _, taken := b[k]; taken {
		return &SeatTakenError{JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
	}
	b[k] = struct{}{}
	return nil
}
