package railway

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteInputValidate(t *testing.T) {
	tests := map[string]struct {
		in        RouteInput
		wantField string
	}{
		"distinct stations": {
			in: RouteInput{SourceID: 1, DestinationID: 2, Distance: 12},
		},
		"same station": {
			in:        RouteInput{SourceID: 3, DestinationID: 3, Distance: 12},
			wantField: "destination",
		},
		"missing source": {
			in:        RouteInput{DestinationID: 2, Distance: 12},
			wantField: "source",
		},
		"zero distance": {
			in:        RouteInput{SourceID: 1, DestinationID: 2},
			wantField: "distance",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestJourneyInputValidate(t *testing.T) {
	departure := time.Date(2025, 9, 2, 14, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		arrival   time.Time
		wantField string
	}{
		"arrival after departure": {arrival: departure.Add(24 * time.Hour)},
		"arrival equals departure": {arrival: departure, wantField: "arrival_time"},
		"arrival before departure": {arrival: departure.Add(-time.Minute), wantField: "arrival_time"},
		"arrival missing":          {wantField: "arrival_time"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in := JourneyInput{RouteID: 1, TrainID: 1, DepartureTime: departure, ArrivalTime: tt.arrival}
			err := in.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestTrainInputValidate(t *testing.T) {
	valid := TrainInput{Name: "InterCity 101", CargoNum: 15, PlacesInCargo: 40, TrainTypeID: 1}
	require.NoError(t, valid.Validate())

	noSeats := valid
	noSeats.PlacesInCargo = 0
	var verr *ValidationError
	require.ErrorAs(t, noSeats.Validate(), &verr)
	assert.Equal(t, "places_in_cargo", verr.Field)

	noType := valid
	noType.TrainTypeID = 0
	require.ErrorAs(t, noType.Validate(), &verr)
	assert.Equal(t, "train_type", verr.Field)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%Central%`, likePattern("Central"))
	assert.Equal(t, `%100\%\_off%`, likePattern("100%_off"))
}

func TestConditionsReuseArgumentPlaceholder(t *testing.T) {
	var c conditions
	c.contains(`a ILIKE ?`, "x")
	c.contains(`(b ILIKE ? OR c ILIKE ?)`, "y")
	c.contains(`d ILIKE ?`, "  ")

	assert.Equal(t, " WHERE a ILIKE $1 AND (b ILIKE $2 OR c ILIKE $2)", c.where())
	assert.Equal(t, []any{"%x%", "%y%"}, c.args)
}
