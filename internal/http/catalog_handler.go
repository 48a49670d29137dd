package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// Catalog is the storage the catalog endpoints need.
type Catalog interface {
	railway.TrainTypeRepository
	railway.TrainRepository
	railway.StationRepository
	railway.RouteRepository
	railway.CrewRepository
	railway.JourneyRepository
}

type CatalogHandler struct {
	catalog Catalog
	logger  *log.Logger
}

func NewCatalogHandler(catalog Catalog, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// train types

func (h *CatalogHandler) ListTrainTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalog.ListTrainTypes(r.Context(), searchFilter(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(types, shapeTrainType))
}

func (h *CatalogHandler) GetTrainType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tt, err := h.catalog.GetTrainType(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeTrainType(tt))
}

func (h *CatalogHandler) CreateTrainType(w http.ResponseWriter, r *http.Request) {
	var in railway.TrainTypeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	tt, err := h.catalog.CreateTrainType(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeTrainType(tt))
}

func (h *CatalogHandler) UpdateTrainType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.TrainTypeInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetTrainType(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.TrainTypeInput{Name: cur.Name}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	tt, err := h.catalog.UpdateTrainType(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeTrainType(tt))
}

func (h *CatalogHandler) DeleteTrainType(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteTrainType)
}

// trains

func (h *CatalogHandler) ListTrains(w http.ResponseWriter, r *http.Request) {
	trains, err := h.catalog.ListTrains(r.Context(), trainFilter(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(trains, shapeTrainListItem))
}

func (h *CatalogHandler) GetTrain(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.catalog.GetTrain(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeTrainDetail(t))
}

func (h *CatalogHandler) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var in railway.TrainInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.catalog.CreateTrain(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeTrainWrite(t))
}

func (h *CatalogHandler) UpdateTrain(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.TrainInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetTrain(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.TrainInput{
			Name:          cur.Name,
			CargoNum:      cur.CargoNum,
			PlacesInCargo: cur.PlacesInCargo,
			TrainTypeID:   cur.TrainType.ID,
		}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.catalog.UpdateTrain(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeTrainWrite(t))
}

func (h *CatalogHandler) DeleteTrain(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteTrain)
}

// stations

func (h *CatalogHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.catalog.ListStations(r.Context(), searchFilter(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(stations, shapeStation))
}

func (h *CatalogHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, err := h.catalog.GetStation(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeStation(s))
}

func (h *CatalogHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var in railway.StationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.catalog.CreateStation(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeStation(s))
}

func (h *CatalogHandler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.StationInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetStation(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.StationInput{Name: cur.Name, Latitude: cur.Latitude, Longitude: cur.Longitude}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.catalog.UpdateStation(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeStation(s))
}

func (h *CatalogHandler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteStation)
}
