package httpapi

import (
	"net/http"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// routes

func (h *CatalogHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.catalog.ListRoutes(r.Context(), routeFilter(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(routes, shapeRouteListItem))
}

func (h *CatalogHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rt, err := h.catalog.GetRoute(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeRouteDetail(rt))
}

func (h *CatalogHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var in railway.RouteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rt, err := h.catalog.CreateRoute(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeRouteWrite(rt))
}

func (h *CatalogHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.RouteInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetRoute(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.RouteInput{SourceID: cur.Source.ID, DestinationID: cur.Destination.ID, Distance: cur.Distance}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	rt, err := h.catalog.UpdateRoute(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeRouteWrite(rt))
}

func (h *CatalogHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteRoute)
}

// crews

func (h *CatalogHandler) ListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := h.catalog.ListCrews(r.Context(), searchFilter(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(crews, shapeCrew))
}

func (h *CatalogHandler) GetCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.catalog.GetCrew(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeCrew(c))
}

func (h *CatalogHandler) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var in railway.CrewInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.catalog.CreateCrew(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeCrew(c))
}

func (h *CatalogHandler) UpdateCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.CrewInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetCrew(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.CrewInput{FirstName: cur.FirstName, LastName: cur.LastName}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.catalog.UpdateCrew(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeCrew(c))
}

func (h *CatalogHandler) DeleteCrew(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteCrew)
}

// journeys

func (h *CatalogHandler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	f, err := journeyFilter(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	journeys, err := h.catalog.ListJourneys(r.Context(), f)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(journeys, shapeJourneyListItem))
}

func (h *CatalogHandler) GetJourney(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	j, err := h.catalog.GetJourney(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeJourneyDetail(j))
}

func (h *CatalogHandler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var in railway.JourneyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	j, err := h.catalog.CreateJourney(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeJourneyWrite(j))
}

func (h *CatalogHandler) UpdateJourney(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in railway.JourneyInput
	if r.Method == http.MethodPatch {
		cur, err := h.catalog.GetJourney(r.Context(), id)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		in = railway.JourneyInput{
			RouteID:       cur.Route.ID,
			TrainID:       cur.Train.ID,
			DepartureTime: cur.DepartureTime,
			ArrivalTime:   cur.ArrivalTime,
		}
		for _, c := range cur.Crew {
			in.CrewIDs = append(in.CrewIDs, c.ID)
		}
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	j, err := h.catalog.UpdateJourney(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeJourneyWrite(j))
}

func (h *CatalogHandler) DeleteJourney(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteJourney)
}
