package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/sqlinline"
)

type petDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Breed       string    `json:"breed"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// PetsList returns pets, optionally filtered by type and a
// case-insensitive location match.
func (a *App) PetsList(w http.ResponseWriter, r *http.Request) {
	petType := strings.TrimSpace(r.URL.Query().Get("type"))
	location := strings.TrimSpace(r.URL.Query().Get("location"))

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListPets, petType, location)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load pets")
		return
	}
	defer rows.Close()

	items := []petDTO{}
	for rows.Next() {
		var p petDTO
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Description, &p.Location, &p.Image, &p.CreatedAt); err != nil {
			continue
		}
		items = append(items, p)
	}
	a.json(w, http.StatusOK, items)
}

// PetGet returns a single pet by id.
func (a *App) PetGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectPetByID, id)

	var p petDTO
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Description, &p.Location, &p.Image, &p.CreatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "pet not found")
		return
	}
	a.json(w, http.StatusOK, p)
}

type petCreateRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
}

// PetsCreate lists a new pet for adoption.
func (a *App) PetsCreate(w http.ResponseWriter, r *http.Request) {
	var req petCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	for field, value := range map[string]string{
		"name": req.Name, "type": req.Type, "breed": req.Breed,
		"location": req.Location, "image": req.Image,
	} {
		if strings.TrimSpace(value) == "" {
			a.error(w, http.StatusBadRequest, "bad_request", field+" is required")
			return
		}
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertPet,
		req.Name, req.Type, req.Breed, req.Description, req.Location, req.Image)
	var petID string
	if err := row.Scan(&petID); err != nil {
		a.Logger.Error().Err(err).Msg("insert pet failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to add pet")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": petID})
}
