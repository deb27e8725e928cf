package controllers

import (
	"net/http"
	"strconv"

	"driftwood/app/models"
	"driftwood/app/services"

	"github.com/gorilla/mux"
)

// CatalogController handles HTTP requests for the resort offering
// catalog.
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// Index returns the whole catalog grouped by category.
func (cc *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	groups, err := cc.catalogService.ListGrouped()
	if err != nil {
		sendError(w, "Failed to fetch catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"categories": groups})
}

// ByCategory lists one category's offerings.
func (cc *CatalogController) ByCategory(w http.ResponseWriter, r *http.Request) {
	code := models.ServiceCategory(mux.Vars(r)["code"])
	valid := false
	for _, cat := range models.ServiceCategories {
		if cat.Code == code {
			valid = true
			break
		}
	}
	if !valid {
		sendError(w, "Unknown category", http.StatusNotFound)
		return
	}
	offerings, err := cc.catalogService.ListByCategory(code)
	if err != nil {
		sendError(w, "Failed to fetch catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"services": offerings})
}

// Featured lists the offerings flagged for the front page.
func (cc *CatalogController) Featured(w http.ResponseWriter, r *http.Request) {
	offerings, err := cc.catalogService.ListFeatured()
	if err != nil {
		sendError(w, "Failed to fetch catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"services": offerings})
}

// Show resolves one offering by slug.
func (cc *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	offering, err := cc.catalogService.GetService(mux.Vars(r)["slug"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, offering)
}

// Create adds a catalog entry.
func (cc *CatalogController) Create(w http.ResponseWriter, r *http.Request) {
	var offering models.Service
	if !decodeBody(w, r, &offering) {
		return
	}
	if err := cc.catalogService.CreateService(&offering); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, offering)
}

// Update edits a catalog entry.
func (cc *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	var offering models.Service
	if !decodeBody(w, r, &offering) {
		return
	}
	offering.ID = id
	if err := cc.catalogService.UpdateService(&offering); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, offering)
}

// Delete removes a catalog entry.
func (cc *CatalogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	if err := cc.catalogService.DeleteService(id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddImage attaches a gallery image record to an offering.
func (cc *CatalogController) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	var image models.ServiceImage
	if !decodeBody(w, r, &image) {
		return
	}
	image.ServiceID = id
	if err := cc.catalogService.AddImage(&image); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, image)
}
