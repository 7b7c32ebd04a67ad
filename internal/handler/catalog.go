package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// ListCatalog handles GET /catalog.
// Supports ?kind=room or ?kind=hall; without it every item is returned.
func (s *Server) ListCatalog(w http.ResponseWriter, r *http.Request) {
	var kind *string
	if err := runtime.BindQueryParameter("form", true, false, "kind", r.URL.Query(), &kind); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid kind parameter")
		return
	}

	var items []domain.BookableItem
	if kind == nil {
		items = s.catalog.All()
	} else {
		k, err := domain.ParseKind(*kind)
		if err != nil {
			s.writeServiceError(w, r, err, "")
			return
		}
		items = s.catalog.ByKind(k)
	}

	data := make([]CatalogItem, len(items))
	for i, item := range items {
		data[i] = itemToResponse(item)
	}
	writeJSON(w, http.StatusOK, CatalogList{Data: data})
}

// GetCatalogItem handles GET /catalog/{id}.
func (s *Server) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.catalog.Get(id)
	if err != nil {
		s.writeServiceError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(item))
}

// pathID binds the {id} path parameter, writing a 422 when it is missing.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid id parameter")
		return "", false
	}
	return id, true
}
