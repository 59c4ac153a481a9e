package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/page"
)

// resource serves the CRUD routes of one entity type.
type resource[T domain.Entity] struct {
	server *Server

	// service builds the entity's service for a request (parent ids come
	// from the URL).
	service func(*http.Request) *console.Service[T]

	// param is the URL parameter holding the item id.
	param string
}

// listResponse is one page of a list.
type listResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
}

func (res *resource[T]) mount(r chi.Router) {
	r.Get("/", res.list)
	r.Post("/", res.create)
	r.Get("/blank", res.blank)
	r.Post("/validate", res.validate)
	r.Get("/{"+res.param+"}", res.get)
	r.Put("/{"+res.param+"}", res.update)
	r.Delete("/{"+res.param+"}", res.delete)
}

func (res *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	svc := res.service(r)
	items, err := svc.List(r.Context())
	if err != nil {
		res.server.respondError(w, r, err)
		return
	}

	p := page.Paginate(items, svc.PageSize(), parseIntParam(r, "page", 1))
	if p.Items == nil {
		p.Items = []T{}
	}
	respondJSON(w, http.StatusOK, listResponse[T]{
		Items:      p.Items,
		Page:       p.Number,
		TotalPages: p.TotalPages,
		PageSize:   p.Size,
		Total:      p.Total,
	})
}

func (res *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	v, err := res.service(r).Get(r.Context(), chi.URLParam(r, res.param))
	if err != nil {
		res.server.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (res *resource[T]) blank(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, res.service(r).Blank())
}

func (res *resource[T]) validate(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(w, r)
	if err != nil {
		res.server.respondBadRequest(w, r, err)
		return
	}

	svc := res.service(r)
	if field := r.URL.Query().Get("field"); field != "" {
		msg := svc.Field(field, form[field]...)
		respondJSON(w, http.StatusOK, map[string]any{"valid": msg == "", "message": msg})
		return
	}
	errs := svc.Validate(form)
	respondJSON(w, http.StatusOK, map[string]any{"valid": len(errs) == 0, "errors": errs})
}

func (res *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(w, r)
	if err != nil {
		res.server.respondBadRequest(w, r, err)
		return
	}
	id, err := res.service(r).Create(r.Context(), form)
	if err != nil {
		res.server.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (res *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(w, r)
	if err != nil {
		res.server.respondBadRequest(w, r, err)
		return
	}
	id := chi.URLParam(r, res.param)
	if err := res.service(r).Update(r.Context(), id, form); err != nil {
		res.server.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (res *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, res.param)
	report, err := res.service(r).Delete(r.Context(), id)
	if err != nil && len(report.Failures) > 0 {
		res.server.respondCascade(w, r, report, err)
		return
	}
	if err != nil {
		res.server.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": id, "childrenDeleted": report.Deleted})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
