package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"contactbook/internal/contact"
)

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Contacts: s.dir.Len()})
	}
}

func (s *Server) handleListContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := s.dir.Contacts()
		if name := strings.TrimSpace(r.URL.Query().Get("field")); name != "" {
			f, err := contact.ParseField(name)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			records = s.dir.ContactsWith(f)
		}

		resp := ContactListResponse{Contacts: make([]Contact, 0, len(records))}
		for _, rec := range records {
			resp.Contacts = append(resp.Contacts, FromRecord(rec, s.order))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleGetContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.dir.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		writeJSON(w, http.StatusOK, FromRecord(rec, s.order))
	}
}

func (s *Server) handleDuplicates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := make(map[string]any)
		for key, vals := range r.URL.Query() {
			values[key] = vals
		}
		candidate, err := contact.FromMap(values)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		matches := s.dir.FindDuplicates(candidate)
		resp := DuplicatesResponse{Matches: make([]DuplicateMatch, 0, len(matches))}
		for _, m := range matches {
			resp.Matches = append(resp.Matches, DuplicateMatch{
				Score:   m.Score,
				Contact: FromRecord(m.Record, s.order),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
