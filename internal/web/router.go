package web

import (
	"github.com/gorilla/mux"

	"lookup-tracker/internal/analytics"
	"lookup-tracker/internal/lookup"
)

// NewRouter wires the three core operations onto the API surface. Rendering
// belongs entirely to whatever front end consumes this.
func NewRouter(lookups *lookup.LookupHandlers, analyticsHandlers *analytics.AnalyticsHandlers) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/lookups/phone", lookups.SubmitPhone).Methods("POST")
	api.HandleFunc("/lookups/ip", lookups.SubmitIP).Methods("POST")
	api.HandleFunc("/analytics", analyticsHandlers.Snapshot).Methods("GET")

	return r
}
