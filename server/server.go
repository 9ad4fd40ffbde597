package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nesmachny/translio"
	"github.com/nesmachny/translio/catalog"
	"github.com/nesmachny/translio/memory"
	"github.com/nesmachny/translio/store"
)

// Server wires the core components behind HTTP handlers.
type Server struct {
	Store   store.Store
	Catalog catalog.Catalog
	Index   *memory.Index
	Engine  *translio.Engine
}

// New creates a Server over the given components.
func New(st store.Store, cat catalog.Catalog, idx *memory.Index, engine *translio.Engine) *Server {
	return &Server{Store: st, Catalog: cat, Index: idx, Engine: engine}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeError(w, http.StatusInternalServerError, err)
	}
}

func setJSONHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h.ServeHTTP(w, r)
	})
}

// fieldPayload mirrors translio.SourceField on the wire.
type fieldPayload struct {
	ObjectID   string `json:"object_id"`
	ObjectType string `json:"object_type"`
	FieldName  string `json:"field_name"`
	Value      string `json:"value"`
	Context    string `json:"context,omitempty"`
}

func toSourceFields(in []fieldPayload) []translio.SourceField {
	out := make([]translio.SourceField, len(in))
	for i, f := range in {
		out[i] = translio.SourceField{
			ObjectID:   f.ObjectID,
			ObjectType: f.ObjectType,
			FieldName:  f.FieldName,
			Value:      f.Value,
			Context:    f.Context,
		}
	}
	return out
}

// progressHandler classifies posted candidate fields and reports aggregate
// counts plus per-object completion.
func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LanguageCode string         `json:"language_code"`
		Fields       []fieldPayload `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fields := toSourceFields(req.Fields)
	counts, err := translio.CountStatuses(r.Context(), s.Store, req.LanguageCode, fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, struct {
		Missing int `json:"missing"`
		Stale   int `json:"stale"`
		Fresh   int `json:"fresh"`
	}{counts.Missing, counts.Stale, counts.Fresh})
}

// translateHandler runs one bounded engine pass over the posted candidates.
func (s *Server) translateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LanguageCode string         `json:"language_code"`
		Fields       []fieldPayload `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	summary, err := s.Engine.TranslateBatch(r.Context(), req.LanguageCode, toSourceFields(req.Fields))
	if err != nil && summary == nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := struct {
		*translio.BatchSummary
		Error string `json:"error,omitempty"`
	}{BatchSummary: summary}
	if err != nil {
		// Partial outcome: tell the caller what saved and what failed.
		resp.Error = err.Error()
	}
	writeJSON(w, resp)
}

// saveRecordHandler persists a manual translation edit.
func (s *Server) saveRecordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ObjectID     string `json:"object_id"`
		ObjectType   string `json:"object_type"`
		FieldName    string `json:"field_name"`
		LanguageCode string `json:"language_code"`
		Original     string `json:"original"`
		Translated   string `json:"translated"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	key := translio.Key{
		ObjectID:     req.ObjectID,
		ObjectType:   req.ObjectType,
		FieldName:    req.FieldName,
		LanguageCode: req.LanguageCode,
	}
	if err := s.Store.Save(r.Context(), key, req.Original, req.Translated, false); err != nil {
		var invalid *translio.InvalidKeyError
		status := http.StatusInternalServerError
		if errors.As(err, &invalid) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, struct {
		Saved bool `json:"saved"`
	}{true})
}

// objectRecordsHandler returns every stored field record of one object.
func (s *Server) objectRecordsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lang := r.URL.Query().Get("lang")

	records, err := s.Store.GetAllForObject(r.Context(), vars["id"], vars["type"], lang)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, records)
}

// memorySearchHandler runs a fuzzy translation memory query.
func (s *Server) memorySearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minSim := intParam(q.Get("min"), 70)
	limit := intParam(q.Get("limit"), 10)

	matches, err := s.Index.FindFuzzy(r.Context(), q.Get("q"), q.Get("lang"), minSim, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, matches)
}

// memoryStatsHandler reports aggregate memory statistics for a language.
func (s *Server) memoryStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Index.Stats(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, struct {
		TotalEntries    int `json:"total_entries"`
		UniqueOriginals int `json:"unique_originals"`
		TotalChars      int `json:"total_chars"`
	}{stats.TotalEntries, stats.UniqueOriginals, stats.TotalChars})
}

// listStringsHandler lists scanned strings with filters and pagination.
func (s *Server) listStringsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := stringFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := s.Catalog.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	total, err := s.Catalog.Count(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type entryPayload struct {
		ID          string `json:"id"`
		Text        string `json:"text"`
		Domain      string `json:"domain"`
		Context     string `json:"context,omitempty"`
		Translated  bool   `json:"translated"`
		Translation string `json:"translation,omitempty"`
	}
	resp := struct {
		Total   int            `json:"total"`
		Entries []entryPayload `json:"entries"`
	}{Total: total, Entries: make([]entryPayload, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryPayload{
			ID:          e.ID,
			Text:        e.Text,
			Domain:      e.Domain,
			Context:     e.Context,
			Translated:  e.Translated,
			Translation: e.Translation,
		})
	}
	writeJSON(w, resp)
}

// recordStringsHandler registers externally discovered strings.
func (s *Server) recordStringsHandler(w http.ResponseWriter, r *http.Request) {
	var req []struct {
		Text    string `json:"text"`
		Domain  string `json:"domain"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	recorded := 0
	for _, in := range req {
		if in.Text == "" {
			continue
		}
		err := s.Catalog.RecordString(r.Context(), catalog.ScannedString{
			Text:    in.Text,
			Domain:  in.Domain,
			Context: in.Context,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		recorded++
	}
	writeJSON(w, struct {
		Recorded int `json:"recorded"`
	}{recorded})
}

// clearStringsHandler bulk-deletes the catalog (and its translation records).
func (s *Server) clearStringsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, struct {
		Cleared bool `json:"cleared"`
	}{true})
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/progress", s.progressHandler).Methods("POST")
	r.HandleFunc("/translate", s.translateHandler).Methods("POST")
	r.HandleFunc("/records", s.saveRecordHandler).Methods("POST", "PUT")
	r.HandleFunc("/objects/{type}/{id}/records", s.objectRecordsHandler).Methods("GET")
	r.HandleFunc("/memory/search", s.memorySearchHandler).Methods("GET")
	r.HandleFunc("/memory/stats", s.memoryStatsHandler).Methods("GET")
	r.HandleFunc("/strings", s.listStringsHandler).Methods("GET")
	r.HandleFunc("/strings", s.recordStringsHandler).Methods("POST")
	r.HandleFunc("/strings", s.clearStringsHandler).Methods("DELETE")
	return r
}

// ListenAndServe starts the HTTP server with request logging.
func (s *Server) ListenAndServe(port int, logOutput io.Writer) error {
	h := handlers.CombinedLoggingHandler(logOutput, setJSONHeaders(s.Router()))
	return http.ListenAndServe(fmt.Sprintf(":%d", port), h)
}

func stringFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Domain:       q.Get("domain"),
		Search:       q.Get("search"),
		LanguageCode: q.Get("lang"),
		Limit:        intParam(q.Get("limit"), 50),
		Offset:       intParam(q.Get("offset"), 0),
	}
	switch q.Get("translated") {
	case "":
		f.Translated = catalog.Any
	case "yes", "true":
		f.Translated = catalog.Translated
	case "no", "false":
		f.Translated = catalog.Untranslated
	default:
		return f, fmt.Errorf("invalid translated filter %q", q.Get("translated"))
	}
	return f, nil
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
