// Package connecttest provides an in-process console for exercising the
// connect client over real HTTP.
package connecttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

const sessionCookie = "myacinfo"

// Team is a team served by the fake console.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Train is a build train served by the fake console. Builds holds build
// versions in upload order.
type Train struct {
	Version string
	Builds  []string
}

type app struct {
	ID       string
	BundleID string
	Name     string
	Trains   []Train
}

// Server is a fake console. Password sessions and bearer tokens are both
// accepted; any non-empty bearer token is considered valid.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	accounts     map[string]string
	teams        []Team
	apps         []app
	selectedTeam string
	bearerTokens []string
	requests     []string
}

// NewServer starts a fake console. Callers must Close it.
func NewServer() *Server {
	s := &Server{accounts: make(map[string]string)}

	r := mux.NewRouter()
	r.HandleFunc("/auth/signin", s.handleSignIn).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.requireSession)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/select", s.handleSelectTeam).Methods(http.MethodPost)
	api.HandleFunc("/apps", s.handleApps).Methods(http.MethodGet)
	api.HandleFunc("/apps/{id}/trains", s.handleTrains).Methods(http.MethodGet)

	s.Server = httptest.NewServer(s.record(r))
	return s
}

// AddAccount registers a username/password pair.
func (s *Server) AddAccount(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = password
}

// AddTeam registers a team visible to every account.
func (s *Server) AddTeam(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append(s.teams, Team{ID: id, Name: name})
}

// AddApp registers an application with trains in console order.
func (s *Server) AddApp(id, bundleID, name string, trains ...Train) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = append(s.apps, app{ID: id, BundleID: bundleID, Name: name, Trains: trains})
}

// SelectedTeam returns the team chosen through the select endpoint.
func (s *Server) SelectedTeam() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTeam
}

// BearerTokens returns the bearer tokens seen so far.
func (s *Server) BearerTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bearerTokens...)
}

// Requests returns "METHOD /path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "); token != "" && token != r.Header.Get("Authorization") {
			s.mu.Lock()
			s.bearerTokens = append(s.bearerTokens, token)
			s.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountName string `json:"accountName"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	want, ok := s.accounts[req.AccountName]
	s.mu.Unlock()
	if !ok || want != req.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "session-" + req.AccountName, Path: "/"})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	teams := append([]Team{}, s.teams...)
	s.mu.Unlock()
	writeJSON(w, map[string]interface{}{"teams": teams})
}

func (s *Server) handleSelectTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID string `json:"teamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.ID == req.TeamID {
			s.selectedTeam = t.ID
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	bundleID := r.URL.Query().Get("bundleId")

	type appJSON struct {
		ID       string `json:"id"`
		BundleID string `json:"bundleId"`
		Name     string `json:"name"`
	}
	apps := []appJSON{}

	s.mu.Lock()
	for _, a := range s.apps {
		if bundleID == "" || a.BundleID == bundleID {
			apps = append(apps, appJSON{ID: a.ID, BundleID: a.BundleID, Name: a.Name})
		}
	}
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{"apps": apps})
}

func (s *Server) handleTrains(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	type buildJSON struct {
		BuildVersion string `json:"buildVersion"`
	}
	type trainJSON struct {
		Version string      `json:"version"`
		Builds  []buildJSON `json:"builds"`
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.ID != id {
			continue
		}
		trains := []trainJSON{}
		for _, t := range a.Trains {
			tj := trainJSON{Version: t.Version, Builds: []buildJSON{}}
			for _, b := range t.Builds {
				tj.Builds = append(tj.Builds, buildJSON{BuildVersion: b})
			}
			trains = append(trains, tj)
		}
		writeJSON(w, map[string]interface{}{"trains": trains})
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
