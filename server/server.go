// Package server exposes simulation sessions over HTTP.
//
// Every session owns its portfolio and budget; nothing is shared between
// sessions but the read-only catalog.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/powermix"
	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds the time given to in-flight requests on shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the simulation API for a single catalog.
type Server struct {
	catalog *powermix.Catalog
	store   *store
}

// New creates a server without any session.
func New(c *powermix.Catalog) *Server {
	return &Server{catalog: c, store: newStore()}
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	if gin.IsDebugging() {
		r.Use(gin.Logger())
	}

	r.GET("/health", s.health)
	r.GET("/catalog", s.getCatalog)

	r.POST("/sessions", s.createSession)
	r.GET("/sessions/:id", s.getSession)
	r.DELETE("/sessions/:id", s.deleteSession)
	r.PUT("/sessions/:id/budget", s.setBudget)
	r.POST("/sessions/:id/rows", s.addRow)
	r.PUT("/sessions/:id/rows/:row", s.setRow)
	r.DELETE("/sessions/:id/rows/:row", s.removeRow)
	r.GET("/sessions/:id/summary", s.getSummary)
	return r
}

// ListenAndServe serves the API on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving %d sources on %s", s.catalog.Len(), addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// amount is a budget in a request body, either a JSON number or a string
// with an optional magnitude suffix ("1.5B").
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("budget must be a number or a string: %w", err)
	}
	*a = amount(n.String())
	return nil
}

type budgetRequest struct {
	Budget amount `json:"budget" binding:"required"`
}

type addRowRequest struct {
	Source string `json:"source"`
}

type setRowRequest struct {
	Source string `json:"source" binding:"required"`
	Plants *int   `json:"plants" binding:"required"`
}

// errBadRequest marks request errors that are not engine errors.
var errBadRequest = errors.New("bad request")

func badRequest(err error) error { return fmt.Errorf("%w: %v", errBadRequest, err) }

// status maps an error to its HTTP status code.
func status(err error) int {
	switch {
	case errors.Is(err, errSessionNotFound), errors.Is(err, powermix.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, powermix.ErrUnknownSource), errors.Is(err, powermix.ErrNegativePlants):
		return http.StatusBadRequest
	case errors.Is(err, powermix.ErrBudgetOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// state is the view of a session returned after every call.
func state(id string, sim *powermix.Simulation) (gin.H, error) {
	a, err := sim.Allocation()
	if err != nil {
		return nil, err
	}
	return gin.H{
		"id":         id,
		"allocation": a,
		"policy": gin.H{
			"allocation": sim.Policy().Allocation.String(),
			"selection":  sim.Policy().Selection.String(),
		},
	}, nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "sessions": s.store.count()})
}

func (s *Server) getCatalog(c *gin.Context) {
	profiles := make([]powermix.SourceProfile, 0, s.catalog.Len())
	for p := range s.catalog.Profiles() {
		profiles = append(profiles, p)
	}
	c.JSON(http.StatusOK, gin.H{
		"currency":  s.catalog.Currency(),
		"sources":   profiles,
		"minBudget": s.catalog.MinBudget(),
		"maxBudget": s.catalog.MaxBudget(),
	})
}

func (s *Server) createSession(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, badRequest(err))
		return
	}
	sim := powermix.NewSimulation(s.catalog, powermix.Policy{})
	if len(bytes.TrimSpace(raw)) > 0 {
		sc, err := powermix.DecodeScenario(bytes.NewReader(raw))
		if err != nil {
			fail(c, badRequest(err))
			return
		}
		if sim, err = sc.Simulation(s.catalog); err != nil {
			if status(err) == http.StatusInternalServerError {
				err = badRequest(err)
			}
			fail(c, err)
			return
		}
	}

	id := s.store.add(sim).String()
	// nobody else knows the id yet, no need to lock.
	body, err := state(id, sim)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, body)
}

// respond runs f on the session and replies with the session state.
func (s *Server) respond(c *gin.Context, f func(sim *powermix.Simulation) error) {
	id := c.Param("id")
	var body gin.H
	err := s.store.with(id, func(sim *powermix.Simulation) error {
		if err := f(sim); err != nil {
			return err
		}
		var err error
		body, err = state(id, sim)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) getSession(c *gin.Context) {
	s.respond(c, func(*powermix.Simulation) error { return nil })
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.store.remove(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) setBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest(err))
		return
	}
	b, err := s.catalog.ParseMoney(string(req.Budget))
	if err != nil {
		fail(c, badRequest(err))
		return
	}
	s.respond(c, func(sim *powermix.Simulation) error { return sim.SetBudget(b) })
}

func (s *Server) addRow(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, badRequest(err))
		return
	}
	var req addRowRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			fail(c, badRequest(err))
			return
		}
	}
	s.respond(c, func(sim *powermix.Simulation) error {
		if req.Source == "" {
			sim.Add()
			return nil
		}
		_, err := sim.AddSource(req.Source)
		return err
	})
}

func (s *Server) setRow(c *gin.Context) {
	row, err := rowParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req setRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest(err))
		return
	}
	s.respond(c, func(sim *powermix.Simulation) error { return sim.SetEntry(row, req.Source, *req.Plants) })
}

func (s *Server) removeRow(c *gin.Context) {
	row, err := rowParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	s.respond(c, func(sim *powermix.Simulation) error { return sim.RemoveAt(row) })
}

func (s *Server) getSummary(c *gin.Context) {
	var sum powermix.Summary
	err := s.store.with(c.Param("id"), func(sim *powermix.Simulation) error {
		var err error
		sum, err = sim.Summary()
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func rowParam(c *gin.Context) (int, error) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		return 0, badRequest(fmt.Errorf("invalid row %q", c.Param("row")))
	}
	return row, nil
}
