// Package apitest hosts an in-process stand-in for the office management
// backend, used by client and end-to-end tests. It speaks the same
// envelope and routes as the real service.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"medoffice-agenda/internal/models"
)

// Server is a fake backend with an in-memory dataset and per-route call
// counters.
type Server struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]models.Appointment
	patients     map[int64]models.Patient

	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	httpServer *httptest.Server
}

// NewServer starts the fake backend on an ephemeral port.
func NewServer() *Server {
	s := &Server{
		nextID:       1,
		appointments: make(map[int64]models.Appointment),
		patients:     make(map[int64]models.Patient),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/appointments", s.listAppointments)
	router.POST("/appointments", s.createAppointment)
	router.GET("/appointments/date/:date", s.listByDate)
	router.GET("/appointments/:id", s.getAppointment)
	router.PUT("/appointments/:id", s.updateAppointment)
	router.PUT("/appointments/:id/status/:action", s.updateStatus)
	router.PUT("/appointments/:id/reschedule", s.reschedule)
	router.DELETE("/appointments/:id", s.deleteAppointment)
	router.GET("/patients/:id", s.getPatient)
	router.PUT("/patients/:id", s.updatePatient)

	s.httpServer = httptest.NewServer(router)
	return s
}

// URL returns the backend base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the backend down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// SeedAppointment inserts an appointment, assigning an id when missing.
func (s *Server) SeedAppointment(a models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID
	}
	if a.ID >= s.nextID {
		s.nextID = a.ID + 1
	}
	s.appointments[a.ID] = a
	return a
}

// SeedPatient inserts a patient record.
func (s *Server) SeedPatient(p models.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients[p.ID] = p
}

// Appointments returns a snapshot of the stored appointments.
func (s *Server) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	return out
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": status, "message": "ok", "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": status, "message": "An error occurred", "error": message})
}

func (s *Server) listAppointments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromStr := c.Query("dateFrom")
	toStr := c.Query("dateTo")

	out := make([]models.Appointment, 0, len(s.appointments))
	if fromStr == "" && toStr == "" {
		for _, a := range s.appointments {
			out = append(out, a)
		}
		respond(c, http.StatusOK, out)
		return
	}

	from, err := models.ParseDate(fromStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid dateFrom")
		return
	}
	to, err := models.ParseDate(toStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid dateTo")
		return
	}
	for _, a := range s.appointments {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	respond(c, http.StatusOK, out)
}

func (s *Server) listByDate(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, 0)
	for _, a := range s.appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	respond(c, http.StatusOK, out)
}

func (s *Server) getAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		respondError(c, http.StatusNotFound, "appointment not found")
		return
	}
	respond(c, http.StatusOK, a)
}

func (s *Server) createAppointment(c *gin.Context) {
	var a models.Appointment
	if err := c.ShouldBindJSON(&a); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateCalls++
	a.ID = s.nextID
	s.nextID++
	if a.Status == "" {
		a.Status = models.StatusPlanned
	}
	s.appointments[a.ID] = a
	respond(c, http.StatusCreated, a)
}

func (s *Server) updateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var a models.Appointment
	if err := c.ShouldBindJSON(&a); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls++
	if _, ok := s.appointments[id]; !ok {
		respondError(c, http.StatusNotFound, "appointment not found")
		return
	}
	a.ID = id
	s.appointments[id] = a
	respond(c, http.StatusOK, a)
}

func (s *Server) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		respondError(c, http.StatusNotFound, "appointment not found")
		return
	}
	switch models.StatusAction(c.Param("action")) {
	case models.ActionConfirm:
		a.Status = models.StatusConfirmed
	case models.ActionCancel:
		a.Status = models.StatusCancelled
	case models.ActionComplete:
		a.Status = models.StatusDone
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
		return
	}
	s.appointments[id] = a
	respond(c, http.StatusOK, a)
}

func (s *Server) reschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	date, err := models.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}
	start, err := models.ParseClockTime(c.Query("time"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid time")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		respondError(c, http.StatusNotFound, "appointment not found")
		return
	}
	duration := a.EndTime - a.StartTime
	a.Date = date
	a.StartTime = start
	a.EndTime = start + duration
	a.Status = models.StatusRescheduled
	s.appointments[id] = a
	respond(c, http.StatusOK, a)
}

func (s *Server) deleteAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if _, ok := s.appointments[id]; !ok {
		respondError(c, http.StatusNotFound, "appointment not found")
		return
	}
	delete(s.appointments, id)
	respond(c, http.StatusOK, nil)
}

func (s *Server) getPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		respondError(c, http.StatusNotFound, "patient not found")
		return
	}
	respond(c, http.StatusOK, p)
}

func (s *Server) updatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var p models.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		respondError(c, http.StatusNotFound, "patient not found")
		return
	}
	p.ID = id
	s.patients[id] = p
	respond(c, http.StatusOK, p)
}
