// Package stubapi is an in-memory stand-in for the hostel backend, for tests
// and local development. It reproduces the real contract verbatim, including
// the wrapped-vs-bare list shapes and the capitalized outpass statuses.
package stubapi

import (
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type studentDoc struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	RollNo        string `json:"rollNo"`
	RegNo         string `json:"regNo"`
	RoomNo        string `json:"roomNo"`
	Department    string `json:"department"`
	Year          string `json:"year"`
	ParentContact string `json:"parentContact"`
}

type wardenDoc struct {
	Name     string `json:"name"`
	UserID   string `json:"userId"`
	Password string `json:"-"`
}

type leaveDoc struct {
	ID        string    `json:"_id"`
	RollNo    string    `json:"rollno"`
	LeaveType string    `json:"leaveType"`
	Reason    string    `json:"reason"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	AppliedOn time.Time `json:"appliedOn"`
	CreatedAt time.Time `json:"createdAt"`
}

type complaintDoc struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	RollNo      string    `json:"rollno"`
	RoomNo      string    `json:"roomNo"`
	Category    string    `json:"category"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type outpassDoc struct {
	ID               string    `json:"_id"`
	RollNo           string    `json:"rollNo"`
	StudentName      string    `json:"studentName"`
	RoomNo           string    `json:"roomNo"`
	Destination      string    `json:"destination"`
	Purpose          string    `json:"purpose"`
	DepartureTime    string    `json:"departureTime"`
	ReturnTime       string    `json:"returnTime"`
	EmergencyContact string    `json:"emergencyContact"`
	Status           string    `json:"status"`
	QRCode           string    `json:"qrCode,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Server struct {
	mu         sync.Mutex
	students   []studentDoc
	wardens    map[string]wardenDoc
	leaves     []leaveDoc
	complaints []complaintDoc
	outpasses  []outpassDoc
	logger     *zap.Logger
}

func New(logger ...*zap.Logger) *Server {
	l := zap.L().Named("stubapi")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stubapi")
	}
	s := &Server{
		wardens: map[string]wardenDoc{
			"warden": {Name: "Chief Warden", UserID: "warden", Password: "warden123"},
		},
		logger: l,
	}
	return s
}

// SeedStudent registers a student the auth endpoint will accept.
func (s *Server) SeedStudent(name, rollNo, regNo, roomNo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, studentDoc{
		ID:     uuid.NewString(),
		Name:   name,
		RollNo: rollNo,
		RegNo:  regNo,
		RoomNo: roomNo,
	})
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/student-login", s.studentLogin)
		api.POST("/auth/warden-login", s.wardenLogin)

		api.GET("/students", s.listStudents)
		api.POST("/students", s.createStudent)

		api.GET("/leaves", s.listLeaves)
		api.POST("/leaves", s.createLeave)
		api.PUT("/leaves/:id", s.updateLeave)
		api.DELETE("/leaves/:id", s.deleteLeave)

		api.GET("/complaints", s.listComplaints)
		api.GET("/complaints/all", s.listComplaints)
		api.POST("/complaints", s.createComplaint)
		api.PUT("/complaints/:id", s.updateComplaint)

		api.GET("/outpasses", s.listOutpasses)
		api.POST("/outpasses", s.createOutpass)
		api.PATCH("/outpasses/:id", s.updateOutpass)
	}
	return r
}

func (s *Server) studentLogin(c *gin.Context) {
	var req struct {
		RollNo string `json:"rollNo"`
		RegNo  string `json:"regNo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.RollNo == req.RollNo && st.RegNo == req.RegNo {
			c.JSON(http.StatusOK, gin.H{"student": st})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid roll number or registration number"})
}

func (s *Server) wardenLogin(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wardens[req.UserID]
	if !ok || w.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid warden credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warden": w})
}

func (s *Server) listStudents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Wrapped shape, as the real backend serves it
	c.JSON(http.StatusOK, gin.H{"students": append([]studentDoc{}, s.students...)})
}

func (s *Server) createStudent(c *gin.Context) {
	var doc studentDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if doc.RollNo == "" || doc.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	doc.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, doc)
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) listLeaves(c *gin.Context) {
	rollNo := c.Query("rollno")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]leaveDoc, 0, len(s.leaves))
	for _, l := range s.leaves {
		if rollNo == "" || l.RollNo == rollNo {
			out = append(out, l)
		}
	}
	// Wrapped shape
	c.JSON(http.StatusOK, gin.H{"leaves": out})
}

func (s *Server) createLeave(c *gin.Context) {
	var doc leaveDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if doc.RollNo == "" || doc.LeaveType == "" || doc.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	doc.ID = uuid.NewString()
	doc.Status = "pending"
	doc.AppliedOn = time.Now().UTC()
	doc.CreatedAt = doc.AppliedOn

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append(s.leaves, doc)
	s.logger.Debug("leave created", zap.String("id", doc.ID))
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) updateLeave(c *gin.Context) {
	id := c.Param("id")
	var patch struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			s.leaves[i].Status = patch.Status
			c.JSON(http.StatusOK, s.leaves[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Leave not found"})
}

func (s *Server) deleteLeave(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			s.leaves = append(s.leaves[:i], s.leaves[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Leave deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Leave not found"})
}

func (s *Server) listComplaints(c *gin.Context) {
	rollNo := c.Query("rollno")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]complaintDoc, 0, len(s.complaints))
	for _, doc := range s.complaints {
		if rollNo == "" || doc.RollNo == rollNo {
			out = append(out, doc)
		}
	}
	// Bare array shape
	c.JSON(http.StatusOK, out)
}

func (s *Server) createComplaint(c *gin.Context) {
	var doc complaintDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if doc.RollNo == "" || doc.Subject == "" || doc.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	doc.ID = uuid.NewString()
	doc.Status = "pending"
	doc.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints = append(s.complaints, doc)
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) updateComplaint(c *gin.Context) {
	id := c.Param("id")
	var patch struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints[i].Status = patch.Status
			c.JSON(http.StatusOK, s.complaints[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
}

func (s *Server) listOutpasses(c *gin.Context) {
	rollNo := c.Query("rollno")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]outpassDoc, 0, len(s.outpasses))
	for _, doc := range s.outpasses {
		if rollNo == "" || doc.RollNo == rollNo {
			out = append(out, doc)
		}
	}
	// Bare array shape
	c.JSON(http.StatusOK, out)
}

func (s *Server) createOutpass(c *gin.Context) {
	var doc outpassDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if doc.RollNo == "" || doc.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	doc.ID = uuid.NewString()
	doc.Status = "Pending"
	doc.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.outpasses = append(s.outpasses, doc)
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) updateOutpass(c *gin.Context) {
	id := c.Param("id")
	var patch struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outpasses {
		if s.outpasses[i].ID == id {
			s.outpasses[i].Status = patch.Status
			if patch.Status == "Approved" {
				payload := base64.StdEncoding.EncodeToString([]byte("OUTPASS:" + id))
				s.outpasses[i].QRCode = "data:image/png;base64," + payload
			} else {
				s.outpasses[i].QRCode = ""
			}
			c.JSON(http.StatusOK, s.outpasses[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Outpass not found"})
}
