// Package apitest runs an in-memory stand-in for the superadmin API so the
// client, the state layer and the screens can be tested against real HTTP.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// Default credentials accepted by the login route.
const (
	AdminEmail    = "admin@salonpro.sa"
	AdminPassword = "s3cret"
)

var signingKey = []byte("apitest-signing-key")

type cannedResponse struct {
	status int
	body   string
}

// Server is a fake superadmin API backed by in-memory state.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	salons  []domain.Salon
	owners  map[string]domain.Owner
	stats   domain.Stats
	admin   domain.AdminUser
	tokens  map[string]bool
	hits    map[string]int
	canned  map[string]cannedResponse
	nextID  int
	created []CreateRecord
}

// CreateRecord is what the create route received, for assertions.
type CreateRecord struct {
	Name          string `json:"name"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	WhatsApp      string `json:"whatsapp"`
	PlanType      string `json:"plan_type"`
	OwnerEmail    string `json:"ownerEmail"`
	OwnerPassword string `json:"ownerPassword"`
}

type updateRecord struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	WhatsApp   string `json:"whatsapp"`
	BrandColor string `json:"brand_color"`
	PlanType   string `json:"plan_type"`
	IsActive   bool   `json:"is_active"`
}

// New starts a fake API that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		owners: make(map[string]domain.Owner),
		tokens: make(map[string]bool),
		hits:   make(map[string]int),
		canned: make(map[string]cannedResponse),
		admin:  domain.AdminUser{ID: "admin-1", Email: AdminEmail, Role: domain.RoleSuperAdmin},
		nextID: 1,
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(s.record())

	sa := r.Group("/api/superadmin")
	{
		sa.POST("/auth/login", s.login)

		authed := sa.Group("")
		authed.Use(s.requireToken())
		{
			authed.GET("/stats", s.getStats)
			authed.GET("/salons", s.listSalons)
			authed.POST("/salons", s.createSalon)
			authed.GET("/salons/:id", s.getSalon)
			authed.PATCH("/salons/:id", s.updateSalon)
			authed.DELETE("/salons/:id", s.deleteSalon)
		}
	}
	return r
}

// record counts hits per route pattern and serves canned responses.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		s.mu.Lock()
		s.hits[key]++
		canned, ok := s.canned[key]
		s.mu.Unlock()

		if ok {
			c.Data(canned.status, "application/json", []byte(canned.body))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		s.mu.Lock()
		valid := token != "" && s.tokens[token]
		s.mu.Unlock()
		if !strings.HasPrefix(header, "Bearer ") || !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// --- knobs ---

// Respond makes the route pattern (e.g. "/api/superadmin/salons/:id") answer
// with the given status and raw body until cleared.
func (s *Server) Respond(method, pattern string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[method+" "+pattern] = cannedResponse{status: status, body: body}
}

// ClearResponse removes a canned response.
func (s *Server) ClearResponse(method, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.canned, method+" "+pattern)
}

// Hits returns how many requests reached the route pattern.
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// TotalHits returns how many requests reached any route.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// AddSalon seeds a salon and, when owner is non-nil, its owner.
func (s *Server) AddSalon(salon domain.Salon, owner *domain.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salons = append(s.salons, salon)
	if owner != nil {
		s.owners[salon.ID] = *owner
	}
}

// SetStats replaces the stats snapshot.
func (s *Server) SetStats(st domain.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = st
}

// SetAdminRole changes the role returned by login.
func (s *Server) SetAdminRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin.Role = role
}

// IssueToken returns a token the authed routes accept, without a login.
func (s *Server) IssueToken() string {
	tok := s.sign(s.admin.Email)
	s.mu.Lock()
	s.tokens[tok] = true
	s.mu.Unlock()
	return tok
}

// Created returns the payloads the create route received.
func (s *Server) Created() []CreateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CreateRecord(nil), s.created...)
}

// Salons returns the current server-side salon list.
func (s *Server) Salons() []domain.Salon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Salon(nil), s.salons...)
}

// --- handlers ---

func (s *Server) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid input"})
		return
	}
	if creds.Email != AdminEmail || creds.Password != AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "bad credentials"})
		return
	}
	tok := s.sign(creds.Email)
	s.mu.Lock()
	s.tokens[tok] = true
	user := s.admin
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": tok, "user": user})
}

func (s *Server) getStats(c *gin.Context) {
	s.mu.Lock()
	st := s.stats
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": st})
}

func (s *Server) listSalons(c *gin.Context) {
	s.mu.Lock()
	list := append([]domain.Salon{}, s.salons...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"ok": true, "salons": list})
}

func (s *Server) getSalon(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Salon not found"})
		return
	}
	resp := gin.H{"ok": true, "salon": s.salons[i], "owner": nil}
	if owner, ok := s.owners[id]; ok {
		resp["owner"] = owner
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createSalon(c *gin.Context) {
	var in CreateRecord
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid input"})
		return
	}
	if in.Name == "" || in.OwnerEmail == "" || in.OwnerPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name, ownerEmail and ownerPassword are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.owners {
		if o.Email == in.OwnerEmail {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "Owner email already in use"})
			return
		}
	}
	now := domain.NewTimestamp(time.Now().UTC())
	salon := domain.Salon{
		ID:         strconv.Itoa(s.nextID),
		Name:       in.Name,
		City:       in.City,
		Address:    in.Address,
		Phone:      in.Phone,
		WhatsApp:   in.WhatsApp,
		PlanType:   domain.PlanType(in.PlanType),
		BrandColor: domain.DefaultBrandColor,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	owner := domain.Owner{Email: in.OwnerEmail, Role: "owner", IsActive: true, CreatedAt: now}
	s.nextID++
	s.salons = append(s.salons, salon)
	s.owners[salon.ID] = owner
	s.created = append(s.created, in)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "salon": salon, "ownerUser": owner})
}

func (s *Server) updateSalon(c *gin.Context) {
	id := c.Param("id")
	var in updateRecord
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid input"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Salon not found"})
		return
	}
	sal := &s.salons[i]
	sal.Name = strings.TrimSpace(in.Name)
	sal.City = in.City
	sal.Address = in.Address
	sal.Phone = in.Phone
	sal.WhatsApp = in.WhatsApp
	sal.BrandColor = in.BrandColor
	sal.PlanType = domain.PlanType(in.PlanType)
	sal.IsActive = in.IsActive
	sal.UpdatedAt = domain.NewTimestamp(time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"ok": true, "salon": *sal})
}

func (s *Server) deleteSalon(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Salon not found"})
		return
	}
	s.salons = append(s.salons[:i], s.salons[i+1:]...)
	delete(s.owners, id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id string) int {
	for i, sal := range s.salons {
		if sal.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) sign(email string) string {
	s.mu.Lock()
	n := len(s.tokens)
	s.mu.Unlock()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"email": email,
		"role":  domain.RoleSuperAdmin,
		"jti":   strconv.Itoa(n),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := tok.SignedString(signingKey)
	if err != nil {
		panic("apitest: sign token: " + err.Error())
	}
	return signed
}
