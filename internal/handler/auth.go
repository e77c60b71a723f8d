package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/live"
	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	auth   *service.AuthService
	search *service.SearchService
	watch  *live.Watch
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, search *service.SearchService, watch *live.Watch) *AuthHandler {
	return &AuthHandler{auth: auth, search: search, watch: watch}
}

// SessionResponse is the session as exposed to the browser. The token
// itself never leaves the gateway.
type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          domain.User `json:"user"`
	Dashboard     string      `json:"dashboard,omitempty"`
}

func sessionResponse(sess domain.Session) SessionResponse {
	resp := SessionResponse{Authenticated: sess.Authenticated(), User: sess.User}
	if sess.Authenticated() {
		resp.Dashboard = dashboardPath(sess.User.Role)
	}
	return resp
}

// dashboardPath picks the role-specific entry view.
func dashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleProvider:
		return "/dashboard/provider"
	case domain.RoleAdmin:
		return "/dashboard/admin"
	default:
		return "/dashboard/driver"
	}
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingCredentials)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), middleware.SessionID(c), req.Phone, req.Password)
	if err != nil {
		respondError(c, nil, err)
		return
	}

	respondJSON(c, http.StatusOK, sessionResponse(sess))
}

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingCredentials)
		return
	}

	sess, err := h.auth.Register(c.Request.Context(), middleware.SessionID(c), backend.RegisterRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, nil, err)
		return
	}

	respondJSON(c, http.StatusCreated, sessionResponse(sess))
}

// Logout handles POST /v1/auth/logout. Transient per-session state
// (search machine, live location) goes with the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
		respondError(c, nil, err)
		return
	}
	h.search.Drop(sid)
	h.watch.Forget(sid)

	respondJSON(c, http.StatusOK, gin.H{"redirect": "/"})
}

// Me handles GET /v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	respondJSON(c, http.StatusOK, sessionResponse(middleware.CurrentSession(c)))
}
