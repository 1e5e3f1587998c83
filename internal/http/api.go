package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vicbrooke/cyber-kittens/internal/auth"
	"github.com/vicbrooke/cyber-kittens/internal/service"
)

const welcomePage = `
<h1>Welcome to Cyber Kittens!</h1>
<p>Cats are available at <a href="/kittens/1">/kittens/:id</a></p>
<p>Create a new cat at <b><code>POST /kittens</code></b> and delete one at <b><code>DELETE /kittens/:id</code></b></p>
<p>Log in via POST /login or register via POST /register</p>
`

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	kittens service.KittenService
	tokens  *auth.TokenService
	logger  *logrus.Logger
}

func NewHandler(users service.UserService, kittens service.KittenService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:   users,
		kittens: kittens,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	router.GET("/", h.welcome)
	router.POST("/register", h.identity(), h.register)
	router.POST("/login", h.identity(), h.login)

	kittens := router.Group("/kittens", h.identity())
	{
		kittens.GET("", h.listKittens)
		kittens.POST("", h.createKitten)
		kittens.GET("/:id", h.getKitten)
		kittens.DELETE("/:id", h.deleteKitten)
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createKittenRequest struct {
	Name  string `json:"name" binding:"required"`
	Age   int    `json:"age"`
	Color string `json:"color" binding:"required"`
}

// KittenResponse is the owner-facing view of a kitten. Owner is set only on
// single-record reads; creation deliberately omits it.
type KittenResponse struct {
	ID    int64  `json:"id,omitempty"`
	Age   int    `json:"age"`
	Color string `json:"color"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
}

func (h *Handler) welcome(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// duplicate usernames included: registration failures are not
		// distinguished to callers
		h.serverError(c, "register user", err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "token": token})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.serverError(c, "authenticate user", err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "token": token})
}

func (h *Handler) getKitten(c *gin.Context) {
	principal := principalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kitten id"})
		return
	}

	kitten, err := h.kittens.Get(c.Request.Context(), id, principal.UserID)
	if err != nil {
		h.kittenError(c, err)
		return
	}

	c.JSON(http.StatusOK, KittenResponse{
		Age:   kitten.Age,
		Color: kitten.Color,
		Name:  kitten.Name,
		Owner: kitten.OwnerUsername,
	})
}

func (h *Handler) listKittens(c *gin.Context) {
	principal := principalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	kittens, err := h.kittens.ListByOwner(c.Request.Context(), principal.UserID)
	if err != nil {
		h.serverError(c, "list kittens", err)
		return
	}

	resp := make([]KittenResponse, len(kittens))
	for i, kitten := range kittens {
		resp[i] = KittenResponse{
			ID:    kitten.ID,
			Age:   kitten.Age,
			Color: kitten.Color,
			Name:  kitten.Name,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createKitten(c *gin.Context) {
	principal := principalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createKittenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Age < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age must not be negative"})
		return
	}

	kitten, err := h.kittens.Create(c.Request.Context(), principal.UserID, req.Name, req.Age, req.Color)
	if err != nil {
		h.serverError(c, "create kitten", err)
		return
	}

	c.JSON(http.StatusCreated, KittenResponse{
		Age:   kitten.Age,
		Color: kitten.Color,
		Name:  kitten.Name,
	})
}

func (h *Handler) deleteKitten(c *gin.Context) {
	principal := principalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kitten id"})
		return
	}

	if err := h.kittens.Delete(c.Request.Context(), id, principal.UserID); err != nil {
		h.kittenError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// kittenError maps lookup failures: missing record is 404, wrong owner is
// 401 (same status as unauthenticated), anything else is a server error.
func (h *Handler) kittenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrKittenNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "kitten not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		h.serverError(c, "lookup kitten", err)
	}
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"op":         op,
	}).Errorf("server error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
