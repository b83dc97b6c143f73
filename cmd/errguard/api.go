package main

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/errguard/auth"
	"github.com/kbukum/errguard/auth/authctx"
	"github.com/kbukum/errguard/auth/jwt"
	"github.com/kbukum/errguard/auth/password"
	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
	"github.com/kbukum/errguard/server"
	"github.com/kbukum/errguard/server/endpoint"
	"github.com/kbukum/errguard/server/middleware"
	"github.com/kbukum/errguard/validation"
)

// Claims is the access token payload.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Registered implements jwt.Claims.
func (c *Claims) Registered() *jwt.RegisteredClaims { return &c.RegisteredClaims }

type user struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	passwordHash string
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userStore is an in-memory user table keyed by ID.
type userStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*user
	byEmail map[string]uuid.UUID
}

func newUserStore() *userStore {
	return &userStore{
		byID:    make(map[uuid.UUID]*user),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *userStore) create(u *user) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return apperrors.Conflict("A user with this email already exists.")
	}
	s.byID[u.ID] = u
	s.byEmail[key] = u.ID
	return nil
}

func (s *userStore) get(id uuid.UUID) (*user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	return u, nil
}

func (s *userStore) byEmailAddr(email string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

func (s *userStore) delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return apperrors.NotFound("User not found.")
	}
	delete(s.byEmail, strings.ToLower(u.Email))
	delete(s.byID, id)
	return nil
}

func (s *userStore) ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.byID == nil {
		return apperrors.ServiceUnavailable("user store not initialised")
	}
	return nil
}

// api holds the route handlers. tokens is nil when auth is disabled.
type api struct {
	users  *userStore
	hasher *password.Hasher
	tokens *jwt.Service[*Claims]
}

func newAPI(cfg *auth.Config) (*api, error) {
	a := &api{
		users:  newUserStore(),
		hasher: password.NewHasher(cfg.Password),
	}
	if cfg.Enabled {
		svc, err := jwt.NewService(cfg.JWT, func() *Claims { return &Claims{} })
		if err != nil {
			return nil, err
		}
		a.tokens = svc
	}
	return a, nil
}

func (a *api) register(srv *server.Server) {
	w := srv.Wrapper()
	engine := srv.GinEngine()

	engine.GET("/health", endpoint.Health(serviceName))
	engine.GET("/ready", w.Gin(endpoint.Ready(serviceName, map[string]endpoint.Check{
		"users": a.users.ping,
	})))

	engine.POST("/users", w.Gin(a.createUser))
	engine.GET("/users/:id", w.Gin(a.getUser))
	engine.GET("/boom", w.Gin(func(*gin.Context) error {
		panic("unexpected failure in /boom")
	}))

	if a.tokens != nil {
		engine.POST("/login", w.Gin(a.login))
		authed := engine.Group("/", middleware.GinWrap(middleware.Auth(w, middleware.AuthConfig{
			Validator: auth.TokenValidatorFunc(a.tokens.Validator()),
		})))
		authed.GET("/me", w.Gin(a.me))
	}

	srv.HandleValue("GET /v/users/{id}", a.getUserValue)
	srv.HandleValue("DELETE /v/users/{id}", a.deleteUserValue)
}

func (a *api) createUser(c *gin.Context) error {
	var req createUserRequest
	if err := server.BindJSON(c, &req); err != nil {
		return err
	}
	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	u := &user{ID: uuid.New(), Name: req.Name, Email: req.Email, passwordHash: hash}
	if err := a.users.create(u); err != nil {
		return err
	}
	server.RespondCreated(c, u)
	return nil
}

func (a *api) getUser(c *gin.Context) error {
	id, err := validation.ParseUUID("id", c.Param("id"))
	if err != nil {
		return err
	}
	u, err := a.users.get(id)
	if err != nil {
		return err
	}
	server.RespondOK(c, u)
	return nil
}

func (a *api) login(c *gin.Context) error {
	var req loginRequest
	if err := server.BindJSON(c, &req); err != nil {
		return err
	}
	u, ok := a.users.byEmailAddr(req.Email)
	if !ok {
		return apperrors.Unauthorized(password.MessageInvalidCredentials)
	}
	if err := a.hasher.Verify(req.Password, u.passwordHash); err != nil {
		return err
	}
	token, err := a.tokens.Issue(&Claims{Email: u.Email}, u.ID.String())
	if err != nil {
		return err
	}
	server.RespondOK(c, tokenResponse{AccessToken: token, TokenType: "Bearer"})
	return nil
}

func (a *api) me(c *gin.Context) error {
	claims, err := authctx.Require[*Claims](c.Request.Context())
	if err != nil {
		return err
	}
	id, err := validation.ParseUUID("sub", claims.Subject)
	if err != nil {
		return apperrors.Unauthorized("").WithCause(err)
	}
	u, err := a.users.get(id)
	if err != nil {
		return err
	}
	server.RespondOK(c, u)
	return nil
}

func (a *api) getUserValue(r *http.Request) (*handler.Response, error) {
	id, err := validation.ParseUUID("id", r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	u, err := a.users.get(id)
	if err != nil {
		return nil, err
	}
	return server.Data(http.StatusOK, u)
}

func (a *api) deleteUserValue(r *http.Request) (*handler.Response, error) {
	id, err := validation.ParseUUID("id", r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	return nil, a.users.delete(id)
}
