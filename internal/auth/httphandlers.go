package auth

import (
	"encoding/json"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"hospital-management/internal/logging"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"
)

type httpHandler struct {
	service Service
	logger  *log.Logger
}

// Setup setups the routes handled by auth context.
func Setup(router *chi.Mux, logger *log.Logger, config configs.Config, dbConn database.Connection) Service {
	handler := &httpHandler{logger: logger, service: NewService(config, dbConn)}

	// public routes
	router.Group(func(group chi.Router) {
		group.Post("/api/v1/auth/login", handler.Authenticate)
		group.Post("/api/v1/auth/register", handler.Register)
		group.Put("/api/v1/auth/token", handler.RefreshToken)
	})

	// protected routes
	router.Group(func(group chi.Router) {
		group.Use(JwtValidator(handler.service))
		group.Get("/api/v1/auth/me", handler.GetAuthenticatedUser)
		group.Get("/api/v1/profile", handler.GetProfile)
		group.Put("/api/v1/profile", handler.UpdateProfile)
	})

	return handler.service
}

// writeError encodes the given service error into the proper HTTP response.
func (h httpHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
	switch v := err.(type) {
	case *UnauthorizedError:
		w.WriteHeader(http.StatusUnauthorized)
	case *apierrors.APIError:
		w.WriteHeader(v.HTTPStatusCode())
		_ = json.NewEncoder(w).Encode(v)
	case *apierrors.ValidationError:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(v)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Authenticate handles the request to authenticate a user.
func (h httpHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	credentials := new(Credentials)
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		logging.PrintlnError(h.logger, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tokens, err := h.service.Authenticate(r.Context(), *credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(tokens)
}

// Register handles the request to create a new account.
func (h httpHandler) Register(w http.ResponseWriter, r *http.Request) {
	registration := new(Registration)
	if err := json.NewDecoder(r.Body).Decode(registration); err != nil {
		logging.PrintlnError(h.logger, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.service.Register(r.Context(), *registration); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RefreshToken handles the request to return a new refresh token to the authenticated user.
func (h httpHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	tokens := new(Tokens)
	if err := json.NewDecoder(r.Body).Decode(tokens); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tokens, err := h.service.RefreshTokens(r.Context(), *tokens)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(tokens)
}

// GetAuthenticatedUser handles the request to return data about the authenticated user.
func (h httpHandler) GetAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(user)
}

// GetProfile handles the request to return the role profile of the authenticated user.
func (h httpHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	profile, err := h.service.GetProfile(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(profile)
}

// UpdateProfile handles the request to update the role profile of the authenticated user.
func (h httpHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	update := new(ProfileUpdate)
	if err = json.NewDecoder(r.Body).Decode(update); err != nil {
		logging.PrintlnError(h.logger, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err = h.service.UpdateProfile(r.Context(), user, *update); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
