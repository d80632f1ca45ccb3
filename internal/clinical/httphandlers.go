package clinical

import (
	"encoding/json"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/auth"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"hospital-management/internal/logging"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/google/uuid"

	"github.com/go-chi/chi/v5"
)

type httpHandler struct {
	authorizer auth.Authorizer
	service    Service
	logger     *log.Logger
}

// Setup setups the routes handled by clinical context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, config configs.Config, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(config, dbConn)}

	// protected routes, only for doctors
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.DoctorRole))
		group.Post("/api/v1/appointments/{appointmentUUID}/treatment", handler.RecordTreatment)
	})

	// history is open to doctors and admins, so the role check happens in the service
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Get("/api/v1/patients/{patientUUID}/history", handler.GetPatientHistory)
	})
}

// parseUUIDParameter parses a UUID parameter into a valid UUID.
func (h httpHandler) parseUUIDParameter(parName string, r *http.Request) (uuid.UUID, error) {
	zeroUUID := uuid.UUID{}
	uuidPar := chi.URLParam(r, parName)
	if uuidPar == "" {
		return zeroUUID, apierrors.NewAPIError(apierrors.WithDetail(ErrInvalidIdentifier), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	parsedUUID, err := uuid.Parse(uuidPar)
	if err != nil {
		return zeroUUID, apierrors.NewAPIError(apierrors.WithDetail(ErrInvalidIdentifier), apierrors.WithHTTPStatusCode(http.StatusBadRequest))
	}
	return parsedUUID, nil
}

// writeError encodes the given service error into the proper HTTP response.
func (h httpHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
	switch v := err.(type) {
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

func (h httpHandler) RecordTreatment(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	request := new(TreatmentRequest)
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	treatment, err := h.service.RecordTreatment(r.Context(), user, appointmentUUID, *request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(treatment)
}

func (h httpHandler) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientUUID, err := h.parseUUIDParameter("patientUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	visits, err := h.service.GetPatientHistory(r.Context(), user, patientUUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(visits)
}
