package scheduling

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

// Setup setups the routes handled by scheduling context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, config configs.Config, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(config, dbConn)}

	// protected routes, only for patients
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.PatientRole))
		group.Get("/api/v1/doctors/{doctorUUID}/slots", handler.GetDoctorSlots)
		group.Get("/api/v1/appointments", handler.ListPatientAppointments)
		group.Post("/api/v1/appointments", handler.Book)
		group.Get("/api/v1/appointments/{appointmentUUID}/slots", handler.GetRescheduleSlots)
		group.Put("/api/v1/appointments/{appointmentUUID}", handler.Reschedule)
		group.Post("/api/v1/appointments/{appointmentUUID}/cancel", handler.CancelByPatient)
	})

	// protected routes, only for doctors
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.DoctorRole))
		group.Get("/api/v1/availability", handler.ListAvailability)
		group.Post("/api/v1/availability", handler.AddAvailability)
		group.Get("/api/v1/doctor/appointments", handler.ListDoctorAppointments)
		group.Post("/api/v1/doctor/appointments/{appointmentUUID}/cancel", handler.CancelByDoctor)
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

// authenticatedUser gets the user associated to the request context, aborting
// with a 401 when there is none.
func (h httpHandler) authenticatedUser(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user, err := h.authorizer.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return auth.User{}, false
	}
	return user, true
}

func (h httpHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorUUID, err := h.parseUUIDParameter("doctorUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	slots, err := h.service.GetDoctorSlots(r.Context(), user, doctorUUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(slots)
}

func (h httpHandler) GetRescheduleSlots(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	slots, err := h.service.GetRescheduleSlots(r.Context(), user, appointmentUUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(slots)
}

func (h httpHandler) Book(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	request := new(BookingRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	appointment, err := h.service.Book(r.Context(), user, *request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(appointment)
}

func (h httpHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	request := new(RescheduleRequest)
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	appointment, err := h.service.Reschedule(r.Context(), user, appointmentUUID, *request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointment)
}

func (h httpHandler) CancelByPatient(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	if err = h.service.CancelByPatient(r.Context(), user, appointmentUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) CancelByDoctor(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	if err = h.service.CancelByDoctor(r.Context(), user, appointmentUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	request := new(AvailabilityRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	availability, err := h.service.AddAvailability(r.Context(), user, *request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(availability)
}

func (h httpHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	availability, err := h.service.ListAvailability(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(availability)
}

func (h httpHandler) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	appointments, err := h.service.ListPatientAppointments(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointments)
}

func (h httpHandler) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	appointments, err := h.service.ListDoctorAppointments(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(appointments)
}
