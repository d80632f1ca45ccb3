package admin

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

// Setup setups the routes handled by administration context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, config configs.Config, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(config, dbConn)}

	// protected routes, for any authenticated user
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Get("/api/v1/departments", handler.ListDepartments)
		group.Get("/api/v1/departments/{departmentUUID}", handler.GetDepartment)
	})

	// protected routes, only for administrators
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.AdminRole))
		group.Post("/api/v1/departments", handler.CreateDepartment)
		group.Put("/api/v1/departments/{departmentUUID}", handler.UpdateDepartment)
		group.Delete("/api/v1/departments/{departmentUUID}", handler.DeleteDepartment)
		group.Get("/api/v1/doctors", handler.ListDoctors)
		group.Post("/api/v1/doctors", handler.RegisterDoctor)
		group.Put("/api/v1/doctors/{doctorUUID}", handler.UpdateDoctor)
		group.Delete("/api/v1/doctors/{doctorUUID}", handler.DeleteDoctor)
		group.Get("/api/v1/patients", handler.ListPatients)
		group.Put("/api/v1/patients/{patientUUID}", handler.UpdatePatient)
		group.Delete("/api/v1/patients/{patientUUID}", handler.DeletePatient)
		group.Get("/api/v1/admin/appointments", handler.ListAppointments)
		group.Delete("/api/v1/admin/appointments/{appointmentUUID}", handler.DeleteAppointment)
		group.Get("/api/v1/dashboard", handler.GetDashboard)
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

func (h httpHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(departments)
}

func (h httpHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	departmentUUID, err := h.parseUUIDParameter("departmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	department, err := h.service.GetDepartment(r.Context(), departmentUUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(department)
}

func (h httpHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	request := DepartmentRequest{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	department, err := h.service.CreateDepartment(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(department)
}

func (h httpHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	departmentUUID, err := h.parseUUIDParameter("departmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	request := DepartmentRequest{}
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	department, err := h.service.UpdateDepartment(r.Context(), departmentUUID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(department)
}

func (h httpHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	departmentUUID, err := h.parseUUIDParameter("departmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.service.DeleteDepartment(r.Context(), departmentUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(doctors)
}

func (h httpHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	registration := DoctorRegistration{}
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	doctor, err := h.service.RegisterDoctor(r.Context(), registration)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(doctor)
}

func (h httpHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorUUID, err := h.parseUUIDParameter("doctorUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	update := DoctorUpdate{}
	if err = json.NewDecoder(r.Body).Decode(&update); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	doctor, err := h.service.UpdateDoctor(r.Context(), doctorUUID, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(doctor)
}

func (h httpHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorUUID, err := h.parseUUIDParameter("doctorUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.service.DeleteDoctor(r.Context(), doctorUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListPatients(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(patients)
}

func (h httpHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientUUID, err := h.parseUUIDParameter("patientUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	update := PatientUpdate{}
	if err = json.NewDecoder(r.Body).Decode(&update); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	patient, err := h.service.UpdatePatient(r.Context(), patientUUID, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(patient)
}

func (h httpHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientUUID, err := h.parseUUIDParameter("patientUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.service.DeletePatient(r.Context(), patientUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListAppointments(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(records)
}

func (h httpHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentUUID, err := h.parseUUIDParameter("appointmentUUID", r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.service.DeleteAppointment(r.Context(), appointmentUUID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(dashboard)
}
