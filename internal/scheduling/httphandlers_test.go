package scheduling

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hospital-management/internal/auth"
	"hospital-management/internal/configs"
	"hospital-management/internal/mock"
	"log"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type emptyWriter struct{}

func (e emptyWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}

var logger = log.New(&emptyWriter{}, "", log.LstdFlags)

type mockAuthorizer struct {
	mockValidateToken        func(ctx context.Context, token string) (*auth.User, error)
	mockRefreshTokens        func(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error)
	mockGetAuthenticatedUser func(ctx context.Context) (auth.User, error)
}

func (m mockAuthorizer) ValidateToken(ctx context.Context, token string) (*auth.User, error) {
	return m.mockValidateToken(ctx, token)
}

func (m mockAuthorizer) RefreshTokens(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error) {
	return m.mockRefreshTokens(ctx, tokens)
}

func (m mockAuthorizer) GetAuthenticatedUser(ctx context.Context) (auth.User, error) {
	return m.mockGetAuthenticatedUser(ctx)
}

func mockPatientUser() *auth.User {
	return &auth.User{ID: 1, UUID: uuid.New(), Username: "patient", Role: auth.PatientRole}
}

func mockDoctorUser() *auth.User {
	return &auth.User{ID: 2, UUID: uuid.New(), Username: "doctor", Role: auth.DoctorRole}
}

func patientAuth() mockAuthorizer {
	return mockAuthorizer{
		mockValidateToken: func(ctx context.Context, token string) (*auth.User, error) {
			return mockPatientUser(), nil
		},
		mockGetAuthenticatedUser: func(ctx context.Context) (auth.User, error) {
			return *mockPatientUser(), nil
		},
	}
}

func doctorAuth() mockAuthorizer {
	return mockAuthorizer{
		mockValidateToken: func(ctx context.Context, token string) (*auth.User, error) {
			return mockDoctorUser(), nil
		},
		mockGetAuthenticatedUser: func(ctx context.Context) (auth.User, error) {
			return *mockDoctorUser(), nil
		},
	}
}

func doctorColumns() []string {
	return []string{"id", "uuid", "user_id", "department_id", "full_name", "qualification"}
}

func patientColumns() []string {
	return []string{"id", "uuid", "user_id", "full_name"}
}

func appointmentColumns() []string {
	return []string{"id", "uuid", "doctor_id", "patient_id", "date", "time", "status"}
}

func availabilityColumns() []string {
	return []string{"id", "uuid", "doctor_id", "day_of_week", "start_time", "end_time"}
}

func withFindDoctorByUUIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUUIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindDoctorByUUIDError() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUUIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrConnDone)
	}
}

func withFindDoctorByUserIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findDoctorByUserIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindPatientByUserIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findPatientByUserIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListAvailabilityResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listAvailabilityQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withInsertAvailabilityResult(result driver.Result) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(insertAvailabilityQuery)).WillReturnResult(result)
	}
}

func withListDoctorAppointmentsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listDoctorAppointmentsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListPatientAppointmentsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listPatientAppointmentsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindAppointmentByUUIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findAppointmentByUUIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindConflictingAppointmentResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findConflictingAppointmentQuery)).WillReturnRows(rows)
	}
}

func withInsertAppointmentResult(result driver.Result) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(insertAppointmentQuery)).WillReturnResult(result)
	}
}

func withInsertAppointmentUniqueViolation() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(insertAppointmentQuery)).WillReturnError(&pq.Error{Code: "23505"})
	}
}

func withUpdateAppointmentScheduleResult(result driver.Result) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(updateAppointmentScheduleQuery)).WillReturnResult(result)
	}
}

func withUpdateAppointmentStatusResult(result driver.Result) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(updateAppointmentStatusQuery)).WillReturnResult(result)
	}
}

func TestGetDoctorSlots(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	doctorUUID := uuid.New()
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should return the doctor's projected slots",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, nil, "Dr. Jane Roe", nil)),
					withListAvailabilityResult(sqlmock.NewRows(availabilityColumns()).AddRow(1, uuid.New(), 1, "Monday", "09:00:00", "09:30:00")),
					withListDoctorAppointmentsResult(sqlmock.NewRows([]string{"id", "uuid", "doctor_id", "patient_id", "patient_name", "date", "time", "status"})),
				},
			},
			want: http.StatusOK,
		},
		{
			name: "should not return slots because the doctor was not found",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns())),
				},
			},
			want: http.StatusNotFound,
		},
		{
			name: "should not return slots due to a database error",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUUIDError(),
				},
			},
			want: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, patientAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/doctors/%s/slots", doctorUUID), nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestBook(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	doctorUUID := uuid.New()
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		request       BookingRequest
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should book the slot",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, nil, "Dr. Jane Roe", nil)),
					withFindConflictingAppointmentResult(sqlmock.NewRows(appointmentColumns())),
					withInsertAppointmentResult(sqlmock.NewResult(1, 1)),
				},
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "2026-09-07", Time: "09:00:00"},
			},
			want: http.StatusCreated,
		},
		{
			name: "should not book the slot because it is already taken",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, nil, "Dr. Jane Roe", nil)),
					withFindConflictingAppointmentResult(sqlmock.NewRows(appointmentColumns()).AddRow(9, uuid.New(), 1, 7, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "2026-09-07", Time: "09:00:00"},
			},
			want: http.StatusConflict,
		},
		{
			name: "should not book the slot because another booking won the race",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, doctorUUID, 2, nil, "Dr. Jane Roe", nil)),
					withFindConflictingAppointmentResult(sqlmock.NewRows(appointmentColumns())),
					withInsertAppointmentUniqueViolation(),
				},
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "2026-09-07", Time: "09:00:00"},
			},
			want: http.StatusConflict,
		},
		{
			name: "should not book the slot because the doctor was not found",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindDoctorByUUIDResult(sqlmock.NewRows(doctorColumns())),
				},
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "2026-09-07", Time: "09:00:00"},
			},
			want: http.StatusNotFound,
		},
		{
			name: "should not book the slot because the user has no patient profile",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns())),
				},
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "2026-09-07", Time: "09:00:00"},
			},
			want: http.StatusForbidden,
		},
		{
			name: "should not book the slot because the date is invalid",
			args: args{
				dbConn:  mock.MustCreateConnectionMock(),
				request: BookingRequest{DoctorUUID: doctorUUID, Date: "07/09/2026", Time: "09:00:00"},
			},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, patientAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			body, _ := json.Marshal(tt.args.request)
			req, _ := http.NewRequest("POST", "/api/v1/appointments", bytes.NewReader(body))
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestReschedule(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	appointmentUUID := uuid.New()
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		request       RescheduleRequest
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should move the appointment and revive it to scheduled",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusCancelled)),
					withFindConflictingAppointmentResult(sqlmock.NewRows(appointmentColumns())),
					withUpdateAppointmentScheduleResult(sqlmock.NewResult(0, 1)),
				},
				request: RescheduleRequest{Date: "2026-09-08", Time: "10:00:00"},
			},
			want: http.StatusOK,
		},
		{
			name: "should not move the appointment because the new slot is taken",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
					withFindConflictingAppointmentResult(sqlmock.NewRows(appointmentColumns()).AddRow(9, uuid.New(), 1, 7, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), "10:00:00", StatusScheduled)),
				},
				request: RescheduleRequest{Date: "2026-09-08", Time: "10:00:00"},
			},
			want: http.StatusConflict,
		},
		{
			name: "should not move the appointment because it belongs to another patient",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 7, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
				request: RescheduleRequest{Date: "2026-09-08", Time: "10:00:00"},
			},
			want: http.StatusForbidden,
		},
		{
			name: "should not move the appointment because it was not found",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns())),
				},
				request: RescheduleRequest{Date: "2026-09-08", Time: "10:00:00"},
			},
			want: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, patientAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			body, _ := json.Marshal(tt.args.request)
			req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/v1/appointments/%s", appointmentUUID), bytes.NewReader(body))
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestCancelByPatient(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	appointmentUUID := uuid.New()
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should cancel the scheduled appointment",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
					withUpdateAppointmentStatusResult(sqlmock.NewResult(0, 1)),
				},
			},
			want: http.StatusNoContent,
		},
		{
			name: "should not cancel the appointment because it is already completed",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusCompleted)),
				},
			},
			want: http.StatusConflict,
		},
		{
			name: "should not cancel the appointment because it is already cancelled",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusCancelled)),
				},
			},
			want: http.StatusConflict,
		},
		{
			name: "should not cancel the appointment because it belongs to another patient",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 7, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, patientAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/appointments/%s/cancel", appointmentUUID), nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestCancelByDoctor(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	appointmentUUID := uuid.New()
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should cancel the scheduled appointment",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
					withUpdateAppointmentStatusResult(sqlmock.NewResult(0, 1)),
				},
			},
			want: http.StatusNoContent,
		},
		{
			name: "should cancel even a completed appointment",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 1, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusCompleted)),
					withUpdateAppointmentStatusResult(sqlmock.NewResult(0, 1)),
				},
			},
			want: http.StatusNoContent,
		},
		{
			name: "should not cancel an appointment assigned to another doctor",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
					withFindAppointmentByUUIDResult(sqlmock.NewRows(appointmentColumns()).AddRow(5, appointmentUUID, 9, 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, doctorAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/doctor/appointments/%s/cancel", appointmentUUID), nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestAddAvailability(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		request       AvailabilityRequest
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should add the availability entry",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
					withInsertAvailabilityResult(sqlmock.NewResult(1, 1)),
				},
				request: AvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00:00", EndTime: "09:30:00"},
			},
			want: http.StatusCreated,
		},
		{
			name: "should not add the entry because the day name is unknown",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
				},
				request: AvailabilityRequest{DayOfWeek: "Funday", StartTime: "09:00:00", EndTime: "09:30:00"},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "should not add the entry because the user has no doctor profile",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns())),
				},
				request: AvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00:00", EndTime: "09:30:00"},
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, doctorAuth(), config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			body, _ := json.Marshal(tt.args.request)
			req, _ := http.NewRequest("POST", "/api/v1/availability", bytes.NewReader(body))
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestListAppointments(t *testing.T) {
	config := configs.MustLoad("./../../test/testdata/config_valid.json")
	type args struct {
		authorizer    mockAuthorizer
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		target        string
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should list the patient's appointments",
			args: args{
				authorizer: patientAuth(),
				dbConn:     mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByUserIDResult(sqlmock.NewRows(patientColumns()).AddRow(1, uuid.New(), 1, "John Doe")),
					withListPatientAppointmentsResult(sqlmock.NewRows([]string{"id", "uuid", "doctor_id", "patient_id", "doctor_name", "date", "time", "status"}).AddRow(5, uuid.New(), 1, 1, "Dr. Jane Roe", time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
				target: "/api/v1/appointments",
			},
			want: http.StatusOK,
		},
		{
			name: "should list the doctor's appointments",
			args: args{
				authorizer: doctorAuth(),
				dbConn:     mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindDoctorByUserIDResult(sqlmock.NewRows(doctorColumns()).AddRow(1, uuid.New(), 2, nil, "Dr. Jane Roe", nil)),
					withListDoctorAppointmentsResult(sqlmock.NewRows([]string{"id", "uuid", "doctor_id", "patient_id", "patient_name", "date", "time", "status"}).AddRow(5, uuid.New(), 1, 1, "John Doe", time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "09:00:00", StatusScheduled)),
				},
				target: "/api/v1/doctor/appointments",
			},
			want: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, tt.args.authorizer, config, tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", tt.args.target, nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}
