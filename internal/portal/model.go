package portal

import (
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusWalkIn    AppointmentStatus = "WALK_IN"
)

// PatientDraft is the payload for POST /api/v1/patients/register.
// It only lives for the duration of one submission.
type PatientDraft struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// AppointmentDraft is the payload for POST /api/v1/appointments/book.
// PatientUID must reference a registered patient and AppointmentTime must be
// an RFC 3339 timestamp; the backend owns both checks.
type AppointmentDraft struct {
	PatientUID      int64             `json:"patient_uid"`
	DoctorID        string            `json:"doctor_id"`
	AppointmentTime string            `json:"appointment_time"`
	Status          AppointmentStatus `json:"status"`
}

// AppointmentResult is the backend's booking record. Immutable once received;
// consumed by the artifact generator and the notification channel.
type AppointmentResult struct {
	ID              string            `json:"id"`
	PatientUID      int64             `json:"patient_uid"`
	DoctorID        string            `json:"doctor_id"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Status          AppointmentStatus `json:"status"`
	QueueToken      string            `json:"queue_token"`
}

type RegisterResult struct {
	PatientUID int64 `json:"patient_uid"`
}

type StatusResult struct {
	ID     string            `json:"id"`
	Status AppointmentStatus `json:"status"`
}

type PatientSummary struct {
	PatientUID    int64  `json:"patient_uid"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

type DashboardStats struct {
	TotalPatients     int `json:"total_patients"`
	TodayAppointments int `json:"today_appointments"`
	PendingQueue      int `json:"pending_queue"`
}

// ErrorBody is the backend's failure shape on every endpoint.
type ErrorBody struct {
	Detail string `json:"detail"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
