package stub

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/portal-client/internal/portal"
)

func tokenHandler(store *Store, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse form")
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		user, ok := store.FindUser(username)
		if !ok || user.Password != password {
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}

		token, err := IssueToken(secret, user, time.Now())
		if err != nil {
			log.Printf("token signing failed: %v", err)
			writeError(w, http.StatusInternalServerError, "could not issue token")
			return
		}

		writeJSON(w, http.StatusOK, portal.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

func registerPatientHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft portal.PatientDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		if strings.TrimSpace(draft.FirstName) == "" ||
			strings.TrimSpace(draft.LastName) == "" ||
			strings.TrimSpace(draft.DOB) == "" ||
			strings.TrimSpace(draft.ContactNumber) == "" ||
			strings.TrimSpace(draft.Address) == "" {
			writeError(w, http.StatusUnprocessableEntity, "all patient fields are required")
			return
		}
		if _, err := time.Parse("2006-01-02", draft.DOB); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "dob must be a YYYY-MM-DD date")
			return
		}

		patient := store.AddPatient(draft)
		writeJSON(w, http.StatusOK, patient)
	}
}

func listPatientsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.ListPatients())
	}
}

func bookAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft portal.AppointmentDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		if _, ok := store.GetPatient(draft.PatientUID); !ok {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		if _, err := time.Parse(time.RFC3339, draft.AppointmentTime); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "appointment_time must be an RFC 3339 timestamp")
			return
		}
		if draft.DoctorID == "" {
			writeError(w, http.StatusUnprocessableEntity, "doctor_id is required")
			return
		}

		res := store.AddAppointment(draft)
		writeJSON(w, http.StatusOK, res)
	}
}

func getAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		res, ok := store.GetAppointment(id)
		if !ok {
			writeError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func dashboardStatsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Stats(time.Now()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, portal.ErrorBody{Detail: detail})
}
