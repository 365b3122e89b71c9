package stayrequests

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"pet-foster-homes/internal/domain/identity"
	"pet-foster-homes/internal/middleware"
	"pet-foster-homes/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// RegisterRoutes monta todo /solicitacoes (contrato con el cliente).
func RegisterRoutes(r chi.Router, svc *Service, ids *identity.Service, issuer auth.TokenIssuer, images ImageSaver) {
	r.Route("/solicitacoes", func(sr chi.Router) {
		sr.Get("/check-tutor-email/{email}", checkTutorEmailHandler(ids))
		sr.Post("/authenticate-tutor", authenticateTutorHandler(ids, issuer))

		sr.Post("/", createRequestHandler(svc, ids, images))
		sr.Get("/email/{email}", listByEmailHandler(svc))
		sr.Get("/{requestID}", getRequestHandler(svc))
		sr.Patch("/{requestID}/aceitar", decideHandler(svc, StatusApproved))
		sr.Patch("/{requestID}/negar", decideHandler(svc, StatusRejected))
		sr.Delete("/{requestID}", cancelHandler(svc))
	})
}

type stayRequestResponse struct {
	ID               string     `json:"id"`
	HomeID           string     `json:"homeId"`
	HostEmail        string     `json:"hostEmail"`
	RequesterName    string     `json:"requesterName"`
	RequesterEmail   string     `json:"requesterEmail"`
	RequesterPhone   string     `json:"requesterPhone"`
	PetName          string     `json:"petName"`
	PetType          string     `json:"petType"`
	PetAge           string     `json:"petAge,omitempty"`
	PetSize          string     `json:"petSize,omitempty"`
	HealthConditions string     `json:"healthConditions,omitempty"`
	Behavior         string     `json:"behavior,omitempty"`
	PetImageURL      string     `json:"petImageUrl,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Duration         string     `json:"duration,omitempty"`
	Message          string     `json:"message,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

func checkTutorEmailHandler(ids *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := ids.TutorExists(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
	}
}

func authenticateTutorHandler(ids *identity.Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if err := ids.AuthenticateTutor(r.Context(), req.Email, req.Password); err != nil {
			writeJSON(w, http.StatusUnauthorized, authResponse{Success: false})
			return
		}

		resp := authResponse{Success: true}
		if issuer != nil {
			if tok, err := issuer.Issue(identity.NormalizeEmail(req.Email), auth.RoleTutor); err == nil {
				resp.Token = tok
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createRequestHandler(svc *Service, ids *identity.Service, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		email := identity.NormalizeEmail(r.FormValue("requesterEmail"))

		// Gate primero: si la credencial falla no se crea la solicitud.
		gateIn := identity.EstablishInput{
			Email:           email,
			Name:            r.FormValue("requesterName"),
			Phone:           r.FormValue("requesterPhone"),
			Password:        r.FormValue("requesterPassword"),
			ConfirmPassword: optionalFormValue(r, "confirmPassword"),
		}
		if err := ids.GateTutor(r.Context(), gateIn); err != nil {
			writeGateError(w, err)
			return
		}

		var startDate *time.Time
		if v := strings.TrimSpace(r.FormValue("startDate")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
				return
			}
			startDate = &t
		}

		petImagePath := ""
		if _, fh, err := r.FormFile("petImage"); err == nil {
			petImagePath, err = images.Save(fh)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not store image")
				return
			}
		}

		sr, err := svc.Create(r.Context(), email, CreateInput{
			HomeID:           r.FormValue("homeId"),
			TutorName:        r.FormValue("requesterName"),
			TutorPhone:       r.FormValue("requesterPhone"),
			PetName:          r.FormValue("petName"),
			PetType:          r.FormValue("petType"),
			PetAge:           r.FormValue("petAge"),
			PetSize:          r.FormValue("petSize"),
			HealthConditions: r.FormValue("healthConditions"),
			Behavior:         r.FormValue("behavior"),
			PetImagePath:     petImagePath,
			StartDate:        startDate,
			Duration:         r.FormValue("duration"),
			Message:          r.FormValue("message"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(sr))
	}
}

func decideHandler(svc *Service, target Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleHost {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var (
			sr  StayRequest
			err error
		)
		if target == StatusApproved {
			sr, err = svc.Approve(r.Context(), chi.URLParam(r, "requestID"), claims.Email)
		} else {
			sr, err = svc.Reject(r.Context(), chi.URLParam(r, "requestID"), claims.Email)
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sr))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleTutor {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.Cancel(r.Context(), chi.URLParam(r, "requestID"), claims.Email); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "request not found")
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sr))
	}
}

func listByEmailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		out := make([]stayRequestResponse, 0, len(items))
		for _, sr := range items {
			out = append(out, toResponse(sr))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toResponse(sr StayRequest) stayRequestResponse {
	return stayRequestResponse{
		ID:               sr.ID,
		HomeID:           sr.HomeID,
		HostEmail:        sr.HostEmail,
		RequesterName:    sr.TutorName,
		RequesterEmail:   sr.TutorEmail,
		RequesterPhone:   sr.TutorPhone,
		PetName:          sr.PetName,
		PetType:          string(sr.PetType),
		PetAge:           sr.PetAge,
		PetSize:          sr.PetSize,
		HealthConditions: sr.HealthConditions,
		Behavior:         sr.Behavior,
		PetImageURL:      sr.PetImagePath,
		StartDate:        sr.StartDate,
		Duration:         sr.Duration,
		Message:          sr.Message,
		Status:           string(sr.Status),
		CreatedAt:        sr.CreatedAt,
		UpdatedAt:        sr.UpdatedAt,
	}
}

func optionalFormValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func writeGateError(w http.ResponseWriter, err error) {
	if errors.Is(err, identity.ErrInvalidCredential) {
		writeError(w, http.StatusUnauthorized, "invalid credential")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "request not found")
	case errors.Is(err, ErrBadState):
		writeError(w, http.StatusConflict, "invalid state transition")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
