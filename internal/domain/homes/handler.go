package homes

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-foster-homes/internal/domain/identity"
	"pet-foster-homes/internal/middleware"
	"pet-foster-homes/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20 // 10MB

// ImageSaver guarda la imagen del multipart y devuelve el path público
// (p.ej. /uploads/abc.jpg). La implementación vive en adapters.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// RegisterRoutes monta todo /lares: check-email, authenticate y el
// lifecycle del lar. Los paths son contrato con el cliente existente.
func RegisterRoutes(r chi.Router, svc *Service, ids *identity.Service, issuer auth.TokenIssuer, images ImageSaver) {
	r.Route("/lares", func(lr chi.Router) {
		lr.Get("/check-email/{email}", checkEmailHandler(ids))
		lr.Post("/authenticate", authenticateHandler(ids, issuer))

		lr.Post("/", createHomeHandler(svc, ids, images))
		lr.Get("/", listHomesHandler(svc))
		lr.Get("/cities", listCitiesHandler(svc))
		lr.Get("/email/{email}", listByHostHandler(svc))
		lr.Get("/{homeID}", getHomeHandler(svc))
		lr.Put("/{homeID}", updateHomeHandler(svc, images))
		lr.Patch("/{homeID}/toggle-active", toggleActiveHandler(svc))
	})
}

type homeResponse struct {
	ID           string    `json:"id"`
	HostEmail    string    `json:"email"`
	HostName     string    `json:"hostName"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Capacity     int       `json:"capacity"`
	HasYard      bool      `json:"hasYard"`
	HasFence     bool      `json:"hasFence"`
	AvailableFor []string  `json:"availableFor"`
	Experience   string    `json:"experience,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// checkEmailHandler alimenta el branch registrar-vs-autenticar del
// formulario. exists=false es el camino feliz de un host nuevo.
func checkEmailHandler(ids *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		exists, err := ids.HostExists(r.Context(), email)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
	}
}

func authenticateHandler(ids *identity.Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if err := ids.AuthenticateHost(r.Context(), req.Email, req.Password); err != nil {
			// Respuesta genérica: no distingue cuenta desconocida de
			// contraseña incorrecta.
			writeJSON(w, http.StatusUnauthorized, authResponse{Success: false})
			return
		}

		resp := authResponse{Success: true}
		if issuer != nil {
			if tok, err := issuer.Issue(identity.NormalizeEmail(req.Email), auth.RoleHost); err == nil {
				resp.Token = tok
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createHomeHandler(svc *Service, ids *identity.Service, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		email := identity.NormalizeEmail(r.FormValue("email"))

		capacity, err := strconv.Atoi(strings.TrimSpace(r.FormValue("capacity")))
		if err != nil {
			writeError(w, http.StatusBadRequest, "capacity must be a number")
			return
		}

		// El gate corre antes de tocar el store de lares: si falla, no se
		// crea ni modifica ningún lar.
		gateIn := identity.EstablishInput{
			Email:           email,
			Name:            r.FormValue("hostName"),
			Phone:           r.FormValue("phone"),
			Password:        r.FormValue("password"),
			ConfirmPassword: optionalFormValue(r, "confirmPassword"),
		}
		if err := ids.GateHost(r.Context(), gateIn); err != nil {
			writeGateError(w, err)
			return
		}

		imagePath := ""
		if _, fh, err := r.FormFile("image"); err == nil {
			imagePath, err = images.Save(fh)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not store image")
				return
			}
		} else {
			writeError(w, http.StatusBadRequest, "image is required")
			return
		}

		h, err := svc.Create(r.Context(), email, CreateInput{
			HostName:     r.FormValue("hostName"),
			Address:      r.FormValue("address"),
			City:         r.FormValue("city"),
			State:        r.FormValue("state"),
			Capacity:     capacity,
			HasYard:      parseFormBool(r.FormValue("hasYard")),
			HasFence:     parseFormBool(r.FormValue("hasFence")),
			AvailableFor: r.MultipartForm.Value["availableFor"],
			Experience:   r.FormValue("experience"),
			Description:  r.FormValue("description"),
			ImagePath:    imagePath,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toHomeResponse(h))
	}
}

// updateHomeHandler hace PATCH semántico sobre PUT multipart: solo los
// campos presentes en el form tocan el registro.
func updateHomeHandler(svc *Service, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleHost {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		in := UpdateInput{
			HostName:    optionalFormValue(r, "hostName"),
			Address:     optionalFormValue(r, "address"),
			City:        optionalFormValue(r, "city"),
			State:       optionalFormValue(r, "state"),
			Experience:  optionalFormValue(r, "experience"),
			Description: optionalFormValue(r, "description"),
		}

		if v := optionalFormValue(r, "capacity"); v != nil {
			capacity, err := strconv.Atoi(strings.TrimSpace(*v))
			if err != nil {
				writeError(w, http.StatusBadRequest, "capacity must be a number")
				return
			}
			in.Capacity = &capacity
		}
		if v := optionalFormValue(r, "hasYard"); v != nil {
			b := parseFormBool(*v)
			in.HasYard = &b
		}
		if v := optionalFormValue(r, "hasFence"); v != nil {
			b := parseFormBool(*v)
			in.HasFence = &b
		}
		if vals, present := r.MultipartForm.Value["availableFor"]; present {
			in.AvailableFor = &vals
		}

		if _, fh, err := r.FormFile("image"); err == nil {
			path, err := images.Save(fh)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not store image")
				return
			}
			in.ImagePath = &path
		}

		h, err := svc.Update(r.Context(), chi.URLParam(r, "homeID"), claims.Email, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHomeResponse(h))
	}
}

func toggleActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleHost {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		h, err := svc.ToggleActive(r.Context(), chi.URLParam(r, "homeID"), claims.Email)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHomeResponse(h))
	}
}

func getHomeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "homeID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "home not found")
			return
		}
		writeJSON(w, http.StatusOK, toHomeResponse(h))
	}
}

func listHomesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context(), r.URL.Query().Get("city"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toHomeResponses(items))
	}
}

func listCitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cities, err := svc.ListCities(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, cities)
	}
}

func listByHostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByHost(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		writeJSON(w, http.StatusOK, toHomeResponses(items))
	}
}

func toHomeResponse(h Home) homeResponse {
	return homeResponse{
		ID:           h.ID,
		HostEmail:    h.HostEmail,
		HostName:     h.HostName,
		Address:      h.Address,
		City:         h.City,
		State:        h.State,
		Capacity:     h.Capacity,
		HasYard:      h.HasYard,
		HasFence:     h.HasFence,
		AvailableFor: h.AvailableFor,
		Experience:   h.Experience,
		Description:  h.Description,
		ImageURL:     h.ImagePath,
		Active:       h.Active,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func toHomeResponses(items []Home) []homeResponse {
	out := make([]homeResponse, 0, len(items))
	for _, h := range items {
		out = append(out, toHomeResponse(h))
	}
	return out
}

// optionalFormValue detecta presencia del campo en el form (para updates
// parciales): nil = el cliente no lo envió.
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

func parseFormBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
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
		writeError(w, http.StatusNotFound, "home not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (lares/solicitacoes) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
