package matching

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/match", func(mr chi.Router) {
		mr.Get("/gaid/{gaid}", searchByGaidHandler(svc))
		mr.Post("/exchange-code", searchByExchangeCodeHandler(svc))
		mr.Get("/registry", searchByRegistryHandler(svc))
		mr.Get("/breeders", searchByBreederHandler(svc))
	})

	// Emisión de códigos (dueño)
	r.Post("/animals/{animalID}/exchange-codes", issueExchangeCodeHandler(svc))
}

type exchangeCodeRequest struct {
	Code string `json:"code" validate:"required,min=10,max=16"`
}

type issueCodeRequest struct {
	// Horas de vigencia; 0 = default (14 días).
	TTLHours int `json:"ttl_hours" validate:"gte=0,lte=2160"`
}

type issuedCodeResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type candidateResponse struct {
	AnimalID       string                `json:"animal_id"`
	GAID           string                `json:"gaid"`
	TenantID       string                `json:"tenant_id"`
	MatchedBy      Method                `json:"matched_by"`
	Sex            animals.Sex           `json:"sex"`
	Species        string                `json:"species,omitempty"`
	Breed          string                `json:"breed,omitempty"`
	Name           string                `json:"name,omitempty"`
	PhotoURL       string                `json:"photo_url,omitempty"`
	BirthDate      *time.Time            `json:"birth_date,omitempty"`
	BirthYear      int                   `json:"birth_year,omitempty"`
	RegistryID     string                `json:"registry_id,omitempty"`
	RegistryNumber string                `json:"registry_number,omitempty"`
	BreederName    string                `json:"breeder_name,omitempty"`
	Titles         []animals.Title       `json:"titles,omitempty"`
	Competitions   []animals.Competition `json:"competitions,omitempty"`
	Permissions    privacy.Permissions   `json:"permissions"`
}

type breederMatchResponse struct {
	TenantID string              `json:"tenant_id"`
	Name     string              `json:"name"`
	Country  string              `json:"country,omitempty"`
	Score    float64             `json:"score"`
	Animals  []candidateResponse `json:"animals"`
}

// searchByGaidHandler godoc
// @Summary Buscar candidato por GAID
// @Description Lookup exacto por identificador global. Animales propios o con matching deshabilitado no aparecen (404).
// @Tags matching
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param gaid path string true "GAID (con o sin prefijo)"
// @Success 200 {object} candidateResponse
// @Failure 400 {string} string "malformed GAID"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /match/gaid/{gaid} [get]
func searchByGaidHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.SearchByGaid(r.Context(), tenantID, chi.URLParam(r, "gaid"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCandidateResponse(c))
	}
}

// searchByExchangeCodeHandler godoc
// @Summary Buscar candidato por exchange code
// @Description Consume el código (un solo uso). Vencido o ya usado => 410.
// @Tags matching
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body exchangeCodeRequest true "Código XXXXX-XXXXX"
// @Success 200 {object} candidateResponse
// @Failure 400 {string} string "invalid json / código mal formado"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Failure 410 {string} string "expired / already used"
// @Router /match/exchange-code [post]
func searchByExchangeCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req exchangeCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "code is required", http.StatusBadRequest)
			return
		}

		c, err := svc.SearchByExchangeCode(r.Context(), tenantID, req.Code)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCandidateResponse(c))
	}
}

// searchByRegistryHandler godoc
// @Summary Buscar candidatos por número de registro
// @Tags matching
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param registry_id query string true "Organismo emisor, ej. AKC"
// @Param number query string true "Número de registro"
// @Success 200 {array} candidateResponse
// @Failure 400 {string} string "registry_id y number requeridos"
// @Failure 401 {string} string "unauthorized"
// @Router /match/registry [get]
func searchByRegistryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.SearchByRegistry(r.Context(), tenantID, q.Get("registry_id"), q.Get("number"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]candidateResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCandidateResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// searchByBreederHandler godoc
// @Summary Buscar criaderos
// @Description Fuzzy match sobre nombre/email del tenant; devuelve sus animales compartibles filtrados por sexo/especie.
// @Tags matching
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param q query string true "Nombre o email del criadero"
// @Param sex query string false "MALE | FEMALE"
// @Param species query string false "Especie"
// @Param limit query int false "Máximo de criaderos"
// @Success 200 {array} breederMatchResponse
// @Failure 400 {string} string "query inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /match/breeders [get]
func searchByBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		f := BreederFilter{Species: q.Get("species")}
		if raw := strings.TrimSpace(q.Get("sex")); raw != "" {
			sex, ok := animals.ParseSex(raw)
			if !ok {
				http.Error(w, "sex must be MALE or FEMALE", http.StatusBadRequest)
				return
			}
			f.Sex = sex
		}
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			f.Limit = n
		}

		matches, err := svc.SearchByBreeder(r.Context(), tenantID, q.Get("q"), f)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]breederMatchResponse, 0, len(matches))
		for _, m := range matches {
			resp := breederMatchResponse{
				TenantID: m.Tenant.ID,
				Name:     m.Tenant.Name,
				Country:  m.Tenant.Country,
				Score:    m.Score,
				Animals:  make([]candidateResponse, 0, len(m.Animals)),
			}
			for _, c := range m.Animals {
				resp.Animals = append(resp.Animals, toCandidateResponse(c))
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// issueExchangeCodeHandler godoc
// @Summary Emitir exchange code
// @Description Genera un código de un solo uso para el animal. El código en claro sólo se devuelve en esta respuesta.
// @Tags matching
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body issueCodeRequest false "Vigencia opcional"
// @Success 201 {object} issuedCodeResponse
// @Failure 400 {string} string "ttl inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/exchange-codes [post]
func issueExchangeCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req issueCodeRequest
		// Body opcional.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "ttl_hours must be between 0 and 2160", http.StatusBadRequest)
			return
		}

		issued, err := svc.IssueExchangeCode(r.Context(), tenantID, chi.URLParam(r, "animalID"), time.Duration(req.TTLHours)*time.Hour)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, issuedCodeResponse{
			ID:        issued.ID,
			AnimalID:  issued.AnimalID,
			Code:      issued.Code,
			ExpiresAt: issued.ExpiresAt,
		})
	}
}

func toCandidateResponse(c Candidate) candidateResponse {
	v := c.View
	return candidateResponse{
		AnimalID:       v.AnimalID,
		GAID:           v.GAID,
		TenantID:       v.TenantID,
		MatchedBy:      c.Via,
		Sex:            v.Sex,
		Species:        v.Species,
		Breed:          v.Breed,
		Name:           v.Name,
		PhotoURL:       v.PhotoURL,
		BirthDate:      v.BirthDate,
		BirthYear:      v.BirthYear,
		RegistryID:     v.RegistryID,
		RegistryNumber: v.RegistryNumber,
		BreederName:    v.BreederName,
		Titles:         v.Titles,
		Competitions:   v.Competitions,
		Permissions:    v.Permissions,
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
