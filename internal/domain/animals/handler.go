package animals

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))

		// Registro completo: sólo el tenant dueño.
		ar.Get("/{animalID}", getAnimalHandler(svc))

		// Aristas locales (mismo tenant). Las cross-tenant van por link-requests.
		ar.Put("/{animalID}/parents", setParentsHandler(svc))
	})
}

type createAnimalRequest struct {
	Name            string        `json:"name"`
	Species         string        `json:"species"`
	Breed           string        `json:"breed"`
	Sex             string        `json:"sex"`
	BirthDate       string        `json:"birth_date"` // YYYY-MM-DD opcional
	PhotoURL        string        `json:"photo_url"`
	RegistryID      string        `json:"registry_id"`
	RegistryNumber  string        `json:"registry_number"`
	BreederName     string        `json:"breeder_name"`
	Titles          []Title       `json:"titles"`
	Competitions    []Competition `json:"competitions"`
	HealthSummary   string        `json:"health_summary"`
	GeneticsSummary string        `json:"genetics_summary"`
}

type setParentsRequest struct {
	// nil = no tocar; "" = limpiar.
	SireID *string `json:"sire_id"`
	DamID  *string `json:"dam_id"`
}

type animalResponse struct {
	ID              string        `json:"id"`
	TenantID        string        `json:"tenant_id"`
	GAID            string        `json:"gaid"`
	Name            string        `json:"name"`
	Species         string        `json:"species"`
	Breed           string        `json:"breed"`
	Sex             Sex           `json:"sex"`
	BirthDate       *time.Time    `json:"birth_date,omitempty"`
	PhotoURL        string        `json:"photo_url,omitempty"`
	RegistryID      string        `json:"registry_id,omitempty"`
	RegistryNumber  string        `json:"registry_number,omitempty"`
	BreederName     string        `json:"breeder_name,omitempty"`
	Titles          []Title       `json:"titles"`
	Competitions    []Competition `json:"competitions"`
	HealthSummary   string        `json:"health_summary,omitempty"`
	GeneticsSummary string        `json:"genetics_summary,omitempty"`
	SireID          *string       `json:"sire_id,omitempty"`
	DamID           *string       `json:"dam_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Crea un animal en el tenant del caller y le asigna un GAID estable. Autenticación: `X-Debug-Tenant-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		a, err := svc.Create(r.Context(), tenantID, CreateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Sex:             req.Sex,
			BirthDate:       bd,
			PhotoURL:        req.PhotoURL,
			RegistryID:      req.RegistryID,
			RegistryNumber:  req.RegistryNumber,
			BreederName:     req.BreederName,
			Titles:          req.Titles,
			Competitions:    req.Competitions,
			HealthSummary:   req.HealthSummary,
			GeneticsSummary: req.GeneticsSummary,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales del tenant
// @Tags animals
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param sex query string false "MALE | FEMALE"
// @Param species query string false "Especie"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		f := Filter{Species: strings.ToLower(strings.TrimSpace(q.Get("species")))}
		if raw := q.Get("sex"); raw != "" {
			sex, ok := ParseSex(raw)
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

		items, err := svc.ListByTenant(r.Context(), tenantID, f)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal propio
// @Tags animals
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// setParentsHandler godoc
// @Summary Asignar padres locales
// @Description Fija o limpia sire/dam con animales del mismo tenant. Un campo ausente no se toca; "" lo limpia. Rechaza sexo incorrecto (400) y ciclos de ancestría (409).
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body setParentsRequest true "IDs de sire/dam"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / sexo incorrecto"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "cycle / cross-tenant link activo"
// @Router /animals/{animalID}/parents [put]
func setParentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setParentsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.SetParents(r.Context(), tenantID, chi.URLParam(r, "animalID"), ParentsInput{
			SireID: req.SireID,
			DamID:  req.DamID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	titles := a.Titles
	if titles == nil {
		titles = []Title{}
	}
	comps := a.Competitions
	if comps == nil {
		comps = []Competition{}
	}
	return animalResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		GAID:            a.GAID,
		Name:            a.Name,
		Species:         a.Species,
		Breed:           a.Breed,
		Sex:             a.Sex,
		BirthDate:       a.BirthDate,
		PhotoURL:        a.PhotoURL,
		RegistryID:      a.RegistryID,
		RegistryNumber:  a.RegistryNumber,
		BreederName:     a.BreederName,
		Titles:          titles,
		Competitions:    comps,
		HealthSummary:   a.HealthSummary,
		GeneticsSummary: a.GeneticsSummary,
		SireID:          a.SireID,
		DamID:           a.DamID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}

// writeJSON está duplicado en cada módulo; todavía no justifica un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
