package privacy

import (
	"encoding/json"
	"net/http"
	"time"

	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/privacy", func(pr chi.Router) {
		pr.Get("/", getSettingsHandler(svc))
		pr.Patch("/", updateSettingsHandler(svc))
	})
}

type settingsResponse struct {
	AnimalID                 string     `json:"animal_id"`
	AllowCrossTenantMatching bool       `json:"allow_cross_tenant_matching"`
	ShowName                 bool       `json:"show_name"`
	ShowPhoto                bool       `json:"show_photo"`
	ShowFullBirthDate        bool       `json:"show_full_birth_date"`
	ShowFullRegistryNumber   bool       `json:"show_full_registry_number"`
	ShowBreeder              bool       `json:"show_breeder"`
	ShowTitles               bool       `json:"show_titles"`
	ShowTitleDetails         bool       `json:"show_title_details"`
	ShowCompetitions         bool       `json:"show_competitions"`
	ShowCompetitionDetails   bool       `json:"show_competition_details"`
	ShareHealth              bool       `json:"share_health"`
	ShareGenetics            bool       `json:"share_genetics"`
	ShareDocuments           bool       `json:"share_documents"`
	ShareMedia               bool       `json:"share_media"`
	ShowBreedingHistory      bool       `json:"show_breeding_history"`
	AllowDirectContact       bool       `json:"allow_direct_contact"`
	AllowInfoRequests        bool       `json:"allow_info_requests"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}

// getSettingsHandler godoc
// @Summary Ver privacidad de un animal
// @Description Devuelve los settings vigentes (o los defaults si nunca se configuraron). Solo el tenant dueño.
// @Tags privacy
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} settingsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/privacy [get]
func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(st))
	}
}

// updateSettingsHandler godoc
// @Summary Actualizar privacidad de un animal
// @Description PATCH parcial: los campos ausentes no se tocan. Invalida el cache de COI.
// @Tags privacy
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body Patch true "Flags a cambiar"
// @Success 200 {object} settingsResponse
// @Failure 400 {string} string "invalid json / nothing to update"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/privacy [patch]
func updateSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var p Patch
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Update(r.Context(), tenantID, chi.URLParam(r, "animalID"), p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(st))
	}
}

func toSettingsResponse(s Settings) settingsResponse {
	out := settingsResponse{
		AnimalID:                 s.AnimalID,
		AllowCrossTenantMatching: s.AllowCrossTenantMatching,
		ShowName:                 s.ShowName,
		ShowPhoto:                s.ShowPhoto,
		ShowFullBirthDate:        s.ShowFullBirthDate,
		ShowFullRegistryNumber:   s.ShowFullRegistryNumber,
		ShowBreeder:              s.ShowBreeder,
		ShowTitles:               s.ShowTitles,
		ShowTitleDetails:         s.ShowTitleDetails,
		ShowCompetitions:         s.ShowCompetitions,
		ShowCompetitionDetails:   s.ShowCompetitionDetails,
		ShareHealth:              s.ShareHealth,
		ShareGenetics:            s.ShareGenetics,
		ShareDocuments:           s.ShareDocuments,
		ShareMedia:               s.ShareMedia,
		ShowBreedingHistory:      s.ShowBreedingHistory,
		AllowDirectContact:       s.AllowDirectContact,
		AllowInfoRequests:        s.AllowInfoRequests,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
