package pedigree

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animals/{animalID}/pedigree", getPedigreeHandler(svc))
	r.Get("/animals/{animalID}/coi", getCOIHandler(svc))
	r.Get("/coi/trial-mating", trialMatingHandler(svc))
}

type nodeResponse struct {
	ID             string                `json:"id,omitempty"`
	GAID           string                `json:"gaid,omitempty"`
	TenantID       string                `json:"tenant_id,omitempty"`
	Name           string                `json:"name,omitempty"`
	Sex            animals.Sex           `json:"sex,omitempty"`
	Species        string                `json:"species,omitempty"`
	Breed          string                `json:"breed,omitempty"`
	BirthDate      *time.Time            `json:"birth_date,omitempty"`
	BirthYear      int                   `json:"birth_year,omitempty"`
	PhotoURL       string                `json:"photo_url,omitempty"`
	RegistryNumber string                `json:"registry_number,omitempty"`
	BreederName    string                `json:"breeder_name,omitempty"`
	Titles         []animals.Title       `json:"titles,omitempty"`
	Competitions   []animals.Competition `json:"competitions,omitempty"`
	Health         string                `json:"health,omitempty"`
	Genetics       string                `json:"genetics,omitempty"`
	Edge           EdgeKind              `json:"edge"`
	LinkID         string                `json:"link_id,omitempty"`
	Generation     int                   `json:"generation"`
	Unknown        bool                  `json:"unknown"`
	StubReason     StubReason            `json:"stub_reason,omitempty"`
	Truncated      bool                  `json:"truncated,omitempty"`
	Sire           *nodeResponse         `json:"sire,omitempty"`
	Dam            *nodeResponse         `json:"dam,omitempty"`
}

type anomalyResponse struct {
	Kind     string   `json:"kind"`
	AnimalID string   `json:"animal_id"`
	Path     []string `json:"path"`
}

type pedigreeResponse struct {
	Generations int               `json:"generations"`
	ResolvedAt  time.Time         `json:"resolved_at"`
	Root        *nodeResponse     `json:"root"`
	Anomalies   []anomalyResponse `json:"anomalies"`
}

type commonAncestorResponse struct {
	AnimalID     string  `json:"animal_id"`
	Name         string  `json:"name,omitempty"`
	Contribution float64 `json:"contribution"`
	Percent      float64 `json:"percent"`
	Share        float64 `json:"share"`
	PathPairs    int     `json:"path_pairs"`
	Inbreeding   float64 `json:"inbreeding"`
}

type coiResponse struct {
	AnimalID            string                   `json:"animal_id,omitempty"`
	SireID              string                   `json:"sire_id,omitempty"`
	DamID               string                   `json:"dam_id,omitempty"`
	Coefficient         float64                  `json:"coefficient"`
	Percent             float64                  `json:"percent"`
	RiskLevel           RiskLevel                `json:"risk_level"`
	GenerationsAnalyzed int                      `json:"generations_analyzed"`
	UnknownAncestors    int                      `json:"unknown_ancestors"`
	CommonAncestors     []commonAncestorResponse `json:"common_ancestors"`
}

// getPedigreeHandler godoc
// @Summary Pedigrí de un animal
// @Description Árbol de ancestros con aristas locales y links entre tenants. Ancestros ocultos o faltantes llegan como nodos stub.
// @Tags pedigree
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param depth query int false "Generaciones (default 3)"
// @Success 200 {object} pedigreeResponse
// @Failure 400 {string} string "depth inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "privacy blocked"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/pedigree [get]
func getPedigreeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		depth, ok := intQuery(w, r, "depth")
		if !ok {
			return
		}

		p, err := svc.GetPedigree(r.Context(), tenantID, chi.URLParam(r, "animalID"), depth)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := pedigreeResponse{
			Generations: p.Generations,
			ResolvedAt:  p.ResolvedAt,
			Root:        toNodeResponse(p.Root),
			Anomalies:   make([]anomalyResponse, 0, len(p.Anomalies)),
		}
		for _, a := range p.Anomalies {
			resp.Anomalies = append(resp.Anomalies, anomalyResponse{Kind: a.Kind, AnimalID: a.AnimalID, Path: a.Path})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// getCOIHandler godoc
// @Summary Coeficiente de consanguinidad
// @Description Método de Wright sobre el pedigrí visible para el caller.
// @Tags pedigree
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param generations query int false "Generaciones analizadas (default 3)"
// @Success 200 {object} coiResponse
// @Failure 400 {string} string "generations inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "privacy blocked"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/coi [get]
func getCOIHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		gens, ok := intQuery(w, r, "generations")
		if !ok {
			return
		}

		res, err := svc.ComputeCOI(r.Context(), tenantID, chi.URLParam(r, "animalID"), gens)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCOIResponse(res, "", ""))
	}
}

// trialMatingHandler godoc
// @Summary COI de una cruza hipotética
// @Tags pedigree
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param sire_id query string true "ID del macho"
// @Param dam_id query string true "ID de la hembra"
// @Param generations query int false "Generaciones analizadas (default 3)"
// @Success 200 {object} coiResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "privacy blocked"
// @Failure 404 {string} string "animal not found"
// @Router /coi/trial-mating [get]
func trialMatingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		gens, ok := intQuery(w, r, "generations")
		if !ok {
			return
		}

		q := r.URL.Query()
		sireID, damID := q.Get("sire_id"), q.Get("dam_id")
		res, err := svc.ComputeTrialMating(r.Context(), tenantID, sireID, damID, gens)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCOIResponse(res, sireID, damID))
	}
}

// intQuery lee un entero opcional; ausente = 0.
func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func toNodeResponse(n *Node) *nodeResponse {
	if n == nil {
		return nil
	}
	return &nodeResponse{
		ID:             n.ID,
		GAID:           n.GAID,
		TenantID:       n.TenantID,
		Name:           n.Name,
		Sex:            n.Sex,
		Species:        n.Species,
		Breed:          n.Breed,
		BirthDate:      n.BirthDate,
		BirthYear:      n.BirthYear,
		PhotoURL:       n.PhotoURL,
		RegistryNumber: n.RegistryNumber,
		BreederName:    n.BreederName,
		Titles:         n.Titles,
		Competitions:   n.Competitions,
		Health:         n.Health,
		Genetics:       n.Genetics,
		Edge:           n.Edge,
		LinkID:         n.LinkID,
		Generation:     n.Generation,
		Unknown:        n.Unknown,
		StubReason:     n.StubReason,
		Truncated:      n.Truncated,
		Sire:           toNodeResponse(n.Sire),
		Dam:            toNodeResponse(n.Dam),
	}
}

func toCOIResponse(res COIResult, sireID, damID string) coiResponse {
	out := coiResponse{
		AnimalID:            res.AnimalID,
		SireID:              sireID,
		DamID:               damID,
		Coefficient:         res.Coefficient,
		Percent:             res.Percent,
		RiskLevel:           res.RiskLevel,
		GenerationsAnalyzed: res.GenerationsAnalyzed,
		UnknownAncestors:    res.UnknownAncestors,
		CommonAncestors:     make([]commonAncestorResponse, 0, len(res.CommonAncestors)),
	}
	for _, a := range res.CommonAncestors {
		out.CommonAncestors = append(out.CommonAncestors, commonAncestorResponse{
			AnimalID:     a.AnimalID,
			Name:         a.Name,
			Contribution: a.Contribution,
			Percent:      a.Percent,
			Share:        a.Share,
			PathPairs:    a.PathPairs,
			Inbreeding:   a.Inbreeding,
		})
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
