package links

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/middleware"
	"pedigree-registry/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service) {
	// Requester: pide un padre cross-tenant para su animal
	r.Post("/animals/{animalID}/link-requests", createRequestHandler(svc))
	r.Get("/animals/{animalID}/links", listLinksHandler(svc))

	r.Route("/link-requests", func(lr chi.Router) {
		lr.Get("/", listRequestsHandler(svc))
		lr.Get("/{requestID}", getRequestHandler(svc))

		// Dueño del padre ofrecido
		lr.Post("/{requestID}/approve", approveHandler(svc))
		lr.Post("/{requestID}/deny", denyHandler(svc))

		// Requester
		lr.Post("/{requestID}/cancel", cancelHandler(svc))
	})

	// Cualquiera de los dos lados
	r.Post("/links/{linkID}/revoke", revokeHandler(svc))
}

// createRequestRequest: method es opcional y por defecto GAID.
type createRequestRequest struct {
	RelationshipType string `json:"relationship_type" validate:"required,oneof=SIRE DAM sire dam"`
	TargetAnimalID   string `json:"target_animal_id" validate:"required"`
	TargetTenantID   string `json:"target_tenant_id"`
	Method           string `json:"method" validate:"omitempty,oneof=GAID EXCHANGE_CODE REGISTRY BREEDER_SEARCH"`
	Message          string `json:"message" validate:"max=1000"`
}

type approveRequest struct {
	TargetAnimalID string `json:"target_animal_id"`
	Message        string `json:"message" validate:"max=1000"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type tenantSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
}

type requestResponse struct {
	ID               string             `json:"id"`
	Status           RequestStatus      `json:"status"`
	SourceAnimalID   string             `json:"source_animal_id"`
	RelationshipType animals.ParentType `json:"relationship_type"`
	TargetAnimalID   string             `json:"target_animal_id"`
	Method           LinkMethod         `json:"method"`
	Requester        tenantSummary      `json:"requester"`
	Target           tenantSummary      `json:"target"`
	Message          string             `json:"message,omitempty"`
	ResponseMessage  string             `json:"response_message,omitempty"`
	DenialReason     string             `json:"denial_reason,omitempty"`
	LinkID           string             `json:"link_id,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	RespondedAt      *time.Time         `json:"responded_at,omitempty"`
	ExpiresAt        time.Time          `json:"expires_at"`
}

type linkResponse struct {
	ID             string             `json:"id"`
	Status         LinkStatus         `json:"status"`
	SourceAnimalID string             `json:"source_animal_id"`
	SourceTenantID string             `json:"source_tenant_id"`
	TargetAnimalID string             `json:"target_animal_id"`
	TargetTenantID string             `json:"target_tenant_id"`
	ParentType     animals.ParentType `json:"parent_type"`
	Method         LinkMethod         `json:"method"`
	RequestID      string             `json:"request_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	RevokedAt      *time.Time         `json:"revoked_at,omitempty"`
	RevokedReason  string             `json:"revoked_reason,omitempty"`
}

type approveResponse struct {
	Request requestResponse `json:"request"`
	Link    linkResponse    `json:"link"`
}

// createRequestHandler godoc
// @Summary Solicitar link cross-tenant
// @Description Propone un animal de otro tenant como SIRE/DAM del animal propio. 409 si el slot ya tiene padre activo; 403 si el objetivo no permite matching.
// @Tags links
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal hijo"
// @Param payload body createRequestRequest true "Datos de la solicitud"
// @Success 201 {object} requestResponse
// @Failure 400 {string} string "invalid json / sexo incorrecto / mismo tenant"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden / privacy blocked"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "conflict"
// @Router /animals/{animalID}/link-requests [post]
func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), tenantID, CreateInput{
			SourceAnimalID:   chi.URLParam(r, "animalID"),
			RelationshipType: req.RelationshipType,
			TargetAnimalID:   req.TargetAnimalID,
			TargetTenantID:   req.TargetTenantID,
			Method:           req.Method,
			Message:          req.Message,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		d, err := svc.GetRequest(r.Context(), tenantID, created.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRequestResponse(d))
	}
}

// listRequestsHandler godoc
// @Summary Listar solicitudes
// @Tags links
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param direction query string false "incoming (default) | outgoing"
// @Success 200 {array} requestResponse
// @Failure 400 {string} string "direction inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /link-requests [get]
func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dir, ok := ParseDirection(r.URL.Query().Get("direction"))
		if !ok {
			http.Error(w, "direction must be incoming or outgoing", http.StatusBadRequest)
			return
		}

		items, err := svc.ListRequests(r.Context(), tenantID, dir)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]requestResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toRequestResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRequestHandler godoc
// @Summary Ver solicitud
// @Tags links
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Router /link-requests/{requestID} [get]
func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.GetRequest(r.Context(), tenantID, chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(d))
	}
}

// approveHandler godoc
// @Summary Aprobar solicitud
// @Description Crea el CrossTenantLink ACTIVE. Una segunda aprobación para el mismo (hijo, slot) devuelve 409. Solicitud vencida => 410.
// @Tags links
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body approveRequest false "Animal resuelto y mensaje opcionales"
// @Success 200 {object} approveResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Failure 410 {string} string "expired"
// @Router /link-requests/{requestID}/approve [post]
func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req approveRequest
		if !decodeOptional(w, r, &req) {
			return
		}

		approved, link, err := svc.Approve(r.Context(), tenantID, chi.URLParam(r, "requestID"), ApproveInput{
			TargetAnimalID: req.TargetAnimalID,
			Message:        req.Message,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, approveResponse{
			Request: toRequestResponse(RequestDetails{LinkRequest: approved}),
			Link:    toLinkResponse(link),
		})
	}
}

// denyHandler godoc
// @Summary Rechazar solicitud
// @Tags links
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body reasonRequest false "Motivo opcional"
// @Success 200 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Failure 410 {string} string "expired"
// @Router /link-requests/{requestID}/deny [post]
func denyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req reasonRequest
		if !decodeOptional(w, r, &req) {
			return
		}

		denied, err := svc.Deny(r.Context(), tenantID, chi.URLParam(r, "requestID"), req.Reason)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(RequestDetails{LinkRequest: denied}))
	}
}

// cancelHandler godoc
// @Summary Cancelar solicitud propia
// @Tags links
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Success 204 {string} string "no content"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Router /link-requests/{requestID}/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Cancel(r.Context(), tenantID, chi.URLParam(r, "requestID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listLinksHandler godoc
// @Summary Listar links de un animal
// @Tags links
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {array} linkResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/links [get]
func listLinksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListLinks(r.Context(), tenantID, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]linkResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLinkResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// revokeHandler godoc
// @Summary Revocar link
// @Description Cualquiera de los dos tenants puede cortar el link. Revocar un link ya revocado => 409.
// @Tags links
// @Accept json
// @Produce json
// @Param X-Debug-Tenant-ID header string false "Solo en modo dev, tenant del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param linkID path string true "ID del link"
// @Param payload body reasonRequest false "Motivo opcional"
// @Success 200 {object} linkResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "link not found"
// @Failure 409 {string} string "already revoked"
// @Router /links/{linkID}/revoke [post]
func revokeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req reasonRequest
		if !decodeOptional(w, r, &req) {
			return
		}

		l, err := svc.Revoke(r.Context(), tenantID, chi.URLParam(r, "linkID"), req.Reason)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLinkResponse(l))
	}
}

// decodeOptional acepta body vacío; si viene, lo decodifica y valida.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid field " + fe.Field() + " (" + fe.Tag() + ")"
	}
	return "invalid request"
}

func toRequestResponse(d RequestDetails) requestResponse {
	r := d.LinkRequest
	requester := tenantSummary{ID: r.RequestingTenantID, Name: d.Requester.Name, Country: d.Requester.Country}
	target := tenantSummary{ID: r.TargetTenantID, Name: d.Target.Name, Country: d.Target.Country}
	return requestResponse{
		ID:               r.ID,
		Status:           r.Status,
		SourceAnimalID:   r.SourceAnimalID,
		RelationshipType: r.RelationshipType,
		TargetAnimalID:   r.TargetAnimalID,
		Method:           r.Method,
		Requester:        requester,
		Target:           target,
		Message:          r.Message,
		ResponseMessage:  r.ResponseMessage,
		DenialReason:     r.DenialReason,
		LinkID:           r.LinkID,
		CreatedAt:        r.CreatedAt,
		RespondedAt:      r.RespondedAt,
		ExpiresAt:        r.ExpiresAt,
	}
}

func toLinkResponse(l CrossTenantLink) linkResponse {
	return linkResponse{
		ID:             l.ID,
		Status:         l.Status,
		SourceAnimalID: l.SourceAnimalID,
		SourceTenantID: l.SourceTenantID,
		TargetAnimalID: l.TargetAnimalID,
		TargetTenantID: l.TargetTenantID,
		ParentType:     l.ParentType,
		Method:         l.Method,
		RequestID:      l.RequestID,
		CreatedAt:      l.CreatedAt,
		RevokedAt:      l.RevokedAt,
		RevokedReason:  l.RevokedReason,
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
