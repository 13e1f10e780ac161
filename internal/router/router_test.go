package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pedigree-registry/internal/adapters/auth/jwtauth"
	"pedigree-registry/internal/adapters/directory/memdir"
	"pedigree-registry/internal/config"
	"pedigree-registry/internal/ports/auth"
	"pedigree-registry/internal/ports/directory"
	"pedigree-registry/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	app, err := router.New(opts)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return httptest.NewServer(app.Handler)
}

func TestNew_RejectsInvalidRiskBands(t *testing.T) {
	_, err := router.New(router.Options{Config: config.Config{
		COI: config.COIConfig{ModerateAt: 0.25, HighAbove: 0.125, CriticalAt: 0.0625},
	}})
	if err == nil {
		t.Fatalf("expected error for unordered risk bands")
	}

	app, err := router.New(router.Options{})
	if err != nil || app.Handler == nil || app.Sweeper == nil {
		t.Fatalf("zero config should use defaults: app=%+v err=%v", app, err)
	}
}

func TestHTTP_EndToEnd_CrossTenantPedigree(t *testing.T) {
	dir := memdir.New(
		directory.Tenant{ID: "kennel-a", Name: "Kennel A"},
		directory.Tenant{ID: "kennel-b", Name: "Criadero del Sur", Country: "CL"},
	)
	ts := newServer(t, router.Options{Directory: dir})
	defer ts.Close()

	// 1) kennel-a registra cachorro y padre local
	pupID, _ := createAnimal(t, ts.URL, "kennel-a", map[string]any{"name": "Pup", "species": "dog", "sex": "MALE"})
	sireID, _ := createAnimal(t, ts.URL, "kennel-a", map[string]any{"name": "Rex", "species": "dog", "sex": "MALE"})
	{
		st, body := doReq(t, ts.URL, "PUT", "/animals/"+pupID+"/parents", "kennel-a", map[string]any{"sire_id": sireID})
		if st != http.StatusOK {
			t.Fatalf("expected 200 setting local sire, got %d body=%s", st, string(body))
		}
	}

	// 2) kennel-b registra la madre
	damID, damGAID := createAnimal(t, ts.URL, "kennel-b", map[string]any{"name": "Bella", "species": "dog", "sex": "FEMALE"})

	// 3) Sin opt-in la madre es invisible
	{
		st, _ := doReq(t, ts.URL, "GET", "/match/gaid/"+damGAID, "kennel-a", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 before opt-in, got %d", st)
		}
	}

	// 4) Dueño habilita matching
	{
		st, body := doReq(t, ts.URL, "PATCH", "/animals/"+damID+"/privacy", "kennel-b", map[string]any{"allow_cross_tenant_matching": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patching privacy, got %d body=%s", st, string(body))
		}
	}

	// 5) Ahora el GAID resuelve
	{
		st, body := doReq(t, ts.URL, "GET", "/match/gaid/"+damGAID, "kennel-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 matching gaid, got %d body=%s", st, string(body))
		}
		var c struct {
			AnimalID  string `json:"animal_id"`
			MatchedBy string `json:"matched_by"`
		}
		mustJSON(t, body, &c)
		if c.AnimalID != damID || c.MatchedBy != "GAID" {
			t.Fatalf("unexpected candidate %+v", c)
		}
	}

	// 6) kennel-a solicita el link (sin method: GAID por defecto)
	requestID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+pupID+"/link-requests", "kennel-a", map[string]any{
			"relationship_type": "DAM",
			"target_animal_id":  damID,
			"message":           "es la madre",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating request, got %d body=%s", st, string(body))
		}
		var out struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Method string `json:"method"`
			Target struct {
				Name string `json:"name"`
			} `json:"target"`
		}
		mustJSON(t, body, &out)
		if out.Status != "PENDING" || out.Method != "GAID" || out.Target.Name != "Criadero del Sur" {
			t.Fatalf("unexpected request %+v", out)
		}
		requestID = out.ID
	}

	// 7) El requester no puede aprobar su propia solicitud
	{
		st, _ := doReq(t, ts.URL, "POST", "/link-requests/"+requestID+"/approve", "kennel-a", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 when requester approves, got %d", st)
		}
	}

	// 8) kennel-b la ve en su bandeja y aprueba
	{
		st, body := doReq(t, ts.URL, "GET", "/link-requests?direction=incoming", "kennel-b", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing incoming, got %d", st)
		}
		var items []map[string]any
		mustJSON(t, body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 incoming request, got %d", len(items))
		}
	}
	linkID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/link-requests/"+requestID+"/approve", "kennel-b", map[string]any{"message": "ok"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approving, got %d body=%s", st, string(body))
		}
		var out struct {
			Request struct {
				Status string `json:"status"`
			} `json:"request"`
			Link struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"link"`
		}
		mustJSON(t, body, &out)
		if out.Request.Status != "APPROVED" || out.Link.Status != "ACTIVE" {
			t.Fatalf("unexpected approve response %+v", out)
		}
		linkID = out.Link.ID
	}

	// 9) El slot ya está ocupado
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+pupID+"/link-requests", "kennel-a", map[string]any{
			"relationship_type": "DAM",
			"target_animal_id":  damID,
			"method":            "GAID",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on occupied slot, got %d", st)
		}
	}

	// 10) Pedigree mezcla aristas locales y cross-tenant
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+pupID+"/pedigree?depth=2", "kennel-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pedigree, got %d body=%s", st, string(body))
		}
		p := decodePedigree(t, body)
		if p.Root.Sire == nil || p.Root.Sire.Edge != "local" || p.Root.Sire.ID != sireID {
			t.Fatalf("unexpected sire %+v", p.Root.Sire)
		}
		if p.Root.Dam == nil || p.Root.Dam.Edge != "cross_tenant" || p.Root.Dam.LinkID != linkID {
			t.Fatalf("unexpected dam %+v", p.Root.Dam)
		}
		if p.Root.Dam.Name != "Bella" {
			t.Fatalf("dam name should be visible by default, got %q", p.Root.Dam.Name)
		}
	}

	// 11) COI sin ancestros comunes
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+pupID+"/coi?generations=5", "kennel-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 coi, got %d body=%s", st, string(body))
		}
		var out struct {
			Coefficient float64 `json:"coefficient"`
			RiskLevel   string  `json:"risk_level"`
			Generations int     `json:"generations_analyzed"`
		}
		mustJSON(t, body, &out)
		if out.Coefficient != 0 || out.RiskLevel != "LOW" || out.Generations != 5 {
			t.Fatalf("unexpected coi %+v", out)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+pupID+"/coi?generations=99", "kennel-a", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 on too many generations, got %d", st)
		}
	}

	// 12) Trial mating entre tenants
	{
		st, body := doReq(t, ts.URL, "GET", "/coi/trial-mating?sire_id="+sireID+"&dam_id="+damID, "kennel-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trial mating, got %d body=%s", st, string(body))
		}
	}

	// 13) El dueño de la madre revoca; una segunda vez es conflicto
	{
		st, body := doReq(t, ts.URL, "POST", "/links/"+linkID+"/revoke", "kennel-b", map[string]any{"reason": "error de registro"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 revoking, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "POST", "/links/"+linkID+"/revoke", "kennel-b", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on second revoke, got %d", st)
		}
	}

	// 14) El pedigree deja de mostrar la madre
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+pupID+"/pedigree", "kennel-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pedigree, got %d", st)
		}
		p := decodePedigree(t, body)
		if p.Root.Dam != nil {
			t.Fatalf("dam should be gone after revoke, got %+v", p.Root.Dam)
		}
		if p.Generations != 3 {
			t.Fatalf("expected default depth 3, got %d", p.Generations)
		}
	}
}

func TestHTTP_Unauthorized(t *testing.T) {
	ts := newServer(t, router.Options{})
	defer ts.Close()

	for _, path := range []string{"/animals", "/link-requests", "/animals/x/pedigree", "/match/gaid/X"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, st)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}
}

func TestHTTP_JWTVerifier(t *testing.T) {
	v, err := jwtauth.NewVerifier("s3cret", "pedigree-registry")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	ts := newServer(t, router.Options{AuthVerifier: v})
	defer ts.Close()

	// Con verifier el header de debug no autentica
	if st, _ := doReq(t, ts.URL, "GET", "/animals", "kennel-a", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in jwt mode, got %d", st)
	}

	tok, err := v.Issue(auth.Claims{UserID: "u1", TenantID: "kennel-a"}, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req, _ := http.NewRequest("GET", ts.URL+"/animals", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", resp.StatusCode)
	}
}

// ---------- helpers ----------

type pedigreeNode struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Edge   string        `json:"edge"`
	LinkID string        `json:"link_id"`
	Sire   *pedigreeNode `json:"sire"`
	Dam    *pedigreeNode `json:"dam"`
}

type pedigreeBody struct {
	Generations int           `json:"generations"`
	Root        *pedigreeNode `json:"root"`
}

func decodePedigree(t *testing.T, body []byte) pedigreeBody {
	t.Helper()
	var p pedigreeBody
	mustJSON(t, body, &p)
	if p.Root == nil {
		t.Fatalf("pedigree without root: %s", string(body))
	}
	return p
}

func createAnimal(t *testing.T, baseURL, tenantID string, payload map[string]any) (id, gaid string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", tenantID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating animal, got %d body=%s", st, string(body))
	}
	var out struct {
		ID   string `json:"id"`
		GAID string `json:"gaid"`
	}
	mustJSON(t, body, &out)
	if out.ID == "" || out.GAID == "" {
		t.Fatalf("animal without id/gaid: %s", string(body))
	}
	return out.ID, out.GAID
}

func doReq(t *testing.T, baseURL, method, path, tenantID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != "" {
		req.Header.Set("X-Debug-Tenant-ID", tenantID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustJSON(t *testing.T, b []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, string(b))
	}
}
