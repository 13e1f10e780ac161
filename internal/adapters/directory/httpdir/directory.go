// Package httpdir consulta el directorio de organizaciones por HTTP.
package httpdir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pedigree-registry/internal/platform/httpclient"
	"pedigree-registry/internal/ports/directory"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Directory struct {
	http   *httpclient.Client
	apiKey string
}

func New(cfg Config) (*Directory, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("httpdir: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Directory{http: hc, apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

type tenantDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Country      string `json:"country"`
}

func (t tenantDTO) toTenant() directory.Tenant {
	return directory.Tenant{
		ID:           t.ID,
		Name:         t.Name,
		ContactEmail: t.ContactEmail,
		Country:      t.Country,
	}
}

func (d *Directory) headers() map[string]string {
	if d.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": d.apiKey}
}

func (d *Directory) Get(ctx context.Context, tenantID string) (directory.Tenant, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return directory.Tenant{}, directory.ErrTenantNotFound
	}

	var out tenantDTO
	err := d.http.DoJSON(ctx, http.MethodGet, "/v1/tenants/"+url.PathEscape(tenantID), d.headers(), nil, &out)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return directory.Tenant{}, directory.ErrTenantNotFound
		}
		return directory.Tenant{}, fmt.Errorf("directory get %s: %w", tenantID, err)
	}
	return out.toTenant(), nil
}

func (d *Directory) Search(ctx context.Context, query string) ([]directory.Tenant, error) {
	var out struct {
		Items []tenantDTO `json:"items"`
	}
	path := "/v1/tenants?q=" + url.QueryEscape(strings.TrimSpace(query))
	if err := d.http.DoJSON(ctx, http.MethodGet, path, d.headers(), nil, &out); err != nil {
		return nil, fmt.Errorf("directory search: %w", err)
	}

	res := make([]directory.Tenant, 0, len(out.Items))
	for _, t := range out.Items {
		res = append(res, t.toTenant())
	}
	return res, nil
}
