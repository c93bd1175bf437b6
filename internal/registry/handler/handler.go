// Package handler exposes the mock government registry over HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"testament/internal/registry/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/httputil"
	"testament/pkg/platform/middleware/admin"
	"testament/pkg/requestcontext"
)

// Service defines the registry operations served here.
type Service interface {
	GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, error)
	GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, error)
	ConfirmDeath(ctx context.Context, nationalID id.NationalID) (bool, error)
	ConfirmGrant(ctx context.Context, nationalID id.NationalID) (bool, error)
	DeathsToday(ctx context.Context) ([]models.DeathRecord, error)
	GrantsToday(ctx context.Context) ([]models.ProbateRecord, error)
	CertificatePath(ctx context.Context, nationalID id.NationalID) (string, error)
	GrantDocumentPath(ctx context.Context, nationalID id.NationalID) (string, error)
	RecordDeath(ctx context.Context, r models.DeathRecord) error
	RecordGrant(ctx context.Context, r models.ProbateRecord) error
}

type Handler struct {
	registry   Service
	logger     *slog.Logger
	adminToken string
}

func New(registry Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{registry: registry, logger: logger, adminToken: adminToken}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/getCertificate/{nationalID}", h.handleGetCertificate)
		r.Get("/confirmDeath/{nationalID}", h.handleConfirmDeath)
		r.Get("/getAllDeathToday", h.handleDeathsToday)
		r.Get("/getGrantOfProbate/{nationalID}", h.handleGetGrantDocument)
		r.Get("/confirmGrantOfProbate/{nationalID}", h.handleConfirmGrant)
		r.Get("/getAllGrantOfProbateToday", h.handleGrantsToday)
		r.Get("/deaths/{nationalID}", h.handleGetDeath)
		r.Get("/grants/{nationalID}", h.handleGetGrant)

		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
			r.Post("/deaths", h.handleRecordDeath)
			r.Post("/grants", h.handleRecordGrant)
		})
	})
}

func (h *Handler) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "death_certificate.pdf", h.registry.CertificatePath)
}

func (h *Handler) handleGetGrantDocument(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "grant_of_probate.pdf", h.registry.GrantDocumentPath)
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request, filename string, resolve func(context.Context, id.NationalID) (string, error)) {
	ctx := r.Context()
	nationalID, ok := h.nationalIDParam(w, r)
	if !ok {
		return
	}
	path, err := resolve(ctx, nationalID)
	if err != nil {
		h.fail(ctx, w, "failed to resolve registry document", err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		h.fail(ctx, w, "failed to open registry document", dErrors.New(dErrors.CodeNotFound, "file not found on server"))
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		h.fail(ctx, w, "failed to stat registry document", dErrors.Wrap(err, dErrors.CodeInternal, "stat document"))
		return
	}
	contentType := "application/octet-stream"
	if filepath.Ext(path) == ".pdf" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	http.ServeContent(w, r, filename, info.ModTime(), f)
}

func (h *Handler) handleConfirmDeath(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, "death", h.registry.ConfirmDeath, func(nid id.NationalID) string {
		return fmt.Sprintf("Here is a confirmation that the deceased with national id %s has died", nid)
	})
}

func (h *Handler) handleConfirmGrant(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, "grant of probate", h.registry.ConfirmGrant, func(nid id.NationalID) string {
		return fmt.Sprintf("Here is a confirmation that a grant of probate was issued for the deceased with national id %s", nid)
	})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, what string, op func(context.Context, id.NationalID) (bool, error), message func(id.NationalID) string) {
	ctx := r.Context()
	nationalID, ok := h.nationalIDParam(w, r)
	if !ok {
		return
	}
	confirmed, err := op(ctx, nationalID)
	if err != nil {
		h.fail(ctx, w, "failed to confirm "+what, err)
		return
	}
	if !confirmed {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "no such %s", what))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ConfirmResponse{Confirmed: true, Result: message(nationalID)})
}

func (h *Handler) handleDeathsToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.registry.DeathsToday(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list deaths", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeathListResponse{Result: records})
}

func (h *Handler) handleGrantsToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.registry.GrantsToday(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list grants", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GrantListResponse{Result: records})
}

func (h *Handler) handleGetDeath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nationalID, ok := h.nationalIDParam(w, r)
	if !ok {
		return
	}
	record, err := h.registry.GetDeath(ctx, nationalID)
	if err != nil {
		h.fail(ctx, w, "failed to get death record", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nationalID, ok := h.nationalIDParam(w, r)
	if !ok {
		return
	}
	record, err := h.registry.GetGrant(ctx, nationalID)
	if err != nil {
		h.fail(ctx, w, "failed to get grant of probate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleRecordDeath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RecordDeathRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.registry.RecordDeath(ctx, req.record); err != nil {
		h.fail(ctx, w, "failed to record death", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, req.record)
}

func (h *Handler) handleRecordGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RecordGrantRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.registry.RecordGrant(ctx, req.record); err != nil {
		h.fail(ctx, w, "failed to record grant of probate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, req.record)
}

func (h *Handler) nationalIDParam(w http.ResponseWriter, r *http.Request) (id.NationalID, bool) {
	nid, err := id.ParseNationalID(chi.URLParam(r, "nationalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return nid, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	h.logger.WarnContext(ctx, action,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

// -----------------------------------------------------------------------------
// Requests and responses
// -----------------------------------------------------------------------------

type ConfirmResponse struct {
	Confirmed bool   `json:"confirmed"`
	Result    string `json:"result"`
}

type DeathListResponse struct {
	Result []models.DeathRecord `json:"result"`
}

type GrantListResponse struct {
	Result []models.ProbateRecord `json:"result"`
}

// RecordDeathRequest seeds a death certificate.
type RecordDeathRequest struct {
	NationalID      string    `json:"national_id"`
	DeceasedName    string    `json:"deceased_name"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Nationality     string    `json:"nationality"`
	DateOfDeath     time.Time `json:"date_of_death"`
	CertificateFile string    `json:"certificate_file"`

	record models.DeathRecord
}

func (r *RecordDeathRequest) Validate() error {
	nid, err := id.ParseNationalID(r.NationalID)
	if err != nil {
		return err
	}
	r.record = models.DeathRecord{
		NationalID:      nid,
		DeceasedName:    r.DeceasedName,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		Nationality:     r.Nationality,
		DateOfDeath:     r.DateOfDeath,
		CertificateFile: r.CertificateFile,
	}
	return r.record.Validate()
}

// RecordGrantRequest seeds a grant of probate.
type RecordGrantRequest struct {
	NationalID          string    `json:"national_id"`
	CaseNumber          string    `json:"case_number"`
	ApplicantName       string    `json:"applicant_name"`
	ApplicantNationalID string    `json:"applicant_national_id"`
	DeceasedName        string    `json:"deceased_name"`
	Court               string    `json:"court"`
	Approved            bool      `json:"approved"`
	DateGranted         time.Time `json:"date_granted"`
	DocumentFile        string    `json:"document_file"`

	record models.ProbateRecord
}

func (r *RecordGrantRequest) Validate() error {
	nid, err := id.ParseNationalID(r.NationalID)
	if err != nil {
		return err
	}
	var applicant id.NationalID
	if r.ApplicantNationalID != "" {
		if applicant, err = id.ParseNationalID(r.ApplicantNationalID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "invalid applicant national id")
		}
	}
	r.record = models.ProbateRecord{
		NationalID:          nid,
		CaseNumber:          r.CaseNumber,
		ApplicantName:       r.ApplicantName,
		ApplicantNationalID: applicant,
		DeceasedName:        r.DeceasedName,
		Court:               r.Court,
		Approved:            r.Approved,
		DateGranted:         r.DateGranted,
		DocumentFile:        r.DocumentFile,
	}
	return r.record.Validate()
}
