package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"testament/internal/will/models"
	"testament/internal/will/service"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/httputil"
	"testament/pkg/platform/middleware/admin"
	"testament/pkg/platform/middleware/caller"
	"testament/pkg/requestcontext"
)

// Service defines the will operations exposed over HTTP.
type Service interface {
	CreateWill(ctx context.Context, owner id.Identity, nationalID id.NationalID) (*models.Will, error)
	GetWill(ctx context.Context, owner id.Identity) (*models.Will, error)
	GetWillState(ctx context.Context, owner id.Identity) (models.State, error)
	GetDigitalAssets(ctx context.Context, owner id.Identity) (int64, error)
	FundWill(ctx context.Context, owner id.Identity, amount int64) (*models.Will, error)
	ListWillsByState(ctx context.Context, state models.State) ([]*models.Will, error)

	SetResidualBeneficiary(ctx context.Context, owner, residual id.Identity) (*models.Will, error)
	AddBeneficiaries(ctx context.Context, owner id.Identity, shares []models.Share) (*models.Will, error)
	UpdateAllocations(ctx context.Context, owner id.Identity, shares []models.Share) (*models.Will, error)
	RemoveBeneficiaries(ctx context.Context, owner id.Identity, beneficiaries []id.Identity) (*models.Will, error)
	GetAllocationPercentage(ctx context.Context, owner, beneficiary id.Identity) (int, error)

	AddEditor(ctx context.Context, owner, editor id.Identity) (*models.Will, error)
	RemoveEditor(ctx context.Context, owner, editor id.Identity) (*models.Will, error)
	IsEditor(ctx context.Context, owner, who id.Identity) (bool, error)
	AddViewer(ctx context.Context, owner, viewer id.Identity) (*models.Will, error)
	RemoveViewer(ctx context.Context, owner, viewer id.Identity) (*models.Will, error)
	IsViewer(ctx context.Context, owner, who id.Identity) (bool, error)

	CreateAsset(ctx context.Context, owner id.Identity, in service.AssetInput) (*models.PhysicalAsset, error)
	GetAsset(ctx context.Context, assetID id.AssetID) (*models.PhysicalAsset, error)
	UpdateAssetBeneficiaries(ctx context.Context, assetID id.AssetID, shares []models.Share) (*models.PhysicalAsset, error)

	ViewWill(ctx context.Context, owner id.Identity) (models.Report, error)
	ViewWillForBeneficiaries(ctx context.Context, owner id.Identity) (models.Report, error)
	ViewAllAssetDistributionProofs(ctx context.Context, owner id.Identity) ([]models.DistributionProof, error)
	GetDistribution(ctx context.Context, owner id.Identity) (*models.DistributionRecord, error)
	GetBalance(ctx context.Context, beneficiary id.Identity) (int64, error)

	ConfirmDeath(ctx context.Context, owner id.Identity) (models.ConfirmationOutcome, error)
	ConfirmGrantOfProbate(ctx context.Context, owner id.Identity) (models.ConfirmationOutcome, error)
	ForceGrantOfProbate(ctx context.Context, owner id.Identity) (*models.Will, error)
	DistributeDigitalAssets(ctx context.Context, owner id.Identity) (*models.DistributionRecord, error)
	DistributeAsset(ctx context.Context, owner id.Identity, assetID id.AssetID) (models.AssetDistributionOutcome, error)
	DistributeEstate(ctx context.Context, owner id.Identity) (*models.EstateDistribution, error)
}

// Handler serves the will API.
type Handler struct {
	logger     *slog.Logger
	wills      Service
	adminToken string
}

func New(wills Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		logger:     logger,
		wills:      wills,
		adminToken: adminToken,
	}
}

// Register registers the will routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(caller.OptionalCaller)
		r.Get("/wills/{owner}/state", h.handleGetState)
		r.Get("/wills/{owner}/digital-assets", h.handleGetDigitalAssets)
		r.Get("/wills/{owner}/beneficiaries/{beneficiary}", h.handleGetAllocation)
		r.Get("/wills/{owner}/editors/{identity}", h.handleIsEditor)
		r.Get("/wills/{owner}/viewers/{identity}", h.handleIsViewer)
		r.Post("/wills/{owner}/fund", h.handleFund)
		r.Get("/assets/{assetID}", h.handleGetAsset)
	})

	r.Group(func(r chi.Router) {
		r.Use(caller.RequireCaller(h.logger))
		r.Post("/wills", h.handleCreateWill)
		r.Get("/wills/{owner}", h.handleGetWill)
		r.Put("/wills/{owner}/residual", h.handleSetResidual)
		r.Post("/wills/{owner}/beneficiaries", h.handleAddBeneficiaries)
		r.Patch("/wills/{owner}/beneficiaries", h.handleUpdateAllocations)
		r.Delete("/wills/{owner}/beneficiaries", h.handleRemoveBeneficiaries)
		r.Post("/wills/{owner}/editors/{identity}", h.handleAddEditor)
		r.Delete("/wills/{owner}/editors/{identity}", h.handleRemoveEditor)
		r.Post("/wills/{owner}/viewers/{identity}", h.handleAddViewer)
		r.Delete("/wills/{owner}/viewers/{identity}", h.handleRemoveViewer)
		r.Get("/wills/{owner}/view", h.handleViewWill)
		r.Get("/wills/{owner}/view/beneficiaries", h.handleViewWillForBeneficiaries)
		r.Post("/wills/{owner}/assets", h.handleCreateAsset)
		r.Put("/assets/{assetID}/beneficiaries", h.handleUpdateAssetBeneficiaries)
		r.Get("/wills/{owner}/proofs", h.handleProofs)
		r.Get("/wills/{owner}/distribution", h.handleGetDistribution)
		r.Get("/balances/{beneficiary}", h.handleGetBalance)
	})

	r.Route("/admin/wills", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Get("/", h.handleListWills)
		r.Post("/{owner}/confirm-death", h.handleConfirmDeath)
		r.Post("/{owner}/confirm-probate", h.handleConfirmProbate)
		r.Post("/{owner}/force-probate", h.handleForceProbate)
		r.Post("/{owner}/distribute", h.handleDistributeDigital)
		r.Post("/{owner}/distribute-estate", h.handleDistributeEstate)
		r.Post("/{owner}/assets/{assetID}/distribute", h.handleDistributeAsset)
	})
}

// -----------------------------------------------------------------------------
// Wills
// -----------------------------------------------------------------------------

func (h *Handler) handleCreateWill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[CreateWillRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	will, err := h.wills.CreateWill(ctx, requestcontext.Caller(ctx), req.nationalID)
	if err != nil {
		h.fail(ctx, w, "failed to create will", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, will)
}

func (h *Handler) handleGetWill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	will, err := h.wills.GetWill(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to get will", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, will)
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	state, err := h.wills.GetWillState(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to get will state", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StateResponse{Owner: owner, State: state})
}

func (h *Handler) handleGetDigitalAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	amount, err := h.wills.GetDigitalAssets(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to get digital assets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DigitalAssetsResponse{Owner: owner, DigitalAssets: amount})
}

func (h *Handler) handleFund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FundRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	will, err := h.wills.FundWill(ctx, owner, req.Amount)
	if err != nil {
		h.fail(ctx, w, "failed to fund will", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DigitalAssetsResponse{Owner: owner, DigitalAssets: will.DigitalAssets})
}

// -----------------------------------------------------------------------------
// Ledger
// -----------------------------------------------------------------------------

func (h *Handler) handleSetResidual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetResidualRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respondWill(w, r, "failed to set residual beneficiary")(h.wills.SetResidualBeneficiary(ctx, owner, req.beneficiary))
}

func (h *Handler) handleAddBeneficiaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SharesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respondWill(w, r, "failed to add beneficiaries")(h.wills.AddBeneficiaries(ctx, owner, req.shares))
}

func (h *Handler) handleUpdateAllocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SharesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respondWill(w, r, "failed to update allocations")(h.wills.UpdateAllocations(ctx, owner, req.shares))
}

func (h *Handler) handleRemoveBeneficiaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RemoveBeneficiariesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respondWill(w, r, "failed to remove beneficiaries")(h.wills.RemoveBeneficiaries(ctx, owner, req.beneficiaries))
}

func (h *Handler) handleGetAllocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	beneficiary, ok := h.identityParam(w, r, "beneficiary")
	if !ok {
		return
	}
	pct, err := h.wills.GetAllocationPercentage(ctx, owner, beneficiary)
	if err != nil {
		h.fail(ctx, w, "failed to get allocation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AllocationResponse{Beneficiary: beneficiary, Percent: pct})
}

// -----------------------------------------------------------------------------
// Editors and viewers
// -----------------------------------------------------------------------------

func (h *Handler) handleAddEditor(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "failed to add editor", h.wills.AddEditor)
}

func (h *Handler) handleRemoveEditor(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "failed to remove editor", h.wills.RemoveEditor)
}

func (h *Handler) handleAddViewer(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "failed to add viewer", h.wills.AddViewer)
}

func (h *Handler) handleRemoveViewer(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "failed to remove viewer", h.wills.RemoveViewer)
}

func (h *Handler) handleIsEditor(w http.ResponseWriter, r *http.Request) {
	h.isMember(w, r, "failed to check editor", h.wills.IsEditor)
}

func (h *Handler) handleIsViewer(w http.ResponseWriter, r *http.Request) {
	h.isMember(w, r, "failed to check viewer", h.wills.IsViewer)
}

func (h *Handler) membership(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, id.Identity, id.Identity) (*models.Will, error)) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	who, ok := h.identityParam(w, r, "identity")
	if !ok {
		return
	}
	h.respondWill(w, r, action)(op(ctx, owner, who))
}

func (h *Handler) isMember(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, id.Identity, id.Identity) (bool, error)) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	who, ok := h.identityParam(w, r, "identity")
	if !ok {
		return
	}
	member, err := op(ctx, owner, who)
	if err != nil {
		h.fail(ctx, w, action, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MembershipResponse{Identity: who, Member: member})
}

// -----------------------------------------------------------------------------
// Assets
// -----------------------------------------------------------------------------

func (h *Handler) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateAssetRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	asset, err := h.wills.CreateAsset(ctx, owner, req.input)
	if err != nil {
		h.fail(ctx, w, "failed to create asset", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, asset)
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assetID, ok := h.assetParam(w, r)
	if !ok {
		return
	}
	asset, err := h.wills.GetAsset(ctx, assetID)
	if err != nil {
		h.fail(ctx, w, "failed to get asset", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}

func (h *Handler) handleUpdateAssetBeneficiaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assetID, ok := h.assetParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SharesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	asset, err := h.wills.UpdateAssetBeneficiaries(ctx, assetID, req.shares)
	if err != nil {
		h.fail(ctx, w, "failed to update asset beneficiaries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}

// -----------------------------------------------------------------------------
// Views
// -----------------------------------------------------------------------------

func (h *Handler) handleViewWill(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "failed to view will", h.wills.ViewWill)
}

func (h *Handler) handleViewWillForBeneficiaries(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "failed to view will", h.wills.ViewWillForBeneficiaries)
}

// view writes the report as plain text when the client asks for it and as
// JSON otherwise.
func (h *Handler) view(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, id.Identity) (models.Report, error)) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	report, err := op(ctx, owner)
	if err != nil {
		h.fail(ctx, w, action, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report.String()))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReportResponse{Report: report, Text: report.String()})
}

func (h *Handler) handleProofs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	proofs, err := h.wills.ViewAllAssetDistributionProofs(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to list distribution proofs", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProofsResponse{Owner: owner, Proofs: proofs})
}

func (h *Handler) handleGetDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	record, err := h.wills.GetDistribution(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to get distribution", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	beneficiary, ok := h.identityParam(w, r, "beneficiary")
	if !ok {
		return
	}
	balance, err := h.wills.GetBalance(ctx, beneficiary)
	if err != nil {
		h.fail(ctx, w, "failed to get balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Beneficiary: beneficiary, Balance: balance})
}

// -----------------------------------------------------------------------------
// Operator
// -----------------------------------------------------------------------------

func (h *Handler) handleListWills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := models.ParseState(r.URL.Query().Get("state"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	wills, err := h.wills.ListWillsByState(ctx, state)
	if err != nil {
		h.fail(ctx, w, "failed to list wills", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WillListResponse{Wills: wills})
}

func (h *Handler) handleConfirmDeath(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, "failed to confirm death", h.wills.ConfirmDeath)
}

func (h *Handler) handleConfirmProbate(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, "failed to confirm grant of probate", h.wills.ConfirmGrantOfProbate)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, id.Identity) (models.ConfirmationOutcome, error)) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	outcome, err := op(ctx, owner)
	if err != nil {
		h.fail(ctx, w, action, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleForceProbate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	will, err := h.wills.ForceGrantOfProbate(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to force grant of probate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StateResponse{Owner: owner, State: will.State})
}

func (h *Handler) handleDistributeDigital(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	record, err := h.wills.DistributeDigitalAssets(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to distribute digital assets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleDistributeEstate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	result, err := h.wills.DistributeEstate(ctx, owner)
	if err != nil {
		h.fail(ctx, w, "failed to distribute estate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDistributeAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	assetID, ok := h.assetParam(w, r)
	if !ok {
		return
	}
	outcome, err := h.wills.DistributeAsset(ctx, owner, assetID)
	if err != nil {
		h.fail(ctx, w, "failed to distribute asset", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (h *Handler) ownerParam(w http.ResponseWriter, r *http.Request) (id.Identity, bool) {
	return h.identityParam(w, r, "owner")
}

func (h *Handler) identityParam(w http.ResponseWriter, r *http.Request, name string) (id.Identity, bool) {
	v, err := id.ParseIdentity(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s", name))
		return "", false
	}
	return v, true
}

func (h *Handler) assetParam(w http.ResponseWriter, r *http.Request) (id.AssetID, bool) {
	v, err := id.ParseAssetID(chi.URLParam(r, "assetID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return v, true
}

// respondWill returns a writer for the common (*Will, error) result.
func (h *Handler) respondWill(w http.ResponseWriter, r *http.Request, action string) func(*models.Will, error) {
	return func(will *models.Will, err error) {
		if err != nil {
			h.fail(r.Context(), w, action, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, will)
	}
}

// fail logs at a level matching the error class and writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, action,
			"request_id", requestID,
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, action,
			"request_id", requestID,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
