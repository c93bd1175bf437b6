package service

import (
	"context"

	"testament/internal/will/models"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/requestcontext"
)

var errNotAuthorized = dErrors.New(dErrors.CodeForbidden, "Not authorized")

func requireOperator(ctx context.Context) error {
	if !requestcontext.IsOperator(ctx) {
		return dErrors.New(dErrors.CodeForbidden, "platform operator required")
	}
	return nil
}

// ownerOnly authorizes editor and viewer management.
func ownerOnly(ctx context.Context) func(*models.Will) error {
	caller := requestcontext.Caller(ctx)
	return func(w *models.Will) error {
		if !w.IsOwner(caller) {
			return errNotAuthorized
		}
		return nil
	}
}

// ownerOrEditor authorizes ledger and asset mutations.
func ownerOrEditor(ctx context.Context) func(*models.Will) error {
	caller := requestcontext.Caller(ctx)
	return func(w *models.Will) error {
		if !w.CanEdit(caller) {
			return errNotAuthorized
		}
		return nil
	}
}

// canRead decides access to the full will. Beneficiaries gain read access
// once the owner's death is confirmed.
func canRead(ctx context.Context, w *models.Will) bool {
	if requestcontext.IsOperator(ctx) {
		return true
	}
	caller := requestcontext.Caller(ctx)
	if w.CanEdit(caller) || w.IsViewer(caller) {
		return true
	}
	return w.State != models.StateInCreation && w.IsBeneficiary(caller)
}
