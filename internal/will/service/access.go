package service

import (
	"context"
	"time"

	"testament/internal/will/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/audit"
)

func (s *Service) AddEditor(ctx context.Context, owner, editor id.Identity) (*models.Will, error) {
	return s.updateWill(ctx, owner, ownerOnly(ctx),
		func(w *models.Will, now time.Time) error { return w.AddEditor(editor, now) },
		auditRecord{event: audit.EventEditorAdded, subject: editor.String()},
	)
}

func (s *Service) RemoveEditor(ctx context.Context, owner, editor id.Identity) (*models.Will, error) {
	return s.updateWill(ctx, owner, ownerOnly(ctx),
		func(w *models.Will, now time.Time) error { return w.RemoveEditor(editor, now) },
		auditRecord{event: audit.EventEditorRemoved, subject: editor.String()},
	)
}

func (s *Service) IsEditor(ctx context.Context, owner, who id.Identity) (bool, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return false, wrapWillErr(err, "failed to load will")
	}
	return w.IsEditor(who), nil
}

func (s *Service) AddViewer(ctx context.Context, owner, viewer id.Identity) (*models.Will, error) {
	return s.updateWill(ctx, owner, ownerOnly(ctx),
		func(w *models.Will, now time.Time) error { return w.AddViewer(viewer, now) },
		auditRecord{event: audit.EventViewerAdded, subject: viewer.String()},
	)
}

func (s *Service) RemoveViewer(ctx context.Context, owner, viewer id.Identity) (*models.Will, error) {
	return s.updateWill(ctx, owner, ownerOnly(ctx),
		func(w *models.Will, now time.Time) error { return w.RemoveViewer(viewer, now) },
		auditRecord{event: audit.EventViewerRemoved, subject: viewer.String()},
	)
}

func (s *Service) IsViewer(ctx context.Context, owner, who id.Identity) (bool, error) {
	w, err := s.wills.FindByOwner(ctx, owner)
	if err != nil {
		return false, wrapWillErr(err, "failed to load will")
	}
	return w.IsViewer(who), nil
}
