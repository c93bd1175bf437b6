package service

import (
	"context"
	"errors"

	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/sentinel"
)

// wrapWillErr translates store sentinels into coded errors. Errors that
// already carry a code pass through unchanged.
func wrapWillErr(err error, action string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "will not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "will already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, action)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapAssetErr(err error, action string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "asset not found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, action)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// wrapRegistryErr keeps coded registry errors (the HTTP client maps its
// provider failures to codes) and treats anything else as an outage.
func wrapRegistryErr(err error, registry string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, registry+" registry timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, registry+" registry unavailable")
}

func wrapNotDistributed(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "will has not been distributed")
	}
	return wrapWillErr(err, "failed to load distribution")
}
