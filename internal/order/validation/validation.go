// Package validation gates every order operation before it reaches storage.
// Each check stops at the first failing field.
package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ordermgmt/internal/domain"
	"ordermgmt/internal/dto"
	apperrors "ordermgmt/internal/errors"
)

const (
	msgInvalidPage         = "Page must be greater than 0"
	msgInvalidPageSize     = "Page size must be between 1 and 100"
	msgInvalidStatusFilter = "Invalid status filter. Must be: pending, completed, or cancelled"
)

func ValidateCreate(req dto.CreateOrderRequest) error {
	if err := domain.ValidateCustomerName(strings.TrimSpace(req.CustomerName)); err != nil {
		return err
	}
	if err := domain.ValidateItem(strings.TrimSpace(req.Item)); err != nil {
		return err
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return err
	}
	if s := req.StatusValue(); s != nil {
		return domain.ValidateStatus(*s)
	}
	return nil
}

func ValidateUpdate(req dto.UpdateOrderRequest) error {
	if req.IsEmpty() {
		return apperrors.NewNoFieldsProvidedError()
	}

	if req.CustomerName.Set {
		if err := domain.ValidateCustomerName(strings.TrimSpace(req.CustomerName.Value)); err != nil {
			return err
		}
	}
	if req.Item.Set {
		if err := domain.ValidateItem(strings.TrimSpace(req.Item.Value)); err != nil {
			return err
		}
	}
	if req.Quantity.Set {
		if err := domain.ValidateQuantity(req.Quantity.Value); err != nil {
			return err
		}
	}
	if req.Status.Set {
		if err := domain.ValidateStatus(domain.Status(req.Status.Value)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateID accepts only canonical 8-4-4-4-12 UUID text with an RFC 4122
// variant and a version between 1 and 5.
func ValidateID(id string) error {
	if id == "" || len(id) != 36 {
		return apperrors.NewInvalidIDError(id)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return apperrors.NewInvalidIDError(id)
	}
	if v := parsed.Version(); v < 1 || v > 5 {
		return apperrors.NewInvalidIDError(id)
	}
	if parsed.Variant() != uuid.RFC4122 {
		return apperrors.NewInvalidIDError(id)
	}
	return nil
}

func ParseListQuery(values url.Values) (domain.ListQuery, error) {
	q := domain.DefaultListQuery()

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, apperrors.NewFieldError("page", msgInvalidPage)
		}
		q.Page = page
	}

	if raw := values.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > domain.MaxPageSize {
			return q, apperrors.NewFieldError("page_size", msgInvalidPageSize)
		}
		q.PageSize = size
	}

	if raw := values.Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return q, apperrors.NewFieldError("status", msgInvalidStatusFilter)
		}
		q.Status = &status
	}

	return q, nil
}

// ValidateListQuery re-checks an already built query against the same bounds
// ParseListQuery enforces.
func ValidateListQuery(q domain.ListQuery) error {
	if q.Page < 1 {
		return apperrors.NewFieldError("page", msgInvalidPage)
	}
	if q.PageSize < 1 || q.PageSize > domain.MaxPageSize {
		return apperrors.NewFieldError("page_size", msgInvalidPageSize)
	}
	if q.Status != nil && !q.Status.Valid() {
		return apperrors.NewFieldError("status", msgInvalidStatusFilter)
	}
	return nil
}
