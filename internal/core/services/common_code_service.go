package services

import (
	"context"
	"fmt"
	"strings"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
)

// CommonCodeInput is a create or update request. Nil fields are untouched on
// update.
type CommonCodeInput struct {
	Group *string `json:"group"`
	Code  *string `json:"code"`
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

// CommonCodeService manages the admin-maintained code groups
type CommonCodeService struct {
	codes repositories.CommonCodeRepository
}

// NewCommonCodeService creates a new common code service
func NewCommonCodeService(codes repositories.CommonCodeRepository) *CommonCodeService {
	return &CommonCodeService{codes: codes}
}

// ListPublic returns the codes of group ordered by order then code. An empty
// group returns every code.
func (s *CommonCodeService) ListPublic(ctx context.Context, group string) ([]*domain.CommonCode, error) {
	return s.codes.ListByGroup(ctx, strings.TrimSpace(group))
}

// ListAll returns every code ordered by group then order
func (s *CommonCodeService) ListAll(ctx context.Context) ([]*domain.CommonCode, error) {
	return s.codes.ListAll(ctx)
}

// Create stores a new code. Group and code are required.
func (s *CommonCodeService) Create(ctx context.Context, input *CommonCodeInput) (*domain.CommonCode, error) {
	group, err := requiredText("group", input.Group)
	if err != nil {
		return nil, err
	}
	code, err := requiredText("code", input.Code)
	if err != nil {
		return nil, err
	}

	c := &domain.CommonCode{Group: group, Code: code}
	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Order != nil {
		c.Order = *input.Order
	}
	if err := s.codes.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create common code: %w", err)
	}
	return c, nil
}

// Update changes the given fields of a code
func (s *CommonCodeService) Update(ctx context.Context, id string, input *CommonCodeInput) (*domain.CommonCode, error) {
	if _, err := s.codes.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := domain.FieldSet{}
	if input.Group != nil {
		group, err := requiredText("group", input.Group)
		if err != nil {
			return nil, err
		}
		fields["group"] = group
	}
	if input.Code != nil {
		code, err := requiredText("code", input.Code)
		if err != nil {
			return nil, err
		}
		fields["code"] = code
	}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Order != nil {
		fields["order"] = *input.Order
	}
	if err := s.codes.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update common code %s: %w", id, err)
	}
	return s.codes.GetByID(ctx, id)
}

// Delete removes a code
func (s *CommonCodeService) Delete(ctx context.Context, id string) error {
	return s.codes.Delete(ctx, id)
}

func requiredText(field string, value *string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", domain.NewValidationError(field, field+" 값을 입력하세요.")
	}
	return strings.TrimSpace(*value), nil
}
