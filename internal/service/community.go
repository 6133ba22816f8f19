package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/email"
	"github.com/communityhub/backend/pkg/validator"

	"github.com/google/uuid"
)

type volunteerService struct {
	repo repository.VolunteerRepository
}

func newVolunteerService(repo repository.VolunteerRepository) *volunteerService {
	return &volunteerService{repo: repo}
}

func (s *volunteerService) Create(ctx context.Context, v *domain.Volunteer) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrBadInput)
	}
	if !email.IsEmailValid(v.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrBadInput)
	}
	if !validator.IsValidPhone(v.Phone) {
		return fmt.Errorf("%w: phone must be a 10-digit mobile number", domain.ErrBadInput)
	}

	v.ID = uuid.New()
	v.CreatedAt = time.Now()

	return s.repo.Create(ctx, v)
}

func (s *volunteerService) GetAll(ctx context.Context, page, limit int) ([]*domain.Volunteer, error) {
	page, limit = clampPage(page, limit)
	return s.repo.GetAll(ctx, limit, (page-1)*limit)
}

func (s *volunteerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type suggestionService struct {
	repo repository.SuggestionRepository
}

func newSuggestionService(repo repository.SuggestionRepository) *suggestionService {
	return &suggestionService{repo: repo}
}

func (s *suggestionService) Create(ctx context.Context, sg *domain.Suggestion) error {
	if strings.TrimSpace(sg.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrBadInput)
	}
	if !email.IsEmailValid(sg.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrBadInput)
	}
	if strings.TrimSpace(sg.Body) == "" {
		return fmt.Errorf("%w: suggestion body is required", domain.ErrBadInput)
	}

	sg.ID = uuid.New()
	sg.CreatedAt = time.Now()

	return s.repo.Create(ctx, sg)
}

func (s *suggestionService) GetAll(ctx context.Context, page, limit int) ([]*domain.Suggestion, error) {
	page, limit = clampPage(page, limit)
	return s.repo.GetAll(ctx, limit, (page-1)*limit)
}

func (s *suggestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type messageService struct {
	repo repository.MessageRepository
}

func newMessageService(repo repository.MessageRepository) *messageService {
	return &messageService{repo: repo}
}

func (s *messageService) Create(ctx context.Context, m *domain.ContactMessage) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrBadInput)
	}
	if !email.IsEmailValid(m.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrBadInput)
	}
	if m.Phone != nil && !validator.IsValidPhone(*m.Phone) {
		return fmt.Errorf("%w: phone must be a 10-digit mobile number", domain.ErrBadInput)
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: message body is required", domain.ErrBadInput)
	}

	m.ID = uuid.New()
	m.Status = domain.MessageUnread
	m.CreatedAt = time.Now()

	return s.repo.Create(ctx, m)
}

func (s *messageService) GetAll(ctx context.Context, page, limit int, status *domain.MessageStatus) ([]*domain.ContactMessage, error) {
	page, limit = clampPage(page, limit)
	return s.repo.GetAll(ctx, limit, (page-1)*limit, status)
}

func (s *messageService) SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	if status != domain.MessageRead && status != domain.MessageUnread {
		return fmt.Errorf("%w: unknown message status %q", domain.ErrBadInput, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
