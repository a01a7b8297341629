package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/pkg/logger"
)

const ContactThankYou = "Thank you for contacting us. We will get back to you soon."

type ContactInput struct {
	Name    string
	Email   string
	Website string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*model.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Website: strings.TrimSpace(input.Website),
		Message: strings.TrimSpace(input.Message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, ErrFieldsRequired
	}

	if err := s.contactRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	logger.Info("Contact message received", map[string]interface{}{
		"id":    msg.ID,
		"email": msg.Email,
	})
	return msg, nil
}
