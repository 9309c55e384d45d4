package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"rental-app-go/internal/domain/document"
)

const DefaultCooldownDays = 7

type Service struct {
	repo         Repository
	docs         document.Repository
	notifier     Notifier
	cooldownDays int
	now          func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithCooldownDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.cooldownDays = days
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, docs document.Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		docs:         docs,
		notifier:     noopNotifier{},
		cooldownDays: DefaultCooldownDays,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*CreateResult, error) {
	if !actor.IsTenant {
		return nil, ErrTenantRoleRequired
	}

	documentIDs := dedupe(input.DocumentIDs)
	if len(documentIDs) > 0 {
		owned, err := s.docs.AllOwnedBy(ctx, documentIDs, actor.ID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrForeignDocument
		}
	}

	var created Application
	var ownerID string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		prop, err := tx.GetProperty(ctx, input.PropertyID)
		if err != nil {
			return err
		}
		ownerID = prop.OwnerID
		if prop.OwnerID == actor.ID {
			return ErrOwnProperty
		}
		if !prop.Available {
			return ErrPropertyUnavailable
		}

		if err := s.checkCooldown(ctx, tx, input.PropertyID, actor.ID); err != nil {
			return err
		}

		active, err := tx.FindActive(ctx, input.PropertyID, actor.ID)
		if err != nil {
			return err
		}
		if active != nil {
			live, err := tx.HasLiveLease(ctx, input.PropertyID, actor.ID)
			if err != nil {
				return err
			}
			if live {
				return ErrAlreadyApplied
			}
			// The previous tenancy ran its course; the stale
			// application makes way for a fresh one.
			if err := tx.Delete(ctx, active.ID); err != nil {
				return err
			}
		}

		created = Application{
			ID:         uuid.NewString(),
			PropertyID: input.PropertyID,
			TenantID:   actor.ID,
			Status:     StatusPending,
		}
		if message := strings.TrimSpace(input.Message); message != "" {
			created.Message = &message
		}
		if err := tx.Create(ctx, &created); err != nil {
			return err
		}

		if len(documentIDs) > 0 {
			links := make([]DocumentLink, 0, len(documentIDs))
			for _, documentID := range documentIDs {
				links = append(links, DocumentLink{ApplicationID: created.ID, DocumentID: documentID})
			}
			if err := tx.CreateDocumentLinks(ctx, links); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ApplicationSubmitted(ctx, &created, ownerID, len(documentIDs))

	return &CreateResult{Application: &created, DocumentCount: len(documentIDs)}, nil
}

func (s *Service) checkCooldown(ctx context.Context, tx Repository, propertyID, tenantID string) error {
	cancelled, err := tx.FindLatestCancelled(ctx, propertyID, tenantID)
	if err != nil {
		return err
	}
	if cancelled == nil {
		return nil
	}

	daysSince := int(s.now().Sub(cancelled.UpdatedAt).Hours() / 24)
	if daysSince >= s.cooldownDays {
		return nil
	}
	return &CooldownError{DaysLeft: s.cooldownDays - daysSince}
}

// Decide applies an owner decision (accept/reject) or a tenant
// cancellation to a PENDING application. A cancellation stamps the
// cooldown window through the row's update time.
func (s *Service) Decide(ctx context.Context, actor Actor, applicationID string, next Status) (*Application, error) {
	var decided Application
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		app, err := tx.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}

		switch next {
		case StatusAccepted, StatusRejected:
			prop, err := tx.GetProperty(ctx, app.PropertyID)
			if err != nil {
				return err
			}
			if prop.OwnerID != actor.ID {
				return ErrNotPropertyOwner
			}
		case StatusCancelled:
			if app.TenantID != actor.ID {
				return ErrNotApplicant
			}
		default:
			return ErrInvalidTransition
		}

		if !app.Status.decidable(next) {
			return ErrInvalidTransition
		}

		if err := tx.UpdateStatus(ctx, app.ID, next); err != nil {
			return err
		}

		decided = *app
		decided.Status = next
		decided.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ApplicationDecided(ctx, &decided)
	return &decided, nil
}

// List is role-scoped: owners see every application across their
// properties, tenants see their own.
func (s *Service) List(ctx context.Context, actor Actor, asOwner bool) ([]Application, error) {
	if asOwner {
		if !actor.IsOwner {
			return nil, ErrNotPropertyOwner
		}
		return s.repo.ListByOwner(ctx, actor.ID)
	}
	return s.repo.ListByTenant(ctx, actor.ID)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
