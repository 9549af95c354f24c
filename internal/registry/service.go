package registry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
	"github.com/olgakuznetsova/minimarket-core/pkg/validate"
)

const invalidCredentialsMessage = "invalid credentials"

// Session is the explicit seller session identity threaded through the
// shell. Seller is always a credential-stripped view; nil means signed out.
type Session struct {
	Seller *models.Seller
}

// Service is the seller self-service registry: session management plus
// CRUD over the seller's own product subset. Credentials are compared in
// plain text, a development-grade placeholder rather than a security
// boundary.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*Session, error)

	GetSeller(ctx context.Context, id string) (*models.Seller, error)
	ListSellers(ctx context.Context) ([]models.Seller, error)

	ListSellerProducts(ctx context.Context, sellerID string) ([]models.Product, error)
	AddSellerProduct(ctx context.Context, sellerID string, input ProductInput) (*models.Product, error)
	UpdateSellerProduct(ctx context.Context, sellerID, productID string, input ProductInput) (*models.Product, error)
	DeleteSellerProduct(ctx context.Context, sellerID, productID string) error
}

// RegisterInput is the seller registration form.
type RegisterInput struct {
	StoreName      string `json:"storeName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	CommissionType string `json:"commissionType" validate:"required,oneof=percentage subscription"`
}

// LoginInput is the seller login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type service struct {
	store    *store.Store
	sellers  store.Collection[models.Seller]
	products store.Collection[models.Product]
	notifier notify.Notifier
	now      func() time.Time
}

// ServiceParams bundles registry dependencies.
type ServiceParams struct {
	Store    *store.Store
	Notifier notify.Notifier
	Now      func() time.Time
}

// NewService builds the registry service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("collection store required")
	}
	if params.Notifier == nil {
		params.Notifier = notify.Nop{}
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		store:    params.Store,
		sellers:  store.Sellers(params.Store),
		products: store.Products(params.Store),
		notifier: params.Notifier,
		now:      params.Now,
	}, nil
}

// Register creates the seller record (plaintext credential included) and
// establishes it as the active session.
func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	commission, err := enums.ParseCommissionType(input.CommissionType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid commission type")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := input.Password
	createdAt := s.now().UTC()
	seller := models.Seller{
		ID:                     models.NewID(),
		Name:                   input.StoreName,
		Avatar:                 avatarURL(input.StoreName),
		Rating:                 5.0,
		ReviewsCount:           0,
		PositiveReviewsPercent: 100,
		Email:                  &email,
		Password:               &password,
		CreatedAt:              &createdAt,
		CommissionType:         &commission,
	}
	if input.Description != "" {
		seller.Description = &input.Description
	}
	if input.Category != "" {
		seller.Category = &input.Category
	}

	if _, err := s.sellers.Mutate(ctx, func(all []models.Seller) ([]models.Seller, error) {
		for _, existing := range all {
			if existing.Email != nil && strings.EqualFold(*existing.Email, email) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
			}
		}
		return append(all, seller), nil
	}); err != nil {
		return nil, err
	}

	public := seller.Public()
	if err := s.store.SetCurrentSeller(ctx, &public); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notify.Event{
		Name:    "seller.registered",
		Message: fmt.Sprintf("Welcome, %s! Your seller panel is ready", seller.Name),
		Level:   enums.NotificationLevelSuccess,
	})
	return &Session{Seller: &public}, nil
}

// Login matches email and plaintext password exactly against the seller
// collection and replaces the active session with a credential-stripped
// view.
func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	all, err := s.sellers.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, seller := range all {
		if seller.Email == nil || seller.Password == nil {
			continue
		}
		if strings.EqualFold(*seller.Email, strings.TrimSpace(input.Email)) &&
			*seller.Password == input.Password {
			public := seller.Public()
			if err := s.store.SetCurrentSeller(ctx, &public); err != nil {
				return nil, err
			}
			return &Session{Seller: &public}, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
}

// Logout clears the active session identity.
func (s *service) Logout(ctx context.Context) error {
	return s.store.SetCurrentSeller(ctx, nil)
}

// Current returns the active session; Seller is nil when signed out.
func (s *service) Current(ctx context.Context) (*Session, error) {
	seller, err := s.store.CurrentSeller(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{Seller: seller}, nil
}

// GetSeller returns nil without error when the id is unknown.
func (s *service) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	all, err := s.sellers.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, seller := range all {
		if seller.ID == id {
			public := seller.Public()
			return &public, nil
		}
	}
	return nil, nil
}

// ListSellers returns credential-stripped views of every seller.
func (s *service) ListSellers(ctx context.Context) ([]models.Seller, error) {
	all, err := s.sellers.Get(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]models.Seller, 0, len(all))
	for _, seller := range all {
		public = append(public, seller.Public())
	}
	return public, nil
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
