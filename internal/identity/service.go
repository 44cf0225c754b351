package identity

import (
	"context"
	"errors"
	"time"

	"github.com/thomsonxavier/kaviecommerce/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const inviteTTL = 48 * time.Hour

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

type AdminCreateInput struct {
	Email       string
	Password    string
	Name        string
	InviteToken string
}

// Service is the identity-provider collaborator: it creates accounts, issues
// bearer tokens and resolves them back to a caller identity.
type Service interface {
	SignupCustomer(ctx context.Context, input SignupInput) (*Account, error)
	CreateAdmin(ctx context.Context, input AdminCreateInput) (*Account, error)
	Login(ctx context.Context, email, password string) (string, *Account, error)
	Verify(ctx context.Context, token string) (*Identity, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	CreateInvite(ctx context.Context, createdBy string) (*Invite, error)
	EnsureAdmin(ctx context.Context, email, password, name string) (*Account, error)
}

type service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, secret: jwtSecret}
}

func (s *service) SignupCustomer(ctx context.Context, input SignupInput) (*Account, error) {
	return s.createAccount(ctx, input, RoleCustomer)
}

// CreateAdmin redeems a single-use invite; the invite replaces the shared
// master password the storefront used to embed in client code.
func (s *service) CreateAdmin(ctx context.Context, input AdminCreateInput) (*Account, error) {
	log := logger.FromCtx(ctx)

	inv, err := s.repo.ConsumeInvite(ctx, input.InviteToken)
	if err != nil {
		log.Warn("admin create rejected", zap.Error(err))
		return nil, err
	}
	if time.Now().After(inv.ExpiresAt) {
		log.Warn("admin create rejected: invite expired",
			zap.Time("expires_at", inv.ExpiresAt),
		)
		return nil, ErrInviteInvalid
	}

	return s.createAccount(ctx, SignupInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	}, RoleAdmin)
}

func (s *service) createAccount(ctx context.Context, input SignupInput, role Role) (*Account, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	acc := &Account{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hashed,
		Name:         input.Name,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		log.Error("failed to create account",
			zap.String("email", input.Email),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("account created",
		zap.String("account_id", acc.ID),
		zap.String("role", string(role)),
	)

	return acc, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, acc.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, acc)
	if err != nil {
		return "", nil, err
	}

	return token, acc, nil
}

// Verify resolves a bearer token to the caller identity, the contract the
// authorization gate consumes.
func (s *service) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   Role(claims.Role),
	}, nil
}

func (s *service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) CreateInvite(ctx context.Context, createdBy string) (*Invite, error) {
	inv := &Invite{
		Token:     uuid.New().String(),
		Role:      RoleAdmin,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(inviteTTL),
	}

	if err := s.repo.CreateInvite(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Used by the seeder so a fresh deployment has a way into the admin panel.
func (s *service) EnsureAdmin(ctx context.Context, email, password, name string) (*Account, error) {
	if acc, err := s.repo.FindByEmail(ctx, email); err == nil {
		return acc, nil
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	return s.createAccount(ctx, SignupInput{
		Email:    email,
		Password: password,
		Name:     name,
	}, RoleAdmin)
}
