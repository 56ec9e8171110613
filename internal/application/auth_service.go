package application

import (
	"context"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/auth"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	userDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest holds the data needed to create an administrator.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO is the response representation of an account. The password
// hash is never exposed.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResultDTO pairs a freshly issued token with its account.
type AuthResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService is the application service for account management and
// session handling.
type AuthService struct {
	users  userDomain.Repository
	jwt    *auth.JWTManager
	tokens *auth.TokenStore
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users userDomain.Repository,
	jwt *auth.JWTManager,
	tokens *auth.TokenStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwt,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new administrator account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResultDTO, error) {
	account, err := userDomain.New(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("user_id", account.ID().String()),
		zap.String("email", account.Email()),
	)
	return s.issueToken(account)
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password answer with the same message.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResultDTO, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.NewValidationError("Veuillez fournir un email et un mot de passe")
	}

	account, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("Identifiants invalides")
		}
		return nil, err
	}

	if !account.MatchPassword(req.Password) {
		return nil, domain.NewUnauthorizedError("Identifiants invalides")
	}

	s.logger.Info("account logged in", zap.String("user_id", account.ID().String()))
	return s.issueToken(account)
}

// CurrentUser returns the account behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	account, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(account)
	return &dto, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.tokens.Block(ctx, tokenID, expiresAt)
}

// EnsureAdmin creates the bootstrap administrator when the accounts
// table is empty. Called once at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	count, err := s.users.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	account, err := userDomain.New(name, email, password)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, account); err != nil {
		return err
	}

	s.logger.Info("bootstrap administrator created", zap.String("email", email))
	return nil
}

func (s *AuthService) issueToken(account *userDomain.User) (*AuthResultDTO, error) {
	token, err := s.jwt.Generate(account.ID(), account.Role())
	if err != nil {
		return nil, err
	}
	return &AuthResultDTO{Token: token, User: toUserDTO(account)}, nil
}

func toUserDTO(account *userDomain.User) UserDTO {
	return UserDTO{
		ID:        account.ID(),
		Name:      account.Name(),
		Email:     account.Email(),
		Role:      account.Role(),
		CreatedAt: account.CreatedAt(),
	}
}
