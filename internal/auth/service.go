package auth

import (
	"context"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/jwt"
)

// DefaultAdminUsername is the username given to the admin account created on
// the first startup, when the configuration provides an admin password.
const DefaultAdminUsername = "admin"

// Authenticator determines the methods available to users get authenticated.
type Authenticator interface {

	// Authenticate authenticates a user by its credentials and returns a JWT tokens, otherwise an error.
	Authenticate(ctx context.Context, credentials Credentials) (*Tokens, error)
}

// Authorizer determines the methods used to authorize a user to perform some action.
type Authorizer interface {

	// ValidateToken validates the given token, returning the user associated to it.
	ValidateToken(ctx context.Context, token string) (*User, error)

	// RefreshTokens generates new tokens based on the given one.
	RefreshTokens(ctx context.Context, tokens Tokens) (*Tokens, error)

	// GetAuthenticatedUser gets the authenticated user associated to context.
	GetAuthenticatedUser(ctx context.Context) (User, error)
}

// Registrar determines the methods used to create accounts.
type Registrar interface {

	// Register creates a new account and its role profile.
	Register(ctx context.Context, registration Registration) error

	// EnsureDefaultAdmin creates the default admin account if no admin exists yet.
	EnsureDefaultAdmin(ctx context.Context, password string) error
}

// ProfileManager determines the methods used by accounts to manage their own profiles.
type ProfileManager interface {

	// GetProfile gets the role profile of the authenticated user.
	GetProfile(ctx context.Context, user User) (*Profile, error)

	// UpdateProfile updates the role profile of the authenticated user.
	UpdateProfile(ctx context.Context, user User, update ProfileUpdate) error
}

type Service interface {
	Authenticator
	Authorizer
	Registrar
	ProfileManager
}

type defaultService struct {
	repository Repository
	config     configs.Config
}

// NewService creates a new auth service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) Authenticate(ctx context.Context, credentials Credentials) (*Tokens, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	user, err := d.repository.FindUserByUsername(ctx, credentials.Username)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError()
	}
	isValidCredentials, err := d.repository.CheckUserPassword(ctx, credentials.Username, credentials.Password)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if !isValidCredentials {
		return nil, NewUnauthorizedError()
	}
	return GenerateTokens(ctx, d.config.PrivateKey(), *user)
}

func (d defaultService) ValidateToken(ctx context.Context, token string) (*User, error) {
	bearer := strings.TrimPrefix(token, "Bearer ")
	parsedToken, err := ParseToken(bearer, d.config.PrivateKey().PublicKey)
	if err != nil {
		return nil, NewUnauthorizedError()
	}
	if !time.Now().Before(parsedToken.Expiration()) {
		return nil, NewUnauthorizedError()
	}
	user, err := d.repository.FindUserByUUID(ctx, uuid.MustParse(parsedToken.Subject()))
	if err != nil {
		return nil, NewUnauthorizedError()
	}
	if user == nil {
		return nil, NewUnauthorizedError()
	}
	return user, nil
}

func (d defaultService) RefreshTokens(ctx context.Context, tokens Tokens) (*Tokens, error) {
	if err := tokens.Validate(); err != nil {
		return nil, err
	}
	refreshToken, err := jwt.ParseString(tokens.RefreshToken)
	if err != nil {
		return nil, NewUnauthorizedError()
	}
	if !time.Now().Before(refreshToken.Expiration()) {
		return nil, NewUnauthorizedError()
	}
	user, err := d.repository.FindUserByUUID(ctx, uuid.MustParse(refreshToken.Subject()))
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError()
	}
	return GenerateTokens(ctx, d.config.PrivateKey(), *user)
}

func (d defaultService) GetAuthenticatedUser(ctx context.Context) (User, error) {
	user, isUser := ctx.Value(UserContextKey).(User)
	if !isUser {
		return User{}, NewUnauthorizedError()
	}
	return user, nil
}

func (d defaultService) Register(ctx context.Context, registration Registration) error {
	if err := registration.Validate(); err != nil {
		return err
	}
	existing, err := d.repository.FindUserByUsername(ctx, registration.Username)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if existing != nil {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrUsernameAlreadyExists), apierrors.WithHTTPStatusCode(http.StatusConflict))
	}
	hashedPass, err := EncryptPassword(registration.Password)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	user := User{
		UUID:     uuid.New(),
		Username: registration.Username,
		Password: hashedPass,
		Role:     registration.Role,
	}
	if err = d.repository.InsertUser(ctx, user, registration.FullName); err != nil {
		if database.IsUniqueViolation(err) {
			return apierrors.NewAPIError(apierrors.WithDetail(ErrUsernameAlreadyExists), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}

func (d defaultService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	admin, err := d.repository.FindAnyUserByRole(ctx, AdminRole)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if admin != nil {
		return nil
	}
	return d.Register(ctx, Registration{
		Username: DefaultAdminUsername,
		Password: password,
		Role:     AdminRole,
		FullName: "Super Admin",
	})
}

func (d defaultService) GetProfile(ctx context.Context, user User) (*Profile, error) {
	profile, err := d.repository.FindProfile(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if profile == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrProfileNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return profile, nil
}

func (d defaultService) UpdateProfile(ctx context.Context, user User, update ProfileUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	profile, err := d.repository.FindProfile(ctx, user)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if profile == nil {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrProfileNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if err = d.repository.UpdateProfile(ctx, user, update); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}
