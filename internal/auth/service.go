package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightlaunch/academy-cms-backend/internal/operators"
	"github.com/brightlaunch/academy-cms-backend/internal/profiles"
	pkgAuth "github.com/brightlaunch/academy-cms-backend/pkg/auth"
	"github.com/brightlaunch/academy-cms-backend/pkg/auth/session"
	"github.com/brightlaunch/academy-cms-backend/pkg/config"
	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth and session controllers.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	Logout(ctx context.Context, accessID string) error
	Session(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*SessionResponse, error)
	SetEditMode(ctx context.Context, accessID string, enabled bool) (*EditModeResponse, error)
}

type operatorRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type profileRepository interface {
	FindByOperatorID(ctx context.Context, operatorID uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
	SetEditMode(ctx context.Context, accessID string, enabled bool) error
	EditMode(ctx context.Context, accessID string) (bool, error)
}

type service struct {
	operators operatorRepository
	profiles  profileRepository
	session   sessionManager
	jwtCfg    config.JWTConfig
	logg      *logger.Logger
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	OperatorRepo   operatorRepository
	ProfileRepo    profileRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	Logger         *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OperatorRepo == nil {
		return nil, fmt.Errorf("operator repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		operators: params.OperatorRepo,
		profiles:  params.ProfileRepo,
		session:   params.SessionManager,
		jwtCfg:    params.JWTConfig,
		logg:      params.Logger,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	operator, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.ensureProfile(ctx, operator.ID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now, err := s.recordLogin(ctx, operator)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	tokenPayload := pkgAuth.AccessTokenPayload{
		OperatorID: operator.ID,
		ProfileID:  profile.ID,
		Email:      operator.Email,
		Role:       profile.Role,
		JTI:        accessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, tokenPayload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Operator:     operators.FromModel(operator),
		Profile:      profiles.FromModel(profile),
	}, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	tokenPayload := pkgAuth.AccessTokenPayload{
		OperatorID: claims.OperatorID,
		ProfileID:  claims.ProfileID,
		Email:      claims.Email,
		Role:       claims.Role,
		JTI:        newAccessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), tokenPayload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout clears the session. Remote failures are logged but never surfaced:
// the client is signing out either way, so local state wins.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return nil
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "access_id", accessID), "session revoke failed during logout")
	}
	return nil
}

func (s *service) Session(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*SessionResponse, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session claims")
	}

	operator, err := s.operators.FindByID(ctx, claims.OperatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup operator")
	}

	profile, err := s.ensureProfile(ctx, operator.ID)
	if err != nil {
		return nil, err
	}

	editMode, err := s.session.EditMode(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check edit mode")
	}

	return &SessionResponse{
		Operator: operators.FromModel(operator),
		Profile:  profiles.FromModel(profile),
		EditMode: editMode,
	}, nil
}

func (s *service) SetEditMode(ctx context.Context, accessID string, enabled bool) (*EditModeResponse, error) {
	if err := s.session.SetEditMode(ctx, accessID, enabled); err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set edit mode")
	}
	return &EditModeResponse{EditMode: enabled}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.Operator, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	operator, err := s.operators.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup operator")
	}

	valid, err := security.VerifyPassword(password, operator.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !operator.IsActive {
		// The password check above keeps this write off the anonymous path.
		s.retireProfile(ctx, operator.ID)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return operator, nil
}

// retireProfile mirrors operator deactivation onto the linked profile so a
// disabled account does not keep an active editor profile behind it. Failures
// are logged; the login is rejected either way.
func (s *service) retireProfile(ctx context.Context, operatorID uuid.UUID) {
	ctx = s.logg.WithOperatorID(ctx, operatorID.String())

	profile, err := s.profiles.FindByOperatorID(ctx, operatorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Warn(ctx, "profile lookup failed during deactivation sync")
		}
		return
	}
	if !profile.IsActive {
		return
	}
	if err := s.profiles.Deactivate(ctx, profile.ID); err != nil {
		s.logg.Warn(ctx, "profile deactivation failed")
		return
	}
	s.logg.Info(ctx, "profile deactivated with operator")
}

// ensureProfile returns the operator's profile, provisioning the default one
// on first login.
func (s *service) ensureProfile(ctx context.Context, operatorID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByOperatorID(ctx, operatorID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	created, err := s.profiles.Create(ctx, profiles.CreateProfileDTO{
		OperatorID: operatorID,
		Role:       profiles.DefaultRole,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "provision profile")
	}
	s.logg.Info(s.logg.WithOperatorID(ctx, operatorID.String()), "default profile provisioned")
	return created, nil
}

func (s *service) recordLogin(ctx context.Context, operator *models.Operator) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.operators.UpdateLastLogin(ctx, operator.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	operator.LastLoginAt = &now
	return now, nil
}
