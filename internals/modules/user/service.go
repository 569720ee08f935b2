package user

import (
	"context"

	"pingdeck/internals/security"
	"pingdeck/pkg/apperror"

	"github.com/google/uuid"
)

type Store interface {
	CreateUser(ctx context.Context, cmd CreateUserCmd, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (User, error)
}

type Service struct {
	store    Store
	tokenSvc *security.TokenService
}

func NewService(store Store, tokenSvc *security.TokenService) *Service {
	return &Service{
		store:    store,
		tokenSvc: tokenSvc,
	}
}

func (s *Service) Register(ctx context.Context, cmd CreateUserCmd) (uuid.UUID, error) {
	passwordHash, err := security.HashPassword(cmd.Password)
	if err != nil {
		return uuid.Nil, apperror.New(apperror.Internal, "service.user.register", err)
	}

	// the unique email constraint surfaces duplicates as AlreadyExists
	return s.store.CreateUser(ctx, cmd, passwordHash)
}

func (s *Service) LogIn(ctx context.Context, cmd LogInUserCmd) (LogInResult, error) {
	const op string = "service.user.login"

	invalidCreds := &apperror.Error{
		Kind:    apperror.Unauthorised,
		Op:      op,
		Message: "invalid email or password",
	}

	u, err := s.store.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return LogInResult{}, invalidCreds
		}
		return LogInResult{}, err
	}

	ok, err := security.ComparePassword(cmd.Password, u.PasswordHash)
	if err != nil || !ok {
		return LogInResult{}, invalidCreds
	}

	token, err := s.tokenSvc.GenerateAccessToken(security.RequestClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
	})
	if err != nil {
		return LogInResult{}, apperror.New(apperror.Internal, op, err)
	}

	return LogInResult{
		UserID:      u.ID,
		AccessToken: token,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.store.GetByID(ctx, userID)
}
