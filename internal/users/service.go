package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id int) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	AdoptOrphans(ctx context.Context, userID int) (workouts, sessions int64, err error)
}

const (
	MinUsernameLength = 3
	MinPasswordLength = 6

	AdminUsername = "admin"
	AdminEmail    = "admin@workouttracker.com"
)

type Service struct {
	repo usersRepo
	now  func() time.Time
}

func NewService(repo usersRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRegistration, MinPasswordLength)
	}
	return nil
}

func validateRegistration(username, email, password string) error {
	if len(username) < MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidRegistration, MinUsernameLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrInvalidRegistration)
	}
	return ValidatePassword(password)
}

func (s *Service) Register(ctx context.Context, username, email, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().Format(CreatedAtLayout),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Infof("new user registered: %d [%s]", user.ID, user.Username)
	return user, nil
}

// Authenticate checks the credentials. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes the user with id on behalf of requesterID, who may not delete themselves.
func (s *Service) Delete(ctx context.Context, requesterID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if requesterID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	log.Infof("user %d deleted by %d", id, requesterID)
	return nil
}

// EnsureAdmin creates the admin account, or updates its password when it exists and
// updatePassword is set. Orphaned workouts and sessions are assigned to a newly created admin.
func (s *Service) EnsureAdmin(ctx context.Context, password string, updatePassword bool) (_ *User, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.ensureadmin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := ValidatePassword(password); err != nil {
		return nil, false, err
	}

	admin, err := s.repo.GetByUsername(ctx, AdminUsername)
	switch {
	case errors.Is(err, ErrUserNotFound):
		hash, err := pkg.HashPassword(password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		admin, err = s.repo.Create(ctx, User{
			Username:     AdminUsername,
			Email:        AdminEmail,
			PasswordHash: hash,
			IsAdmin:      true,
			CreatedAt:    s.now().Format(CreatedAtLayout),
		})
		if err != nil {
			return nil, false, fmt.Errorf("create admin: %w", err)
		}
		created = true

		workouts, sessions, err := s.repo.AdoptOrphans(ctx, admin.ID)
		if err != nil {
			return nil, false, fmt.Errorf("adopt orphaned rows: %w", err)
		}
		if workouts > 0 || sessions > 0 {
			log.Infof("assigned %d workouts and %d sessions without owner to admin", workouts, sessions)
		}
	case err != nil:
		return nil, false, fmt.Errorf("get admin: %w", err)
	case updatePassword:
		hash, err := pkg.HashPassword(password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		if err := s.repo.UpdatePassword(ctx, admin.ID, hash); err != nil {
			return nil, false, fmt.Errorf("update admin password: %w", err)
		}
		admin.PasswordHash = hash
		log.Infoln("admin password updated")
	default:
		log.Infoln("admin user already exists, password left unchanged")
	}

	return admin, created, nil
}
