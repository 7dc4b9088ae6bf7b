package service

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// AdminInitials identifies the seeded Branch Manager account.
const AdminInitials = "BM"

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// UserInput represents data required to create a user. Created users are never
// admins; the single Branch Manager is seeded at startup.
type UserInput struct {
	Initials      string
	PIN           string
	Roles         []string
	MaxDailyHours *float64
	HourlyRate    *float64
}

// UserPatch carries partial updates; nil fields are left untouched.
type UserPatch struct {
	Initials      *string
	PIN           *string
	Roles         []string
	IsAdmin       *bool
	MaxDailyHours *float64
	HourlyRate    *float64
}

// UserService owns user management and its two invariants: no two users share a
// PIN, and the Branch Manager can never be deleted or demoted.
type UserService struct {
	users    *repository.UserRepository
	notifier Notifier
}

func NewUserService(users *repository.UserRepository, notifier Notifier) *UserService {
	return &UserService{users: users, notifier: notifier}
}

// EnsureAdmin seeds the Branch Manager if no admin exists yet. Idempotent.
func (s *UserService) EnsureAdmin(ctx context.Context, seedPIN string) (*model.User, error) {
	admin, err := s.users.FindAdmin(ctx)
	if err == nil {
		return admin, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	hash, err := hashPIN(seedPIN)
	if err != nil {
		return nil, err
	}
	admin = &model.User{
		Initials: AdminInitials,
		PINHash:  hash,
		IsAdmin:  true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*model.User, error) {
	if input.Initials == "" {
		return nil, shared.Invalid("initials", "is required")
	}
	if !pinPattern.MatchString(input.PIN) {
		return nil, shared.Invalid("pin", "must be exactly 4 digits")
	}
	if err := validateRoles(input.Roles); err != nil {
		return nil, err
	}
	if err := s.checkPINFree(ctx, input.PIN, 0); err != nil {
		return nil, err
	}

	hash, err := hashPIN(input.PIN)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Initials:      input.Initials,
		PINHash:       hash,
		Roles:         model.JoinRoles(input.Roles),
		MaxDailyHours: input.MaxDailyHours,
		HourlyRate:    input.HourlyRate,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceUsers)
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin && patch.IsAdmin != nil && !*patch.IsAdmin {
		return nil, shared.ErrAdminImmutable
	}

	if patch.Initials != nil {
		if *patch.Initials == "" {
			return nil, shared.Invalid("initials", "is required")
		}
		user.Initials = *patch.Initials
	}
	if patch.PIN != nil {
		if !pinPattern.MatchString(*patch.PIN) {
			return nil, shared.Invalid("pin", "must be exactly 4 digits")
		}
		if err := s.checkPINFree(ctx, *patch.PIN, user.ID); err != nil {
			return nil, err
		}
		hash, err := hashPIN(*patch.PIN)
		if err != nil {
			return nil, err
		}
		user.PINHash = hash
	}
	if patch.Roles != nil {
		if err := validateRoles(patch.Roles); err != nil {
			return nil, err
		}
		user.Roles = model.JoinRoles(patch.Roles)
	}
	if patch.MaxDailyHours != nil {
		user.MaxDailyHours = patch.MaxDailyHours
	}
	if patch.HourlyRate != nil {
		user.HourlyRate = patch.HourlyRate
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceUsers)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return shared.ErrAdminImmutable
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceUsers)
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// FindByPIN resolves a user from a plain PIN, or ErrInvalidPIN.
// PINs are stored hashed, so the small user set is scanned and compared.
func (s *UserService) FindByPIN(ctx context.Context, pin string) (*model.User, error) {
	if !pinPattern.MatchString(pin) {
		return nil, shared.ErrInvalidPIN
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PINHash), []byte(pin)) == nil {
			return &users[i], nil
		}
	}
	return nil, shared.ErrInvalidPIN
}

// checkPINFree rejects a PIN already held by a different user.
func (s *UserService) checkPINFree(ctx context.Context, pin string, selfID uint) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == selfID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PINHash), []byte(pin)) == nil {
			return shared.ErrPINTaken
		}
	}
	return nil
}

func hashPIN(pin string) (string, error) {
	if !pinPattern.MatchString(pin) {
		return "", shared.Invalid("pin", "must be exactly 4 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
