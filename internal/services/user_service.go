package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/auth"
	"github.com/tasklists/tasks-api/internal/identity"
	"github.com/tasklists/tasks-api/internal/models"
	"github.com/tasklists/tasks-api/internal/repository"
	"github.com/tasklists/tasks-api/internal/token"
)

var (
	// ErrInvalidCredentials covers every sign-in failure; the reason is
	// intentionally obscured.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSignUpRejected covers every sign-up failure, same policy.
	ErrSignUpRejected = errors.New("sign up rejected")
	// ErrInvalidRefresh covers every refresh-exchange failure.
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

// Session is an issued access/refresh token pair.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserService issues sessions, rotates refresh tokens and enforces the user
// deletion policy. Credential storage lives behind the identity provider.
type UserService struct {
	db       *gorm.DB
	identity identity.Provider
	tokens   *token.Manager
	listRepo repository.TaskListRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB, provider identity.Provider, tokens *token.Manager,
	listRepo repository.TaskListRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		db:       db,
		identity: provider,
		tokens:   tokens,
		listRepo: listRepo,
		taskRepo: taskRepo,
	}
}

// SignUpInput holds the registration fields.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// SignInInput holds the credentials for authentication.
type SignInInput struct {
	Username string
	Password string
}

// RefreshInput pairs the possibly expired access token with the refresh token.
type RefreshInput struct {
	Token        string
	RefreshToken string
}

// DeleteUserInput names the account to remove. WithData additionally purges
// the user's lists and tasks, bypassing soft delete.
type DeleteUserInput struct {
	Username string
	WithData bool
}

// SignUp creates the identity and issues a first session.
func (s *UserService) SignUp(input SignUpInput) (*Session, error) {
	user, err := s.identity.CreateUser(input.Username, input.Email, input.Password,
		models.RoleList{models.RoleUser})
	if err != nil {
		return nil, ErrSignUpRejected
	}
	return s.issueSession(user)
}

// SignIn verifies credentials and issues a session. Any failure collapses to
// ErrInvalidCredentials.
func (s *UserService) SignIn(input SignInInput) (*Session, error) {
	user, ok := s.identity.VerifyCredentials(input.Username, input.Password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(user)
}

// Refresh exchanges a refresh token for a new session, rotating both tokens.
// Replaying an already-consumed refresh token fails because rotation
// overwrote the stored value.
func (s *UserService) Refresh(input RefreshInput) (*Session, error) {
	username, err := s.tokens.UsernameFromExpiredToken(input.Token)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.identity.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	if user.RefreshToken == "" ||
		user.RefreshToken != input.RefreshToken ||
		!user.RefreshTokenExpiresAt.After(time.Now().UTC()) {
		return nil, ErrInvalidRefresh
	}

	return s.issueSession(user)
}

// Delete removes a user account.
//
// Only the user themselves or a SuperAdmin may delete an account, and a
// SuperAdmin account can never be deleted. The ordinary path requires the
// user to own zero lists counted including soft-deleted ones; the with-data
// path (SuperAdmin only) hard-deletes the lists and tasks first, all inside
// one transaction.
func (s *UserService) Delete(current auth.User, input DeleteUserInput) error {
	target, err := s.identity.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists, "The user to remove does not exist")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	// Only superadmin can delete other users.
	if target.ID != current.ID && !current.IsSuperAdmin() {
		return apperrors.ErrForbidden
	}

	// A superadmin can not be deleted at all.
	if s.identity.IsInRole(target, models.RoleSuperAdmin) {
		return apperrors.ErrForbidden
	}

	if input.WithData {
		if !current.IsSuperAdmin() {
			return apperrors.ErrForbidden
		}
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.taskRepo.HardDeleteByOwner(tx, target.ID); err != nil {
				return err
			}
			if err := s.listRepo.HardDeleteByOwner(tx, target.ID); err != nil {
				return err
			}
			return s.identity.DeleteUser(tx, target)
		})
	}

	// A soft-deleted list is still owned data, so the count includes deleted rows.
	owned, err := s.listRepo.Count(target.ID, true)
	if err != nil {
		return fmt.Errorf("failed to count user lists: %w", err)
	}
	if owned > 0 {
		return apperrors.NewNotValidOperation(apperrors.CodeUserWithLists, "The user to remove owns a task list")
	}

	return s.identity.DeleteUser(s.db, target)
}

// issueSession signs a new access token and rotates the stored refresh token
// before returning; the previous refresh token is invalid from here on.
func (s *UserService) issueSession(user *models.User) (*Session, error) {
	now := time.Now().UTC()

	accessToken, err := s.tokens.IssueAccessToken(user, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	user.RefreshToken = refreshToken
	user.RefreshTokenExpiresAt = now.Add(s.tokens.RefreshTokenTTL())
	if err := s.identity.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &Session{Token: accessToken, RefreshToken: refreshToken}, nil
}
