package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	maxLoginCodeAttempts = 5
	loginCodeDigits      = 6
	sessionTokenBytes    = 32
	limiterSweepSize     = 10000
)

// AuthConfig holds the session and login-code policy.
type AuthConfig struct {
	SessionTTL        time.Duration
	LoginCodeTTL      time.Duration
	LoginCodeInterval time.Duration
	LoginCodeBurst    int
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 7 * 24 * time.Hour
	}
	if c.LoginCodeTTL <= 0 {
		c.LoginCodeTTL = 10 * time.Minute
	}
	if c.LoginCodeInterval <= 0 {
		c.LoginCodeInterval = time.Minute
	}
	if c.LoginCodeBurst <= 0 {
		c.LoginCodeBurst = 3
	}
	return c
}

type RegisterInput struct {
	Email    string        `validate:"required,email,max=254"`
	Password string        `validate:"required,min=8,max=72"`
	Name     string        `validate:"required,max=120"`
	Role     entities.Role `validate:"omitempty,oneof=customer professional"`
}

// LoginResult carries the raw session token. Only its hash is persisted.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entities.User
}

// IAuthUseCase identifies callers. It does not link draft job requests;
// clients call LinkDraftJobs after registering or logging in.
type IAuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (entities.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*entities.Caller, error)
	Me(ctx context.Context, caller *entities.Caller) (entities.User, error)
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (LoginResult, error)
	SwitchRole(ctx context.Context, caller *entities.Caller, target entities.Role) (entities.User, error)
}

type AuthUseCase struct {
	users    interfaces.IUserRepository
	sessions interfaces.ISessionRepository
	codes    interfaces.ILoginCodeRepository
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	cfg      AuthConfig
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*emailLimiter
}

type emailLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	users interfaces.IUserRepository,
	sessions interfaces.ISessionRepository,
	codes interfaces.ILoginCodeRepository,
	notifier interfaces.INotifier,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
	cfg AuthConfig,
) *AuthUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &AuthUseCase{
		users:    users,
		sessions: sessions,
		codes:    codes,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("auth"),
		cfg:      cfg.withDefaults(),
		now:      func() time.Time { return time.Now().UTC() },
		limiters: make(map[string]*emailLimiter),
	}
}

func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (entities.User, error) {
	in.Email = entities.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return entities.User{}, validationError(ErrInvalidRegistration, err)
	}
	if in.Role == "" {
		in.Role = entities.RoleCustomer
	}

	existing, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := u.now()
	user, err := u.users.Create(ctx, entities.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return entities.User{}, ErrEmailAlreadyRegistered
	}
	if err != nil {
		return entities.User{}, err
	}
	u.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := u.users.GetByEmail(ctx, entities.NormalizeEmail(email))
	if err != nil {
		return LoginResult{}, err
	}
	if user.ID == "" || user.PasswordHash == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	return u.issueSession(ctx, user)
}

func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidSession
	}
	return u.sessions.Delete(ctx, hashSecret(token))
}

func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*entities.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}
	session, err := u.sessions.Get(ctx, hashSecret(token))
	if err != nil {
		return nil, err
	}
	if session.UserID == "" || !u.now().Before(session.ExpiresAt) {
		return nil, ErrInvalidSession
	}
	user, err := u.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrInvalidSession
	}
	return &entities.Caller{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (u *AuthUseCase) Me(ctx context.Context, caller *entities.Caller) (entities.User, error) {
	if err := access.RequireAuthenticated(caller); err != nil {
		return entities.User{}, err
	}
	user, err := u.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

// RequestLoginCode sends a one-time code to a registered email. Unknown
// emails get the same answer so accounts cannot be enumerated.
func (u *AuthUseCase) RequestLoginCode(ctx context.Context, email string) error {
	email = entities.NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if !u.allowLoginCode(email) {
		return ErrLoginCodeRateLimited
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ID == "" {
		u.logger.Debug("login code requested for unknown email")
		return nil
	}

	code, err := randomDigits(loginCodeDigits)
	if err != nil {
		return err
	}
	now := u.now()
	expiresAt := now.Add(u.cfg.LoginCodeTTL)
	if err := u.codes.Put(ctx, entities.LoginCode{
		Email:     email,
		CodeHash:  hashSecret(email + ":" + code),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return err
	}

	if u.notifier != nil {
		if err := u.notifier.SendLoginCode(ctx, email, code, expiresAt); err != nil {
			u.metrics.IncNotificationFailure("auth.login_code")
			u.logger.Warn("login code delivery failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (u *AuthUseCase) VerifyLoginCode(ctx context.Context, email, code string) (LoginResult, error) {
	email = entities.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return LoginResult{}, ErrInvalidLoginCode
	}

	stored, err := u.codes.Get(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if stored.Email == "" || !u.now().Before(stored.ExpiresAt) || stored.Attempts >= maxLoginCodeAttempts {
		return LoginResult{}, ErrInvalidLoginCode
	}

	hash := hashSecret(email + ":" + code)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(stored.CodeHash)) != 1 {
		if _, err := u.codes.IncrementAttempts(ctx, email); err != nil {
			u.logger.Warn("record login code attempt failed", zap.Error(err))
		}
		return LoginResult{}, ErrInvalidLoginCode
	}
	if err := u.codes.Consume(ctx, email, hash); err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return LoginResult{}, ErrInvalidLoginCode
		}
		return LoginResult{}, err
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user.ID == "" {
		return LoginResult{}, ErrInvalidLoginCode
	}
	return u.issueSession(ctx, user)
}

// SwitchRole is the self-service upgrade from customer to professional.
// Every change is recorded in the role change audit log.
func (u *AuthUseCase) SwitchRole(ctx context.Context, caller *entities.Caller, target entities.Role) (entities.User, error) {
	if err := access.Authorize(caller, access.OpSwitchRole); err != nil {
		return entities.User{}, err
	}
	user, err := u.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	if user.Role != entities.RoleCustomer || target != entities.RoleProfessional {
		return entities.User{}, fmt.Errorf("%w: %s to %s", ErrInvalidRoleChange, user.Role, target)
	}

	updated, err := u.users.ChangeRole(ctx, entities.RoleChange{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		FromRole:  user.Role,
		ToRole:    target,
		ChangedBy: caller.UserID,
		CreatedAt: u.now(),
	})
	if errors.Is(err, interfaces.ErrStaleUser) {
		return entities.User{}, fmt.Errorf("%w: user %s", ErrConcurrentModification, user.ID)
	}
	if err != nil {
		return entities.User{}, err
	}
	u.logger.Info("role switched",
		zap.String("user_id", updated.ID),
		zap.String("from", string(user.Role)),
		zap.String("to", string(updated.Role)),
	)
	return updated, nil
}

func (u *AuthUseCase) issueSession(ctx context.Context, user entities.User) (LoginResult, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return LoginResult{}, fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	now := u.now()
	session := entities.Session{
		Token:     hashSecret(token),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.SessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (u *AuthUseCase) allowLoginCode(email string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	if len(u.limiters) >= limiterSweepSize {
		idle := u.cfg.LoginCodeInterval * time.Duration(u.cfg.LoginCodeBurst)
		for k, l := range u.limiters {
			if now.Sub(l.lastSeen) > idle {
				delete(u.limiters, k)
			}
		}
	}
	l, ok := u.limiters[email]
	if !ok {
		l = &emailLimiter{limiter: rate.NewLimiter(rate.Every(u.cfg.LoginCodeInterval), u.cfg.LoginCodeBurst)}
		u.limiters[email] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

func hashSecret(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func randomDigits(n int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
