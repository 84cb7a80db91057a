package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase/interfaces"
	mock_interfaces "trades_marketplace/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type authDeps struct {
	users    *mock_interfaces.MockIUserRepository
	sessions *mock_interfaces.MockISessionRepository
	codes    *mock_interfaces.MockILoginCodeRepository
	notifier *recordingNotifier
}

func newAuthUseCase(t *testing.T, cfg AuthConfig) (*AuthUseCase, authDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := authDeps{
		users:    mock_interfaces.NewMockIUserRepository(ctrl),
		sessions: mock_interfaces.NewMockISessionRepository(ctrl),
		codes:    mock_interfaces.NewMockILoginCodeRepository(ctrl),
		notifier: &recordingNotifier{},
	}
	uc := NewAuthUseCase(d.users, d.sessions, d.codes, d.notifier, nil, nil, cfg)
	uc.now = func() time.Time { return fixedNow }
	return uc, d
}

func hashedUser(t *testing.T, password string) entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return entities.User{ID: "user-1", Email: "e@x.com", Name: "Eve", PasswordHash: string(hash), Role: entities.RoleCustomer}
}

func TestAuthUseCase_Register(t *testing.T) {
	valid := RegisterInput{Email: " E@X.com ", Password: "correct horse", Name: "Eve"}

	t.Run("validation", func(t *testing.T) {
		uc, _ := newAuthUseCase(t, AuthConfig{})
		for name, in := range map[string]RegisterInput{
			"short password": {Email: "e@x.com", Password: "short", Name: "Eve"},
			"bad email":      {Email: "nope", Password: "correct horse", Name: "Eve"},
			"admin role":     {Email: "e@x.com", Password: "correct horse", Name: "Eve", Role: entities.RoleAdmin},
			"missing name":   {Email: "e@x.com", Password: "correct horse"},
		} {
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidRegistration, name)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(entities.User{ID: "user-0"}, nil)
		_, err := uc.Register(context.Background(), valid)
		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	})

	t.Run("email taken concurrently", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(entities.User{}, nil)
		d.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.User{}, interfaces.ErrAlreadyExists)
		_, err := uc.Register(context.Background(), valid)
		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	})

	t.Run("success defaults to customer", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(entities.User{}, nil)
		d.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
				return u, nil
			},
		)
		u, err := uc.Register(context.Background(), valid)
		require.NoError(t, err)
		assert.Equal(t, "e@x.com", u.Email)
		assert.Equal(t, entities.RoleCustomer, u.Role)
		assert.NotEmpty(t, u.ID)
	})
}

func TestAuthUseCase_LoginAndAuthenticate(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(hashedUser(t, "correct horse"), nil)
		_, err := uc.Login(context.Background(), "e@x.com", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(entities.User{}, nil)
		_, err := uc.Login(context.Background(), "e@x.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("issues a hashed session and resolves it", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{SessionTTL: time.Hour})
		user := hashedUser(t, "correct horse")
		var stored entities.Session

		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)
		d.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Session) error {
				stored = s
				return nil
			},
		)

		res, err := uc.Login(context.Background(), "E@x.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.NotEqual(t, res.Token, stored.Token)
		assert.Equal(t, hashSecret(res.Token), stored.Token)
		assert.Equal(t, fixedNow.Add(time.Hour), res.ExpiresAt)

		d.sessions.EXPECT().Get(gomock.Any(), stored.Token).Return(stored, nil)
		d.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)

		caller, err := uc.Authenticate(context.Background(), res.Token)
		require.NoError(t, err)
		assert.Equal(t, &entities.Caller{UserID: "user-1", Email: "e@x.com", Role: entities.RoleCustomer}, caller)
	})

	t.Run("expired session", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.sessions.EXPECT().Get(gomock.Any(), hashSecret("tok")).
			Return(entities.Session{UserID: "user-1", ExpiresAt: fixedNow.Add(-time.Second)}, nil)
		_, err := uc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("empty token", func(t *testing.T) {
		uc, _ := newAuthUseCase(t, AuthConfig{})
		_, err := uc.Authenticate(context.Background(), " ")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("logout deletes by hash", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.sessions.EXPECT().Delete(gomock.Any(), hashSecret("tok")).Return(nil)
		require.NoError(t, uc.Logout(context.Background(), "tok"))
	})
}

func TestAuthUseCase_LoginCode(t *testing.T) {
	user := entities.User{ID: "user-1", Email: "e@x.com", Role: entities.RoleCustomer}

	t.Run("issue and verify once", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		var stored entities.LoginCode

		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil).Times(2)
		d.codes.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.LoginCode) error {
				stored = c
				return nil
			},
		)
		require.NoError(t, uc.RequestLoginCode(context.Background(), "E@X.COM"))

		code := d.notifier.codes["e@x.com"]
		require.Len(t, code, loginCodeDigits)
		assert.Equal(t, fixedNow.Add(10*time.Minute), stored.ExpiresAt)
		assert.Equal(t, hashSecret("e@x.com:"+code), stored.CodeHash)

		d.codes.EXPECT().Get(gomock.Any(), "e@x.com").Return(stored, nil)
		d.codes.EXPECT().Consume(gomock.Any(), "e@x.com", stored.CodeHash).Return(nil)
		d.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.VerifyLoginCode(context.Background(), "e@x.com", code)
		require.NoError(t, err)
		assert.Equal(t, "user-1", res.User.ID)

		d.codes.EXPECT().Get(gomock.Any(), "e@x.com").Return(stored, nil)
		d.codes.EXPECT().Consume(gomock.Any(), "e@x.com", stored.CodeHash).Return(interfaces.ErrConditionFailed)
		_, err = uc.VerifyLoginCode(context.Background(), "e@x.com", code)
		assert.ErrorIs(t, err, ErrInvalidLoginCode)
	})

	t.Run("wrong code counts an attempt", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		stored := entities.LoginCode{Email: "e@x.com", CodeHash: hashSecret("e@x.com:123456"), ExpiresAt: fixedNow.Add(time.Minute)}
		d.codes.EXPECT().Get(gomock.Any(), "e@x.com").Return(stored, nil)
		d.codes.EXPECT().IncrementAttempts(gomock.Any(), "e@x.com").Return(1, nil)

		_, err := uc.VerifyLoginCode(context.Background(), "e@x.com", "654321")
		assert.ErrorIs(t, err, ErrInvalidLoginCode)
	})

	t.Run("too many attempts or expired", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		locked := entities.LoginCode{Email: "e@x.com", CodeHash: hashSecret("e@x.com:123456"), Attempts: maxLoginCodeAttempts, ExpiresAt: fixedNow.Add(time.Minute)}
		expired := entities.LoginCode{Email: "e@x.com", CodeHash: hashSecret("e@x.com:123456"), ExpiresAt: fixedNow}
		gomock.InOrder(
			d.codes.EXPECT().Get(gomock.Any(), "e@x.com").Return(locked, nil),
			d.codes.EXPECT().Get(gomock.Any(), "e@x.com").Return(expired, nil),
		)

		_, err := uc.VerifyLoginCode(context.Background(), "e@x.com", "123456")
		assert.ErrorIs(t, err, ErrInvalidLoginCode)
		_, err = uc.VerifyLoginCode(context.Background(), "e@x.com", "123456")
		assert.ErrorIs(t, err, ErrInvalidLoginCode)
	})

	t.Run("unknown email is silent", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByEmail(gomock.Any(), "ghost@x.com").Return(entities.User{}, nil)
		require.NoError(t, uc.RequestLoginCode(context.Background(), "ghost@x.com"))
		assert.Empty(t, d.notifier.codes)
	})

	t.Run("rate limited per email", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{LoginCodeBurst: 2, LoginCodeInterval: time.Hour})
		d.users.EXPECT().GetByEmail(gomock.Any(), "ghost@x.com").Return(entities.User{}, nil).Times(2)
		d.users.EXPECT().GetByEmail(gomock.Any(), "other@x.com").Return(entities.User{}, nil)

		require.NoError(t, uc.RequestLoginCode(context.Background(), "ghost@x.com"))
		require.NoError(t, uc.RequestLoginCode(context.Background(), "ghost@x.com"))
		assert.ErrorIs(t, uc.RequestLoginCode(context.Background(), "ghost@x.com"), ErrLoginCodeRateLimited)
		require.NoError(t, uc.RequestLoginCode(context.Background(), "other@x.com"))
	})

	t.Run("invalid email", func(t *testing.T) {
		uc, _ := newAuthUseCase(t, AuthConfig{})
		assert.ErrorIs(t, uc.RequestLoginCode(context.Background(), "nope"), ErrInvalidEmail)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.notifier.err = errors.New("nats down")
		d.users.EXPECT().GetByEmail(gomock.Any(), "e@x.com").Return(user, nil)
		d.codes.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
		require.NoError(t, uc.RequestLoginCode(context.Background(), "e@x.com"))
	})
}

func TestAuthUseCase_SwitchRole(t *testing.T) {
	customer := entities.User{ID: "cust-1", Email: "c@example.com", Role: entities.RoleCustomer}

	t.Run("customer becomes professional with audit record", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		d.users.EXPECT().ChangeRole(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.RoleChange) (entities.User, error) {
				assert.NotEmpty(t, c.ID)
				assert.Equal(t, entities.RoleCustomer, c.FromRole)
				assert.Equal(t, entities.RoleProfessional, c.ToRole)
				assert.Equal(t, "cust-1", c.ChangedBy)
				u := customer
				u.Role = c.ToRole
				return u, nil
			},
		)

		u, err := uc.SwitchRole(context.Background(), customerC, entities.RoleProfessional)
		require.NoError(t, err)
		assert.Equal(t, entities.RoleProfessional, u.Role)
	})

	t.Run("no self-service admin", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		_, err := uc.SwitchRole(context.Background(), customerC, entities.RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidRoleChange)
	})

	t.Run("professionals cannot switch back", func(t *testing.T) {
		uc, _ := newAuthUseCase(t, AuthConfig{})
		_, err := uc.SwitchRole(context.Background(), proP1, entities.RoleCustomer)
		assert.ErrorIs(t, err, access.ErrForbidden)
	})

	t.Run("concurrent change", func(t *testing.T) {
		uc, d := newAuthUseCase(t, AuthConfig{})
		d.users.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		d.users.EXPECT().ChangeRole(gomock.Any(), gomock.Any()).Return(entities.User{}, interfaces.ErrStaleUser)
		_, err := uc.SwitchRole(context.Background(), customerC, entities.RoleProfessional)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})
}

func TestAuthUseCase_Me(t *testing.T) {
	uc, d := newAuthUseCase(t, AuthConfig{})
	_, err := uc.Me(context.Background(), nil)
	assert.ErrorIs(t, err, access.ErrUnauthenticated)

	d.users.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.User{}, nil)
	_, err = uc.Me(context.Background(), customerC)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
