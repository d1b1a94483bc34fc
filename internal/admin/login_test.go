package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/internal/apitest"
	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		want  map[string]string
	}{
		{"valid", domain.Credentials{Email: "a@b.co", Password: "x"}, nil},
		{"blank email", domain.Credentials{Email: "  ", Password: "x"}, map[string]string{"email": MsgEmailRequired}},
		{"no at", domain.Credentials{Email: "admin", Password: "x"}, map[string]string{"email": MsgEmailInvalid}},
		{"no tld", domain.Credentials{Email: "a@b", Password: "x"}, map[string]string{"email": MsgEmailInvalid}},
		{"two ats", domain.Credentials{Email: "a@b@c.co", Password: "x"}, map[string]string{"email": MsgEmailInvalid}},
		{"no password", domain.Credentials{Email: "a@b.co"}, map[string]string{"password": MsgPasswordRequired}},
		{"both", domain.Credentials{}, map[string]string{"email": MsgEmailRequired, "password": MsgPasswordRequired}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateCredentials(tt.creds)
			if tt.want == nil {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestLoginInvalidInputMakesNoRequest(t *testing.T) {
	env, srv := newAnonEnv(t)
	for _, creds := range []domain.Credentials{
		{},
		{Email: "nope", Password: "x"},
		{Email: apitest.AdminEmail},
	} {
		f := NewLoginFlow(env).SetEmail(creds.Email).SetPassword(creds.Password)
		f, cmd := f.Submit()
		assert.Nil(t, cmd)
		assert.NotEmpty(t, f.FieldErrs)
		assert.Equal(t, LoginIdle, f.State())
	}
	assert.Zero(t, srv.TotalHits())
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	env, _ := newAnonEnv(t)
	f := NewLoginFlow(env).SetEmail(apitest.AdminEmail).SetPassword(apitest.AdminPassword)

	f, cmd := f.Submit()
	require.True(t, f.Submitting())

	f, next := f.Update(run(t, cmd))
	assert.Equal(t, LoginIdle, f.State())
	assert.Empty(t, f.ServerErr)
	assert.Empty(t, f.Password)

	msg, ok := run(t, next).(LoggedIn)
	require.True(t, ok)
	assert.Equal(t, apitest.AdminEmail, msg.User.Email)

	sess := env.Session.Get()
	assert.True(t, sess.IsAuthed())
	assert.Equal(t, domain.RoleSuperAdmin, sess.Role)
}

func TestLoginRoleDefaultsToSuperAdmin(t *testing.T) {
	env, srv := newAnonEnv(t)
	srv.Respond(http.MethodPost, "/api/superadmin/auth/login", http.StatusOK, `{"ok":true,"token":"t","user":{"email":"a@b.co"}}`)

	user, err := Authenticate(context.Background(), env, domain.Credentials{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, user.Role)
	assert.Equal(t, domain.Session{Token: "t", Role: domain.RoleSuperAdmin}, env.Session.Get())
}

func TestLoginKeepsServerRole(t *testing.T) {
	env, srv := newAnonEnv(t)
	srv.SetAdminRole("owner")

	user, err := Authenticate(context.Background(), env, domain.Credentials{Email: apitest.AdminEmail, Password: apitest.AdminPassword})
	require.NoError(t, err)
	assert.Equal(t, "owner", user.Role)
	assert.Equal(t, Deny, NewGate(env.Session).Check(RouteDashboard).Verdict)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server message", http.StatusUnauthorized, `{"error":"bad credentials"}`, "bad credentials"},
		{"status fallback", http.StatusInternalServerError, `<html>down</html>`, "Login failed (status 500)"},
		{"ok false without message", http.StatusOK, `{"ok":false}`, MsgInvalidResponse},
		{"missing user", http.StatusOK, `{"ok":true,"token":"t"}`, MsgInvalidResponse},
		{"missing token", http.StatusOK, `{"ok":true,"user":{}}`, MsgInvalidResponse},
		{"unparsable 200", http.StatusOK, `{"ok":`, MsgInvalidResponse},
		{"ok false with token", http.StatusOK, `{"ok":false,"token":"t","user":{}}`, MsgInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, srv := newAnonEnv(t)
			srv.Respond(http.MethodPost, "/api/superadmin/auth/login", tt.status, tt.body)

			f := NewLoginFlow(env).SetEmail("a@b.co").SetPassword("x")
			f, cmd := f.Submit()
			f, next := f.Update(run(t, cmd))

			assert.Nil(t, next)
			assert.Equal(t, tt.wantErr, f.ServerErr)
			assert.Equal(t, LoginIdle, f.State())
			assert.False(t, env.Session.Get().IsAuthed())
		})
	}
}

func TestLoginTransportFailure(t *testing.T) {
	store := session.NewMemory()
	env := Env{Client: client.New("http://127.0.0.1:1", store), Session: store, Log: zap.NewNop()}

	_, err := Authenticate(context.Background(), env, domain.Credentials{Email: "a@b.co", Password: "x"})
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, MsgLoginFailed, ae.Message)
}

func TestLoginResubmitWhileSubmittingIsNoop(t *testing.T) {
	env, srv := newAnonEnv(t)
	f := NewLoginFlow(env).SetEmail(apitest.AdminEmail).SetPassword(apitest.AdminPassword)

	f, first := f.Submit()
	require.NotNil(t, first)
	f, second := f.Submit()
	assert.Nil(t, second)

	f, _ = f.Update(run(t, first))
	assert.Equal(t, 1, srv.Hits(http.MethodPost, "/api/superadmin/auth/login"))
	assert.Equal(t, LoginIdle, f.State())
}

func TestLoginEditingClearsErrors(t *testing.T) {
	env, _ := newAnonEnv(t)
	f, _ := NewLoginFlow(env).Submit()
	require.Len(t, f.FieldErrs, 2)
	f.ServerErr = "bad credentials"

	f = f.SetEmail("a")
	assert.NotContains(t, f.FieldErrs, "email")
	assert.Contains(t, f.FieldErrs, "password")
	assert.Empty(t, f.ServerErr)

	f = f.SetPassword("p")
	assert.Empty(t, f.FieldErrs)
}

func TestLoginClosedDropsResult(t *testing.T) {
	env, _ := newAnonEnv(t)
	f := NewLoginFlow(env).SetEmail(apitest.AdminEmail).SetPassword(apitest.AdminPassword)
	f, cmd := f.Submit()
	f = f.Close()

	f, next := f.Update(run(t, cmd))
	assert.Nil(t, next)
	assert.True(t, f.Submitting())
	assert.False(t, env.Session.Get().IsAuthed())
}

func TestLogoutClearsSession(t *testing.T) {
	env, _ := newEnv(t)
	require.True(t, env.Session.Get().IsAuthed())
	require.NoError(t, Logout(env))
	assert.False(t, env.Session.Get().IsAuthed())
}
