package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// Login form messages.
const (
	MsgEmailRequired    = "Enter your email."
	MsgEmailInvalid     = "Please enter a valid email."
	MsgPasswordRequired = "Enter your password."
	MsgInvalidResponse  = "Invalid response from server"
	MsgLoginFailed      = "Login failed"
)

var emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidateCredentials runs the client-side checks. It returns nil when the
// credentials may be sent.
func ValidateCredentials(c domain.Credentials) *ValidationError {
	errs := map[string]string{}
	switch {
	case strings.TrimSpace(c.Email) == "":
		errs["email"] = MsgEmailRequired
	case !emailShape.MatchString(c.Email):
		errs["email"] = MsgEmailInvalid
	}
	if c.Password == "" {
		errs["password"] = MsgPasswordRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// Authenticate exchanges credentials for a token and persists the session.
// The role defaults to superadmin when the server omits it. Failures come
// back as *ValidationError or *AuthError; nothing is persisted on failure.
func Authenticate(ctx context.Context, env Env, creds domain.Credentials) (*domain.AdminUser, error) {
	if verr := ValidateCredentials(creds); verr != nil {
		return nil, verr
	}
	res, err := env.Client.Login(ctx, creds)
	if err != nil {
		ae := authError(err)
		env.logger().Warn("login failed", zap.String("email", creds.Email), zap.Error(err))
		return nil, ae
	}

	user := res.User
	if user.Role == "" {
		user.Role = domain.RoleSuperAdmin
	}
	if err := env.Session.Set(res.Token, user.Role); err != nil {
		env.logger().Warn("login: persist session", zap.Error(err))
		return nil, &AuthError{Message: "Could not save session", Err: err}
	}
	env.logger().Info("logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return &user, nil
}

func authError(err error) *AuthError {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Message != "":
			return &AuthError{Message: apiErr.Message, Err: err}
		case apiErr.StatusCode < http.StatusOK || apiErr.StatusCode >= http.StatusMultipleChoices:
			return &AuthError{Message: fmt.Sprintf("Login failed (status %d)", apiErr.StatusCode), Err: err}
		}
		return &AuthError{Message: MsgInvalidResponse, Err: err}
	case errors.Is(err, client.ErrInvalidResponse):
		return &AuthError{Message: MsgInvalidResponse, Err: err}
	}
	return &AuthError{Message: MsgLoginFailed, Err: err}
}

// LoginState is the login flow's state.
type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
)

// LoggedIn is emitted once a login succeeds and the session is stored.
// Navigation is up to the receiver.
type LoggedIn struct {
	User domain.AdminUser
}

type loginResult struct {
	owner string
	user  *domain.AdminUser
	err   error
}

// LoginFlow is the login form state machine: Idle, Submitting, then back to
// Idle with an error or out via LoggedIn.
type LoginFlow struct {
	env Env
	sc  scope

	Email     string
	Password  string
	FieldErrs map[string]string
	ServerErr string
	state     LoginState
}

// NewLoginFlow returns an idle login form.
func NewLoginFlow(env Env) LoginFlow {
	return LoginFlow{env: env, sc: newScope()}
}

func (f LoginFlow) State() LoginState { return f.state }
func (f LoginFlow) Submitting() bool { return f.state == LoginSubmitting }

// SetEmail edits the email and clears its error and the server error.
func (f LoginFlow) SetEmail(v string) LoginFlow {
	f.Email = v
	return f.cleared("email")
}

// SetPassword edits the password and clears its error and the server error.
func (f LoginFlow) SetPassword(v string) LoginFlow {
	f.Password = v
	return f.cleared("password")
}

func (f LoginFlow) cleared(field string) LoginFlow {
	if f.FieldErrs[field] != "" {
		errs := make(map[string]string, len(f.FieldErrs))
		for k, v := range f.FieldErrs {
			if k != field {
				errs[k] = v
			}
		}
		f.FieldErrs = errs
	}
	f.ServerErr = ""
	return f
}

// Submit validates and, when valid, starts the login request. It is a no-op
// while a submission is in flight.
func (f LoginFlow) Submit() (LoginFlow, tea.Cmd) {
	if f.state == LoginSubmitting || f.sc.ctx.Err() != nil {
		return f, nil
	}
	creds := domain.Credentials{Email: f.Email, Password: f.Password}
	if verr := ValidateCredentials(creds); verr != nil {
		f.FieldErrs = verr.Fields
		return f, nil
	}
	f.FieldErrs = nil
	f.ServerErr = ""
	f.state = LoginSubmitting

	env, ctx, owner := f.env, f.sc.ctx, f.sc.id
	return f, func() tea.Msg {
		user, err := Authenticate(ctx, env, creds)
		return loginResult{owner: owner, user: user, err: err}
	}
}

// Update commits the login result.
func (f LoginFlow) Update(msg tea.Msg) (LoginFlow, tea.Cmd) {
	m, ok := msg.(loginResult)
	if !ok || !f.sc.owns(m.owner) {
		return f, nil
	}
	f.state = LoginIdle
	if m.err != nil {
		var ae *AuthError
		if errors.As(m.err, &ae) {
			f.ServerErr = ae.Message
		} else {
			f.ServerErr = MsgLoginFailed
		}
		return f, nil
	}
	f.Password = ""
	user := *m.user
	return f, func() tea.Msg { return LoggedIn{User: user} }
}

// Close abandons an in-flight submission.
func (f LoginFlow) Close() LoginFlow {
	f.sc.close()
	return f
}
