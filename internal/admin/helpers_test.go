package admin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/internal/apitest"
	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// newEnv returns an Env logged in against a fresh fake API.
func newEnv(t *testing.T) (Env, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewMemory()
	require.NoError(t, store.Set(srv.IssueToken(), domain.RoleSuperAdmin))
	return Env{Client: client.New(srv.URL, store), Session: store, Log: zap.NewNop()}, srv
}

// newAnonEnv returns an Env with no stored session.
func newAnonEnv(t *testing.T) (Env, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewMemory()
	return Env{Client: client.New(srv.URL, store), Session: store, Log: zap.NewNop()}, srv
}

// run executes a command synchronously, the way the Bubble Tea runtime would.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	return cmd()
}

func seedSalons(srv *apitest.Server) {
	srv.AddSalon(domain.Salon{ID: "1", Name: "Glow", IsActive: true, PlanType: domain.PlanBasic}, &domain.Owner{Email: "owner@glow.sa", Role: "owner", IsActive: true})
	srv.AddSalon(domain.Salon{ID: "2", Name: "Luxe", PlanType: domain.PlanPremium, BrandColor: "#112233"}, nil)
}
