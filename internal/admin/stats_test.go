package admin

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

func TestStatsFetch(t *testing.T) {
	env, srv := newEnv(t)
	want := domain.Stats{TotalSalons: 12, ActiveSalons: 10, PremiumSalons: 3, ActiveBookings: 41, MonthlyRevenueSAR: 12345.5, OpenComplaints: 2}
	srv.SetStats(want)

	s := NewStats(env)
	assert.True(t, s.Loading())
	s, cmd := s.Fetch()
	s, committed := s.Update(run(t, cmd))

	assert.True(t, committed)
	assert.False(t, s.Loading())
	assert.Equal(t, want, s.Data())
}

func TestStatsMissingFieldsAreZero(t *testing.T) {
	env, srv := newEnv(t)
	srv.Respond(http.MethodGet, "/api/superadmin/stats", http.StatusOK, `{"ok":true,"stats":{"totalSalons":4}}`)

	s, cmd := NewStats(env).Fetch()
	s, _ = s.Update(run(t, cmd))
	assert.Equal(t, domain.Stats{TotalSalons: 4}, s.Data())
}

func TestStatsErrorKeepsSnapshot(t *testing.T) {
	env, srv := newEnv(t)
	srv.SetStats(domain.Stats{TotalSalons: 7})

	s, cmd := NewStats(env).Fetch()
	s, _ = s.Update(run(t, cmd))

	srv.Respond(http.MethodGet, "/api/superadmin/stats", http.StatusOK, `{"ok":false}`)
	s, cmd = s.Fetch()
	s, _ = s.Update(run(t, cmd))

	assert.Equal(t, "Failed to load dashboard stats", s.Err())
	assert.Equal(t, 7, s.Data().TotalSalons)
}

func TestStatsUnparsableSuccessIsLoadError(t *testing.T) {
	env, srv := newEnv(t)
	srv.Respond(http.MethodGet, "/api/superadmin/stats", http.StatusOK, `{"ok":true,"stats":`)

	s, cmd := NewStats(env).Fetch()
	s, _ = s.Update(run(t, cmd))
	assert.Equal(t, "Failed to load dashboard stats", s.Err())
	assert.Equal(t, domain.Stats{}, s.Data())
}

func TestResourceIgnoresForeignMessages(t *testing.T) {
	env, _ := newEnv(t)
	s := NewStats(env)
	s, committed := s.Update(Loaded[domain.Stats]{owner: "someone-else", seq: 0})
	assert.False(t, committed)
	s, committed = s.Update("not a result")
	assert.False(t, committed)
	assert.True(t, s.Loading())
}
