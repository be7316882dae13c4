package meeting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyProvisionerCreateRoom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rooms", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"interview-abc-1","url":"https://example.daily.co/interview-abc-1"}`))
	}))
	defer srv.Close()

	p := NewDailyProvisioner("test-key", 2*time.Second)
	p.baseURL = srv.URL

	room, err := p.CreateRoom(context.Background(), "abc", time.Now().Add(time.Hour), 45)
	require.NoError(t, err)
	assert.Equal(t, "https://example.daily.co/interview-abc-1", room.JoinURL)
	assert.Equal(t, "interview-abc-1", room.MeetingID)
	assert.Equal(t, "daily", room.Provider)
}

func TestDailyProvisionerNoAPIKey(t *testing.T) {
	p := NewDailyProvisioner("", time.Second)
	_, err := p.CreateRoom(context.Background(), "abc", time.Now(), 30)
	assert.Error(t, err)
}

func TestDailyProvisionerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid-token"}`))
	}))
	defer srv.Close()

	p := NewDailyProvisioner("bad-key", time.Second)
	p.baseURL = srv.URL

	_, err := p.CreateRoom(context.Background(), "abc", time.Now(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-token")
}

func TestJitsiProvisionerCreateRoom(t *testing.T) {
	p := NewJitsiProvisioner()
	room, err := p.CreateRoom(context.Background(), "xyz", time.Now(), 30)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(room.JoinURL, "https://meet.jit.si/placement-xyz-"))
	assert.Equal(t, "jitsi", room.Provider)
	assert.NotEmpty(t, room.MeetingID)
}

func TestFailoverProvisionerFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	primary := NewDailyProvisioner("key", time.Second)
	primary.baseURL = srv.URL

	p := NewFailoverProvisioner(primary, NewJitsiProvisioner(), nil)
	room, err := p.CreateRoom(context.Background(), "iv-1", time.Now().Add(time.Hour), 30)
	require.NoError(t, err)
	assert.Equal(t, "jitsi", room.Provider)
	assert.NotEmpty(t, room.JoinURL)
}

func TestFailoverProvisionerPrefersPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"interview-iv-2-5","url":"https://example.daily.co/interview-iv-2-5"}`))
	}))
	defer srv.Close()

	primary := NewDailyProvisioner("key", time.Second)
	primary.baseURL = srv.URL

	p := NewFailoverProvisioner(primary, NewJitsiProvisioner(), nil)
	room, err := p.CreateRoom(context.Background(), "iv-2", time.Now().Add(time.Hour), 30)
	require.NoError(t, err)
	assert.Equal(t, "daily", room.Provider)
}

func TestFailoverProvisionerNilPrimary(t *testing.T) {
	p := NewFailoverProvisioner(nil, NewJitsiProvisioner(), nil)
	room, err := p.CreateRoom(context.Background(), "iv-3", time.Now(), 30)
	require.NoError(t, err)
	assert.Equal(t, "jitsi", room.Provider)
}
