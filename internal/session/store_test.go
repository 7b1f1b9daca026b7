package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vera-byte/vgo-admin/internal/storage"
	"github.com/vera-byte/vgo-admin/pkg/api"
	"github.com/vera-byte/vgo-admin/pkg/client"
	"github.com/vera-byte/vgo-admin/pkg/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	login   func(api.LoginParams) (*model.Envelope[api.LoginData], error)
	refresh func(api.RefreshTokenParams) (*model.Result[api.RefreshData], error)
}

func (f *fakeAuth) Login(_ context.Context, p api.LoginParams) (*model.Envelope[api.LoginData], error) {
	return f.login(p)
}

func (f *fakeAuth) RefreshToken(_ context.Context, p api.RefreshTokenParams) (*model.Result[api.RefreshData], error) {
	return f.refresh(p)
}

type fakeNav struct {
	resets    int
	redirects []string
}

func (n *fakeNav) ResetTabs()           { n.resets++ }
func (n *fakeNav) Redirect(path string) { n.redirects = append(n.redirects, path) }

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, st storage.Storage, auth Authenticator, nav Navigator) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), st, auth,
		WithNavigator(nav), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s
}

func okLogin(data api.LoginData) *fakeAuth {
	return &fakeAuth{login: func(api.LoginParams) (*model.Envelope[api.LoginData], error) {
		return &model.Envelope[api.LoginData]{Code: 0, Msg: "登录成功", Data: data}, nil
	}}
}

func stored(t *testing.T, st storage.Storage) DataInfo {
	t.Helper()
	var info DataInfo
	require.NoError(t, st.Get(context.Background(), UserKey, &info))
	return info
}

func TestLoginByUsername_Success(t *testing.T) {
	st := storage.NewMemory()
	status := 1
	s := newStore(t, st, okLogin(api.LoginData{
		Token:        "abc123",
		Username:     "ops",
		Email:        "ops@example.com",
		GoogleStatus: &status,
	}), nil)

	res, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "登录成功", res.Message)
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, 1, s.GoogleStatus())

	info := stored(t, st)
	assert.Equal(t, "abc123", info.AccessToken)
	assert.Equal(t, "abc123", info.RefreshToken)
	assert.Equal(t, "ops", info.Nickname, "nickname falls back to username")
	assert.Equal(t, []string{DefaultRole}, info.Roles)
	assert.Equal(t, []string{AllPermissions}, info.Permissions)
	assert.Equal(t, "ops@example.com", info.UserEmail)
	assert.Equal(t, fixedNow.Add(DefaultTTL).UnixMilli(), info.Expires)
	assert.Equal(t, info, s.Snapshot())
	assert.Equal(t, "abc123", s.AccessToken())
}

func TestLoginByUsername_GroupNameAndJWTExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	st := storage.NewMemory()
	s := newStore(t, st, okLogin(api.LoginData{Token: token, Username: "ops", GroupName: "finance"}), nil)

	_, err = s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops"})
	require.NoError(t, err)

	info := stored(t, st)
	assert.Equal(t, "finance", info.Nickname)
	assert.Equal(t, []string{"finance"}, info.Roles)
	assert.Equal(t, exp.UnixMilli(), info.Expires)
	assert.True(t, s.HasRole("finance"))
	assert.False(t, s.HasRole("admin"))
	assert.True(t, s.HasPermission("agent:list:view"))
}

func TestLoginByUsername_Rejected(t *testing.T) {
	st := storage.NewMemory()
	s := newStore(t, st, &fakeAuth{login: func(api.LoginParams) (*model.Envelope[api.LoginData], error) {
		return &model.Envelope[api.LoginData]{Code: 1, Msg: "密码错误"}, nil
	}}, nil)

	res, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops", Password: "bad"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "密码错误", res.Message)
	assert.Nil(t, res.Data)
	assert.Equal(t, Anonymous, s.State())
	assert.False(t, st.Has(UserKey), "rejected login must not touch storage")
}

func TestLoginByUsername_RejectedWithoutMessage(t *testing.T) {
	s := newStore(t, storage.NewMemory(), &fakeAuth{login: func(api.LoginParams) (*model.Envelope[api.LoginData], error) {
		return &model.Envelope[api.LoginData]{Code: 500}, nil
	}}, nil)

	res, err := s.LoginByUsername(context.Background(), api.LoginParams{})
	require.NoError(t, err)
	assert.Equal(t, loginFailedMessage, res.Message)
}

func TestLoginByUsername_TransportError(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(context.Background(), UserKey, DataInfo{AccessToken: "old", Username: "ops"}))
	boom := errors.New("connection refused")
	s := newStore(t, st, &fakeAuth{login: func(api.LoginParams) (*model.Envelope[api.LoginData], error) {
		return nil, boom
	}}, nil)
	require.Equal(t, Authenticated, s.State())

	res, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Authenticated, s.State(), "failed attempt keeps the previous session")
	assert.Equal(t, "old", stored(t, st).AccessToken)
}

func TestNewStore_SeedsFromStorage(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(context.Background(), UserKey, DataInfo{
		AccessToken: "abc123",
		Username:    "ops",
		Roles:       []string{"admin"},
		Expires:     fixedNow.Add(-time.Hour).UnixMilli(),
	}))

	s := newStore(t, st, nil, nil)
	assert.Equal(t, Authenticated, s.State(), "expiry is not validated on restore")
	assert.True(t, s.IsExpired())
	assert.Equal(t, []string{"admin"}, s.Roles())
}

func TestNewStore_Empty(t *testing.T) {
	s := newStore(t, storage.NewMemory(), nil, nil)
	assert.Equal(t, Anonymous, s.State())
	assert.Empty(t, s.AccessToken())
	assert.True(t, s.IsExpired())
}

func TestLogOut(t *testing.T) {
	st := storage.NewMemory()
	nav := &fakeNav{}
	s := newStore(t, st, okLogin(api.LoginData{Token: "abc123", Username: "ops"}), nav)
	_, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops"})
	require.NoError(t, err)

	require.NoError(t, s.LogOut(context.Background()))
	assert.Equal(t, Anonymous, s.State())
	assert.Equal(t, DataInfo{}, s.Snapshot())
	assert.False(t, st.Has(UserKey))
	assert.Equal(t, 1, nav.resets)
	assert.Equal(t, []string{LoginPath}, nav.redirects)

	require.NoError(t, s.LogOut(context.Background()), "logout from anonymous is allowed")
	assert.Equal(t, 2, nav.resets)
}

func TestHandRefreshToken(t *testing.T) {
	st := storage.NewMemory()
	auth := okLogin(api.LoginData{Token: "abc123", Username: "ops", GroupName: "finance"})
	var sent string
	auth.refresh = func(p api.RefreshTokenParams) (*model.Result[api.RefreshData], error) {
		sent = p.RefreshToken
		return &model.Result[api.RefreshData]{Success: true, Data: api.RefreshData{
			AccessToken:  "next",
			RefreshToken: "next-refresh",
			Expires:      api.ExpiresAt{Time: fixedNow.Add(time.Hour)},
		}}, nil
	}
	s := newStore(t, st, auth, nil)
	_, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "ops"})
	require.NoError(t, err)

	res, err := s.HandRefreshToken(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "abc123", sent, "stored refresh token is used by default")

	info := stored(t, st)
	assert.Equal(t, "next", info.AccessToken)
	assert.Equal(t, "next-refresh", info.RefreshToken)
	assert.Equal(t, fixedNow.Add(time.Hour).UnixMilli(), info.Expires)
	assert.Equal(t, "finance", info.Nickname, "identity survives refresh")
	assert.Equal(t, "next", s.AccessToken())
}

func TestHandRefreshToken_Rejected(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(context.Background(), UserKey, DataInfo{AccessToken: "abc123", RefreshToken: "r"}))
	s := newStore(t, st, &fakeAuth{refresh: func(api.RefreshTokenParams) (*model.Result[api.RefreshData], error) {
		return &model.Result[api.RefreshData]{Success: false, Message: "expired"}, nil
	}}, nil)

	_, err := s.HandRefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrRefreshRejected)
	assert.Equal(t, "abc123", stored(t, st).AccessToken)
	assert.Equal(t, Authenticated, s.State(), "recovery is left to the caller")
}

func TestSetUserEmail(t *testing.T) {
	st := storage.NewMemory()
	s := newStore(t, st, nil, nil)

	require.NoError(t, s.SetUserEmail(context.Background(), "a@example.com"))
	assert.False(t, st.Has(UserKey), "no record, memory only")
	assert.Equal(t, "a@example.com", s.Snapshot().UserEmail)

	require.NoError(t, st.Set(context.Background(), UserKey, DataInfo{AccessToken: "abc123"}))
	require.NoError(t, s.SetUserEmail(context.Background(), "b@example.com"))
	info := stored(t, st)
	assert.Equal(t, "b@example.com", info.UserEmail)
	assert.Equal(t, "abc123", info.AccessToken)
}

// 通过真实传输层登录，并确认后续请求携带会话令牌
func TestLoginByUsername_OverHTTP(t *testing.T) {
	var lastAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/login/login":
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			if r.FormValue("password") != "pw" {
				_, _ = io.WriteString(w, `{"code":1,"msg":"密码错误","data":null}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 0,
				"msg":  "ok",
				"data": map[string]any{"token": "abc123", "username": r.FormValue("username"), "gruop_name": "ops"},
			})
		default:
			_, _ = io.WriteString(w, `{"code":0,"msg":"","data":{"total":0,"rows":[]}}`)
		}
	}))
	defer server.Close()

	st := storage.NewMemory()
	c := client.New(client.Config{BaseURL: server.URL})
	admin := api.New(c)
	s := newStore(t, st, admin, nil)
	c.SetTokenSource(s)

	res, err := s.LoginByUsername(context.Background(), api.LoginParams{Username: "root", Password: "bad"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, st.Has(UserKey))

	res, err = s.LoginByUsername(context.Background(), api.LoginParams{Username: "root", Password: "pw"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "abc123", stored(t, st).AccessToken)

	_, err = admin.GetAgentList(context.Background(), api.AgentListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", lastAuth)
}
