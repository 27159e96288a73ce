package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect_web/internal/models"
	"careconnect_web/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sampleSession(id string, expires time.Time) *Session {
	return &Session{
		ID:        id,
		User:      models.User{ID: "u1", Email: "ana@example.com", Role: models.UserRoleElder, FirstName: "Ana"},
		Token:     "jwt",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}
}

// storeContract runs the same checks against every Store implementation.
func storeContract(t *testing.T, store Store, setNow func(time.Time)) {
	ctx := context.Background()
	base := time.Now()

	// 1. Missing
	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	// 2. Save and read back
	require.NoError(t, store.Save(ctx, sampleSession("s1", base.Add(time.Hour))))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.User.Email)
	assert.Equal(t, models.UserRoleElder, got.Role())
	assert.Equal(t, "jwt", got.Token)

	// 3. Delete
	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// 4. Expiry
	require.NoError(t, store.Save(ctx, sampleSession("s2", base.Add(time.Minute))))
	setNow(base.Add(2 * time.Minute))
	_, err = store.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	storeContract(t, store, func(now time.Time) { store.now = func() time.Time { return now } })
}

func TestMemoryStore_Purge(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, sampleSession("old", base.Add(-time.Minute))))
	require.NoError(t, store.Save(ctx, sampleSession("live", base.Add(time.Hour))))

	n, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	storeContract(t, store, func(now time.Time) { store.now = func() time.Time { return now } })
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleSession("keep", time.Now().Add(time.Hour))))
	require.NoError(t, store.Save(ctx, sampleSession("stale", time.Now().Add(-time.Hour))))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.User.FirstName)

	n, err := reopened.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client, err := DialRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "careconnect:test:"+t.Name()+":")
	storeContract(t, store, func(now time.Time) { store.now = func() time.Time { return now } })
}

// fakeRedis answers GET, SET and DEL in process through a client hook, so the
// client never dials.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() (*fakeRedis, *redis.Client) {
	f := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(f)
	return f, client
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.err != nil {
			return f.err
		}
		args := cmd.Args()
		var key string
		if len(args) > 1 {
			key, _ = args[1].(string)
		}
		switch cmd.Name() {
		case "get":
			v, ok := f.data[key]
			if !ok {
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(v)
		case "set":
			f.data[key] = string(args[2].([]byte))
			delete(f.ttls, key)
			if len(args) == 5 {
				n := args[4].(int64)
				if args[3] == "ex" {
					f.ttls[key] = time.Duration(n) * time.Second
				} else {
					f.ttls[key] = time.Duration(n) * time.Millisecond
				}
			}
			cmd.(*redis.StatusCmd).SetVal("OK")
		case "del":
			_, ok := f.data[key]
			delete(f.data, key)
			delete(f.ttls, key)
			if ok {
				cmd.(*redis.IntCmd).SetVal(1)
			}
		case "ping":
			cmd.(*redis.StatusCmd).SetVal("PONG")
		default:
			return fmt.Errorf("fake redis: unsupported command %q", cmd.Name())
		}
		return nil
	}
}

func TestRedisStore_Fake(t *testing.T) {
	_, client := newFakeRedis()
	store := NewRedisStore(client, "careconnect:session:")
	storeContract(t, store, func(now time.Time) { store.now = func() time.Time { return now } })
}

func TestRedisStore_SaveTTL(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		expires time.Time
		ttl     time.Duration
		stored  bool
	}{
		{"whole seconds", now.Add(90 * time.Minute), 90 * time.Minute, true},
		{"sub second", now.Add(1500 * time.Millisecond), 1500 * time.Millisecond, true},
		{"expires now", now, 0, false},
		{"already expired", now.Add(-time.Minute), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, client := newFakeRedis()
			store := NewRedisStore(client, "cc:")
			store.now = func() time.Time { return now }
			ctx := context.Background()

			// 1. A stale copy under the same id
			f.data["cc:s1"] = "{}"

			// 2. Save either sets with the remaining lifetime or deletes
			require.NoError(t, store.Save(ctx, sampleSession("s1", tc.expires)))

			_, ok := f.data["cc:s1"]
			assert.Equal(t, tc.stored, ok)
			assert.Equal(t, tc.ttl, f.ttls["cc:s1"])
		})
	}
}

func TestRedisStore_Errors(t *testing.T) {
	f, client := newFakeRedis()
	store := NewRedisStore(client, "cc:")
	ctx := context.Background()

	// 1. A missing key is ErrNotFound, not a failure
	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// 2. Undecodable data is a failure
	f.data["cc:garbled"] = "not json"
	_, err = store.Get(ctx, "garbled")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// 3. Server errors are wrapped
	f.err = errors.New("LOADING Redis is loading the dataset in memory")
	_, err = store.Get(ctx, "missing")
	assert.ErrorContains(t, err, "getting session")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, store.Save(ctx, sampleSession("s1", time.Now().Add(time.Hour))), "saving session")
	assert.ErrorContains(t, store.Ping(ctx), "pinging redis")
}

// failingStore accepts nothing.
type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) (*Session, error) { return nil, s.err }
func (s failingStore) Save(context.Context, *Session) error          { return s.err }
func (s failingStore) Delete(context.Context, string) error          { return s.err }
func (s failingStore) Ping(context.Context) error                    { return s.err }

func TestManager_StoreFailuresAreStorageErrors(t *testing.T) {
	mgr := NewManager(failingStore{err: errors.New("disk I/O error")}, Options{CookieName: "cc"})

	// 1. Start
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	_, err := mgr.Start(c, models.AuthResponse{Token: "opaque-token"})
	require.Error(t, err)
	assert.Equal(t, "Session storage is unavailable", apperrors.UserMessage(err, ""))
	assert.True(t, apperrors.HasStatus(err, http.StatusInternalServerError))
	assert.ErrorContains(t, err, "disk I/O error")
	assert.Nil(t, sessionCookie(w, "cc"))

	// 2. Destroy still expires the cookie
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	c.Request.AddCookie(&http.Cookie{Name: "cc", Value: "s1"})

	err = mgr.Destroy(c)
	assert.Equal(t, "Session storage is unavailable", apperrors.UserMessage(err, ""))
	require.NotNil(t, sessionCookie(w, "cc"))

	// 3. Ping
	assert.Equal(t, "Session storage is unavailable", apperrors.UserMessage(mgr.Ping(context.Background()), ""))
	assert.NoError(t, NewManager(NewMemoryStore(), Options{}).Ping(context.Background()))
}

func TestSession_NilIsUnauthenticated(t *testing.T) {
	var sess *Session
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, models.UserRole(""), sess.Role())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("not-known-to-the-web-app"))
	require.NoError(t, err)
	return s
}

func sessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestManager_StartLoadDestroy(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, Options{CookieName: "cc", TTL: time.Hour})
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	// 1. Start sets an HttpOnly cookie and honours the token exp
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	sess, err := mgr.Start(c, models.AuthResponse{Token: signedToken(t, exp), User: models.User{ID: "u1", Role: models.UserRoleCaregiver}})
	require.NoError(t, err)
	assert.True(t, exp.Equal(sess.ExpiresAt))
	assert.Same(t, sess, FromContext(c))

	cookie := sessionCookie(w, "cc")
	require.NotNil(t, cookie)
	assert.Equal(t, sess.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// 2. Load with the cookie finds it
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Request.AddCookie(cookie)

	loaded := mgr.Load(c)
	require.NotNil(t, loaded)
	assert.Equal(t, models.UserRoleCaregiver, loaded.Role())

	// 3. Destroy removes it and expires the cookie
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	c.Request.AddCookie(cookie)

	require.NoError(t, mgr.Destroy(c))
	cleared := sessionCookie(w, "cc")
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)

	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_TokenWithoutExpUsesTTL(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), Options{CookieName: "cc", TTL: 2 * time.Hour})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	before := time.Now()
	sess, err := mgr.Start(c, models.AuthResponse{Token: "opaque-token"})
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(2*time.Hour), sess.ExpiresAt, 5*time.Second)
}

func TestManager_LoadUnknownCookieClearsIt(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), Options{CookieName: "cc"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "cc", Value: "forged"})

	assert.Nil(t, mgr.Load(c))
	cleared := sessionCookie(w, "cc")
	require.NotNil(t, cleared)
	assert.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0"))
}
