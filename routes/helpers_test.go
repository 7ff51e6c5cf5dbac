package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube-be/controllers"
	"github.com/yatube/yatube-be/db/mock"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier treats the raw token as the firebase UID.
type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	return &auth.Token{UID: idToken}, nil
}

func (stubVerifier) VerifySessionCookie(_ context.Context, sessionCookie string) (*auth.Token, error) {
	return &auth.Token{UID: sessionCookie}, nil
}

type fakeBucket struct {
	mutex sync.Mutex
	blobs map[string][]byte
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{blobs: make(map[string][]byte)}
}

func (fb *fakeBucket) Exists(_ context.Context, blobName string) (bool, error) {
	fb.mutex.Lock()
	defer fb.mutex.Unlock()
	_, ok := fb.blobs[blobName]
	return ok, nil
}

func (fb *fakeBucket) Upload(_ context.Context, blobName, _ string, r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	fb.mutex.Lock()
	defer fb.mutex.Unlock()
	fb.blobs[blobName] = body
	return nil
}

type testEnv struct {
	router *gin.Engine
	db     *mock.DB
	bucket *fakeBucket
	cache  *services.MemoryPageCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := mock.NewDB()

	// a monotonic clock keeps listing order deterministic
	var tick int64
	database.Clock = func() time.Time {
		tick++
		return time.Unix(1700000000+tick, 0)
	}

	groupController, err := controllers.NewGroupController(context.Background(), database)
	require.NoError(t, err)

	bucket := newFakeBucket()
	cache := services.NewMemoryPageCache()

	router := gin.New()
	AddHealthCheckRoutes(&router.RouterGroup)
	AddPostRoutes(&router.RouterGroup, database, stubVerifier{}, bucket, groupController,
		cache, time.Minute)
	AddFollowRoutes(&router.RouterGroup, database, stubVerifier{})
	AddGroupRoutes(&router.RouterGroup, database, stubVerifier{}, groupController)
	AddUserRoutes(&router.RouterGroup, database, stubVerifier{})

	return &testEnv{router: router, db: database, bucket: bucket, cache: cache}
}

func (env *testEnv) seedUser(t *testing.T, id, username string) *model.User {
	t.Helper()
	require.NoError(t, env.db.CreateUser(context.Background(), &model.User{Id: id, Username: username}))
	user, err := env.db.GetUser(context.Background(), id)
	require.NoError(t, err)
	return user
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) get(t *testing.T, uri, asUser string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, uri, nil)
	if asUser != "" {
		req.Header.Set("Authorization", "Bearer "+asUser)
	}
	return env.do(req)
}

func (env *testEnv) postForm(t *testing.T, uri, asUser string, form map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	values := url.Values{}
	for key, val := range form {
		values.Set(key, val)
	}
	req := httptest.NewRequest(http.MethodPost, uri, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asUser != "" {
		req.Header.Set("Authorization", "Bearer "+asUser)
	}
	return env.do(req)
}

func (env *testEnv) putJSON(t *testing.T, uri, asUser string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, uri, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("Authorization", "Bearer "+asUser)
	}
	return env.do(req)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var res struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)
	return res.Data
}
