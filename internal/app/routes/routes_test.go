package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/testutil"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiFixture struct {
	db        *gorm.DB
	mailer    *testutil.FakeMailer
	container *container.ServiceContainer
	router    *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	m := &testutil.FakeMailer{}
	c := container.NewServiceContainer(db, cfg, nil, m)
	t.Cleanup(func() { c.Close() })

	return &apiFixture{db: db, mailer: m, container: c, router: SetupRouter(c)}
}

func (f *apiFixture) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := f.container.GetService("jwt").(services.InterfaceJWTService).GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return f.serve(t, req)
}

func (f *apiFixture) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPingAndHealth(t *testing.T) {
	f := newAPIFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/api/users/me", "/api/communities/my-community", "/api/posts/feed", "/api/events", "/api/notifications"} {
		w, _ := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w, _ := f.do(t, http.MethodGet, "/api/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	f := newAPIFixture(t)

	w, _ := f.do(t, http.MethodPost, "/auth/send-otp", "", gin.H{"email": "asha@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	otp := f.mailer.Last().OTP
	require.NotEmpty(t, otp)

	w, _ = f.do(t, http.MethodPost, "/auth/verify-otp-register", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret", "otp": otp,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = f.do(t, http.MethodPost, "/auth/send-otp", "", gin.H{"email": "asha@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := f.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "asha@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login services.LoginResult
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w, env = f.do(t, http.MethodGet, "/api/users/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "asha@example.com")
}

func TestFamilyTreeRoutes(t *testing.T) {
	f := newAPIFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	token := f.token(t, owner)

	w, _ := f.do(t, http.MethodGet, "/api/families", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
	w, _ = f.do(t, http.MethodGet, "/api/families", "", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w, env := f.do(t, http.MethodPost, "/api/register-family", token, gin.H{"family_name": "Kulkarni"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		FamilyID uint `json:"familyId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = f.do(t, http.MethodGet, "/api/families", "", nil)
	assert.Empty(t, w.Header().Get("X-Cache"), "registering a family purges the cache")
	assert.Contains(t, string(env.Data), "Kulkarni")

	add := func(name, relation string) uint {
		w, env := f.do(t, http.MethodPost, "/api/person", token, gin.H{"family_id": created.FamilyID, "name": name, "relation": relation})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var person models.Person
		require.NoError(t, json.Unmarshal(env.Data, &person))
		return person.ID
	}
	add("Raj", "father")
	add("Sita", "wife")
	sonID := add("Amit", "son")

	w, env = f.do(t, http.MethodGet, fmt.Sprintf("/api/profile/%d/family-relations", sonID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var shape map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &shape))
	assert.Len(t, shape, 2, "data holds exactly self and relations")
	assert.Contains(t, shape, "self")
	assert.Contains(t, shape, "relations")

	var relations services.FamilyRelations
	require.NoError(t, json.Unmarshal(env.Data, &relations))
	assert.Equal(t, "Amit", relations.Self.Name)
	require.Len(t, relations.Relations, 2)
	assert.Equal(t, "Raj", relations.Relations[0].Name)
	assert.Equal(t, "father", relations.Relations[0].Relation)

	w, _ = f.do(t, http.MethodGet, "/api/profile/abc/family-relations", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stranger := testutil.CreateUser(t, f.db, "stranger")
	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/api/person/%d", sonID), f.token(t, stranger), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/api/person/%d", sonID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommunityPostFlow(t *testing.T) {
	f := newAPIFixture(t)
	head := testutil.CreateUser(t, f.db, "head")
	member := testutil.CreateUser(t, f.db, "member")
	headToken, memberToken := f.token(t, head), f.token(t, member)

	w, env := f.do(t, http.MethodPost, "/api/communities/create-community", headToken, gin.H{"name": "Green Park"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var community struct {
		InviteCode string `json:"invite_code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &community))

	w, _ = f.do(t, http.MethodPost, "/api/communities/join-community", memberToken, gin.H{"invite_code": community.InviteCode})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body, contentType := testutil.MultipartBody(t, map[string]string{"content": "Hello neighbours"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+headToken)
	w, env = f.serve(t, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post struct {
		PostID uint `json:"post_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))

	likePath := fmt.Sprintf("/api/posts/%d/like", post.PostID)
	w, _ = f.do(t, http.MethodPost, likePath, memberToken, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = f.do(t, http.MethodPost, likePath, memberToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comment", post.PostID), memberToken, gin.H{"comment": "Welcome!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.container.GetService("notification").(services.InterfaceNotificationService).Wait()

	w, env = f.do(t, http.MethodGet, "/api/notifications", headToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	assert.NotEmpty(t, notifications)

	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/posts/%d", post.PostID), memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/posts/%d", post.PostID), headToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = f.do(t, http.MethodGet, "/api/posts/feed", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "Hello neighbours")
}
