package benchmark

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/app/routes"
	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/testutil"
)

const (
	concurrency = 8
	requests    = 64
)

type server struct {
	URL      string
	Token    string
	PersonID uint
}

// startServer serves the API over a real listener with a seeded family
// tree and a community feed.
func startServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t, cfg)
	c := container.NewServiceContainer(db, cfg, nil, &testutil.FakeMailer{})
	t.Cleanup(func() { c.Close() })

	owner := testutil.CreateUser(t, db, "owner")
	family, err := c.GetService("family").(services.InterfaceFamilyService).Register(owner.ID, "Kulkarni", "")
	require.NoError(t, err)

	persons := c.GetService("person").(services.InterfacePersonService)
	var last uint
	for i, relation := range []string{"father", "mother", "wife", "son", "daughter"} {
		p, err := persons.Add(owner.ID, services.PersonInput{
			FamilyID: family.ID,
			Name:     fmt.Sprintf("member-%d", i),
			Relation: relation,
		})
		require.NoError(t, err)
		last = p.ID
	}

	_, err = c.GetService("community").(services.InterfaceCommunityService).Create(owner.ID, "Green Park", "Pune", "")
	require.NoError(t, err)
	posts := c.GetService("post").(services.InterfacePostService)
	for i := 0; i < 10; i++ {
		_, err := posts.Create(owner.ID, fmt.Sprintf("post %d", i), nil)
		require.NoError(t, err)
	}

	token, err := c.GetService("jwt").(services.InterfaceJWTService).GenerateToken(owner.ID)
	require.NoError(t, err)

	ts := httptest.NewServer(routes.SetupRouter(c))
	t.Cleanup(ts.Close)
	return &server{URL: ts.URL, Token: token, PersonID: last}
}

func TestFamilyRelationsUnderLoad(t *testing.T) {
	srv := startServer(t)
	benchmark := NewAPIBenchmark(srv.URL, concurrency, requests, "")

	result := benchmark.RunGET(fmt.Sprintf("/api/profile/%d/family-relations", srv.PersonID))
	t.Log(result)

	assert.Zero(t, result.FailureCount, result.String())
	assert.Equal(t, requests, result.StatusCodes[200])
	assert.Equal(t, float64(100), result.SuccessRate())
}

func TestFeedUnderLoad(t *testing.T) {
	srv := startServer(t)
	benchmark := NewAPIBenchmark(srv.URL, concurrency, requests, srv.Token)

	result := benchmark.RunGET("/api/posts/feed")
	t.Log(result)

	assert.Zero(t, result.FailureCount, result.String())
	assert.LessOrEqual(t, result.MinTime, result.MaxTime)
}

func TestUnauthorizedRequestsAreCounted(t *testing.T) {
	srv := startServer(t)
	benchmark := NewAPIBenchmark(srv.URL, concurrency, 10, "")

	result := benchmark.RunPUT("/api/privacy", gin.H{"field": "show_email", "value": true})

	assert.Equal(t, 10, result.FailureCount)
	assert.Equal(t, 10, result.StatusCodes[401])
	assert.Zero(t, result.SuccessRate())
}
