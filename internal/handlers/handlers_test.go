// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/middleware"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/stretchr/testify/assert"
)

// newTestServer builds a Server over a fresh in-memory store with the two
// default boards seeded.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	middleware.SetJWTSecret("test-secret")

	store := database.NewMemoryStore()
	ctx := context.Background()
	assert.NoError(t, store.CreateBoard(ctx, models.NewBoard("male", "자기소개(남)", "남자가 본인을 소개하는 게시판")))
	assert.NoError(t, store.CreateBoard(ctx, models.NewBoard("female", "자기소개(여)", "여자가 본인을 소개하는 게시판")))

	return NewServer(store, utils.NewMetricsCollector())
}

// doJSON sends a JSON request through the JWT middleware the way the real
// route table does. An empty token leaves the request unauthenticated.
func doJSON(handler http.HandlerFunc, target, method, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	// The middleware keys off the registered route, not the raw target.
	route, _, _ := strings.Cut(target, "?")
	middleware.ApplyJWTMiddleware(handler, route)(w, req)
	return w
}

func registerMember(t *testing.T, server *Server, username string) models.Member {
	t.Helper()
	w := doJSON(server.HandleMemberRegistration(), "/members/register", "POST", "", RegisterMemberRequest{
		Username: username,
		Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var member models.Member
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &member))
	return member
}

func loginMember(t *testing.T, server *Server, username, password string) string {
	t.Helper()
	w := doJSON(server.HandleMemberLogin(), "/members/login", "POST", "", LoginRequest{
		Username: username,
		Password: password,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestIntegrationFlow(t *testing.T) {
	server := newTestServer(t)

	// Step 1: Register two members
	author := registerMember(t, server, "author")
	t.Logf("Author registered with ID: %s", author.ID)
	registerMember(t, server, "reader")

	// Step 2: Duplicate username is rejected with a conflict
	w := doJSON(server.HandleMemberRegistration(), "/members/register", "POST", "", RegisterMemberRequest{
		Username: "author",
		Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Step 3: Log both members in
	authorToken := loginMember(t, server, "author", "password123")
	readerToken := loginMember(t, server, "reader", "password123")

	// Step 4: Wrong password gets the generic message, not a hint
	w = doJSON(server.HandleMemberLogin(), "/members/login", "POST", "", LoginRequest{
		Username: "author",
		Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var loginResp LoginResponse
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	assert.Equal(t, "Invalid username or password", loginResp.Error)

	// Step 5: Unknown username gets the exact same message
	w = doJSON(server.HandleMemberLogin(), "/members/login", "POST", "", LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	assert.Equal(t, "Invalid username or password", loginResp.Error)

	// Step 6: Creating a post requires a token
	w = doJSON(server.HandlePostCreate(), "/posts", "POST", "", CreatePostRequest{
		Title:     "Hello",
		Content:   "My first post",
		BoardCode: "male",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Step 7: The author creates a post on the male board
	w = doJSON(server.HandlePostCreate(), "/posts", "POST", authorToken, CreatePostRequest{
		Title:     "Hello",
		Content:   "My first post",
		BoardCode: "male",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	t.Logf("Post created with ID: %s", post.ID)

	// Step 8: Viewing the post bumps the view count and reports zero
	// recommendations
	w = doJSON(server.HandlePostView(), "/posts/view?id="+post.ID.String(), "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var viewResp PostResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewResp))
	assert.Equal(t, 1, viewResp.ViewCount)
	assert.Equal(t, 0, viewResp.RecommendationCount)
	assert.Equal(t, "author", viewResp.AuthorUsername)
	assert.Equal(t, "male", viewResp.BoardCode)

	// Step 9: The reader recommends the post
	w = doJSON(server.HandlePostRecommend(), "/posts/recommend", "POST", readerToken, RecommendPostRequest{
		PostID: post.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var recResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &recResp)
	assert.Equal(t, float64(1), recResp["recommendationCount"])

	// Step 10: Recommending the same post again is a conflict
	w = doJSON(server.HandlePostRecommend(), "/posts/recommend", "POST", readerToken, RecommendPostRequest{
		PostID: post.ID.String(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Step 11: The author may still recommend their own post once
	w = doJSON(server.HandlePostRecommend(), "/posts/recommend", "POST", authorToken, RecommendPostRequest{
		PostID: post.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &recResp)
	assert.Equal(t, float64(2), recResp["recommendationCount"])

	// Step 12: The board listing carries the post
	w = doJSON(server.HandleBoardPosts(), "/boards/posts?code=male", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var posts []*models.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)

	// Step 13: Only the author may edit the post
	w = doJSON(server.HandlePostUpdate(), "/posts/update", "PUT", readerToken, UpdatePostRequest{
		ID:      post.ID.String(),
		Title:   "Hijacked",
		Content: "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(server.HandlePostUpdate(), "/posts/update", "PUT", authorToken, UpdatePostRequest{
		ID:      post.ID.String(),
		Title:   "Hello again",
		Content: "Edited content",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Step 14: Only the author may delete the post
	w = doJSON(server.HandlePostDelete(), "/posts/delete?id="+post.ID.String(), "DELETE", readerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(server.HandlePostDelete(), "/posts/delete?id="+post.ID.String(), "DELETE", authorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Step 15: The deleted post is gone
	w = doJSON(server.HandlePostView(), "/posts/view?id="+post.ID.String(), "GET", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardEndpoints(t *testing.T) {
	server := newTestServer(t)

	// Full listing returns both seeded boards
	w := doJSON(server.HandleBoards(), "/boards", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var boards []*models.Board
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &boards))
	assert.Len(t, boards, 2)

	// Lookup by code
	w = doJSON(server.HandleBoards(), "/boards?code=female", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var board models.Board
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, "자기소개(여)", board.Name)

	// Unknown code is a 404
	w = doJSON(server.HandleBoards(), "/boards?code=unknown", "GET", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Keyword search over names
	w = doJSON(server.HandleBoards(), "/boards?search="+"%EC%9E%90%EA%B8%B0%EC%86%8C%EA%B0%9C", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &boards))
	assert.Len(t, boards, 2)

	// Listing posts of an unknown board is a 404, not an empty list
	w = doJSON(server.HandleBoardPosts(), "/boards/posts?code=unknown", "GET", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberAccountEndpoints(t *testing.T) {
	server := newTestServer(t)

	member := registerMember(t, server, "jinsoo")
	token := loginMember(t, server, "jinsoo", "password123")

	// Lookup by ID and username requires a token
	w := doJSON(server.HandleMembers(), "/members?id="+member.ID.String(), "GET", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(server.HandleMembers(), "/members?id="+member.ID.String(), "GET", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var found models.Member
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, "jinsoo", found.Username)

	// The password hash never appears in responses
	assert.NotContains(t, w.Body.String(), "password")

	// The member updates their own credentials
	w = doJSON(server.HandleMemberUpdate(), "/members/update", "PUT", token, UpdateMemberRequest{
		Username: "jinsoo2",
		Password: "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The old password no longer works, the new one does
	w = doJSON(server.HandleMemberLogin(), "/members/login", "POST", "", LoginRequest{
		Username: "jinsoo2",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	loginMember(t, server, "jinsoo2", "newpassword")

	// The member deletes their own account
	w = doJSON(server.HandleMemberDelete(), "/members/delete", "DELETE", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(server.HandleMembers(), "/members?id="+member.ID.String(), "GET", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostSearchEndpoint(t *testing.T) {
	server := newTestServer(t)

	registerMember(t, server, "author")
	token := loginMember(t, server, "author", "password123")

	w := doJSON(server.HandlePostCreate(), "/posts", "POST", token, CreatePostRequest{
		Title:     "Go concurrency",
		Content:   "channels and goroutines",
		BoardCode: "male",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Search by title keyword
	w = doJSON(server.HandlePostSearch(), "/posts/search?title=Go", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var posts []*models.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)

	// Search by author keyword
	w = doJSON(server.HandlePostSearch(), "/posts/search?author=auth", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)

	// A search without parameters is a bad request
	w = doJSON(server.HandlePostSearch(), "/posts/search", "GET", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A malformed period is a bad request
	w = doJSON(server.HandlePostSearch(), "/posts/search?from=yesterday&to=today", "GET", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(server.HandleHealth(), "/health", "GET", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total Boards: 2")
	assert.Contains(t, w.Body.String(), "Total Posts: 0")
}
