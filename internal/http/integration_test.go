package httpapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/openbbs/bulletin/internal/auth"
	"github.com/openbbs/bulletin/internal/client"
	"github.com/openbbs/bulletin/internal/config"
	"github.com/openbbs/bulletin/internal/model"
	"github.com/openbbs/bulletin/internal/store/sqlite"
)

type testClient struct {
	server *httptest.Server
	client *http.Client
}

func newIntegrationClient(t *testing.T) *testClient {
	t.Helper()
	dsnName := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnName))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	authSvc := auth.NewService(st, "test-secret", time.Hour, 4)
	server := NewServer(st, authSvc, config.Config{})
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
		_ = st.Close()
	})
	return &testClient{server: ts, client: ts.Client()}
}

// do sends a JSON request. An empty token means unauthenticated; otherwise the
// token rides in the Authorization cookie the way browsers replay it.
func (c *testClient) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: auth.CookieValue(token)})
	}
	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response, out *T) {
	t.Helper()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("json decode: %v (body %s)", err, string(body))
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func createTestAccount(t *testing.T, tc *testClient, nickname string) string {
	t.Helper()
	helper := client.NewTestHelper(tc.server.URL)
	token, err := helper.GetToken(nickname)
	if err != nil {
		t.Fatalf("create test account: %v", err)
	}
	return token
}

func TestSignupLoginMeFlow(t *testing.T) {
	tc := newIntegrationClient(t)

	resp := tc.do(t, http.MethodPost, "/signup", map[string]string{
		"nickname":        "alice",
		"password":        "wonderland1",
		"confirmPassword": "wonderland1",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodPost, "/login", map[string]string{
		"nickname": "alice",
		"password": "wonderland1",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %s", resp.StatusCode, readBody(t, resp))
	}

	// The session also rides in the Authorization cookie for browser callers.
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected %s cookie on login", auth.CookieName)
	}
	if !strings.HasPrefix(sessionCookie.Value, "Bearer ") {
		t.Fatalf("expected bearer cookie, got %q", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &loginResp)
	if loginResp.Token == "" {
		t.Fatalf("expected token in body")
	}

	resp = tc.do(t, http.MethodGet, "/signup/me", nil, loginResp.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var meResp struct {
		User struct {
			Nickname string `json:"nickname"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &meResp)
	if meResp.User.Nickname != "alice" {
		t.Fatalf("expected alice, got %q", meResp.User.Nickname)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	tc := newIntegrationClient(t)

	resp := tc.do(t, http.MethodPost, "/signup", map[string]string{
		"nickname":        "bob",
		"password":        "builder42",
		"confirmPassword": "builder42",
	}, "")
	resp.Body.Close()

	respUnknown := tc.do(t, http.MethodPost, "/login", map[string]string{
		"nickname": "nobody",
		"password": "builder42",
	}, "")
	respWrongPw := tc.do(t, http.MethodPost, "/login", map[string]string{
		"nickname": "bob",
		"password": "wrong",
	}, "")

	if respUnknown.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown nickname status %d", respUnknown.StatusCode)
	}
	if respWrongPw.StatusCode != http.StatusBadRequest {
		t.Fatalf("wrong password status %d", respWrongPw.StatusCode)
	}
	bodyUnknown := readBody(t, respUnknown)
	bodyWrongPw := readBody(t, respWrongPw)
	if bodyUnknown != bodyWrongPw {
		t.Fatalf("login failure bodies differ: %q vs %q", bodyUnknown, bodyWrongPw)
	}
}

func TestConfirmMismatchCreatesNoAccount(t *testing.T) {
	tc := newIntegrationClient(t)

	resp := tc.do(t, http.MethodPost, "/signup", map[string]string{
		"nickname":        "carol",
		"password":        "singer99",
		"confirmPassword": "dancer99",
	}, "")
	if resp.StatusCode != http.StatusPreconditionFailed {
		t.Fatalf("signup status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodPost, "/login", map[string]string{
		"nickname": "carol",
		"password": "singer99",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected login rejection, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()
}

func TestPostCRUDFlow(t *testing.T) {
	tc := newIntegrationClient(t)
	token := createTestAccount(t, tc, "poster")

	resp := tc.do(t, http.MethodPost, "/posts", map[string]string{
		"title":   "Hello Board",
		"content": "First post body",
	}, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var post model.Post
	decodeJSON(t, resp, &post)
	if post.ID == 0 {
		t.Fatalf("expected post id")
	}
	if post.Nickname != "poster" {
		t.Fatalf("expected nickname set, got %q", post.Nickname)
	}

	postPath := "/posts/" + strconv.FormatInt(post.ID, 10)

	resp = tc.do(t, http.MethodGet, postPath, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get post status %d", resp.StatusCode)
	}
	var getResp struct {
		Post model.Post `json:"post"`
	}
	decodeJSON(t, resp, &getResp)
	if getResp.Post.Content != "First post body" {
		t.Fatalf("expected content in detail view, got %q", getResp.Post.Content)
	}

	// List view drops the content field.
	resp = tc.do(t, http.MethodGet, "/posts", nil, "")
	var listResp struct {
		Posts []model.Post `json:"posts"`
	}
	decodeJSON(t, resp, &listResp)
	if len(listResp.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(listResp.Posts))
	}
	if listResp.Posts[0].Content != "" {
		t.Fatalf("expected content omitted in list, got %q", listResp.Posts[0].Content)
	}

	resp = tc.do(t, http.MethodPatch, postPath, map[string]string{"title": "Edited Title"}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit post status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	// Omitted fields keep their value.
	resp = tc.do(t, http.MethodGet, postPath, nil, "")
	decodeJSON(t, resp, &getResp)
	if getResp.Post.Title != "Edited Title" {
		t.Fatalf("edit not applied: %q", getResp.Post.Title)
	}
	if getResp.Post.Content != "First post body" {
		t.Fatalf("expected content untouched, got %q", getResp.Post.Content)
	}

	resp = tc.do(t, http.MethodDelete, postPath, nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete post status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodGet, postPath, nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOwnershipEnforced(t *testing.T) {
	tc := newIntegrationClient(t)
	ownerToken := createTestAccount(t, tc, "owner")
	otherToken := createTestAccount(t, tc, "intruder")

	resp := tc.do(t, http.MethodPost, "/posts", map[string]string{
		"title":   "Owned Post",
		"content": "body",
	}, ownerToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var post model.Post
	decodeJSON(t, resp, &post)
	postPath := "/posts/" + strconv.FormatInt(post.ID, 10)

	resp = tc.do(t, http.MethodPatch, postPath, map[string]string{"title": "Hijacked"}, otherToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign edit, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodDelete, postPath, nil, otherToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign delete, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	// The rejected edit must not stick.
	resp = tc.do(t, http.MethodGet, postPath, nil, "")
	var getResp struct {
		Post model.Post `json:"post"`
	}
	decodeJSON(t, resp, &getResp)
	if getResp.Post.Title != "Owned Post" {
		t.Fatalf("foreign edit leaked through: %q", getResp.Post.Title)
	}

	// Same rule for comments.
	resp = tc.do(t, http.MethodPost, postPath+"/comments", map[string]string{"content": "mine"}, ownerToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create comment status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var comment model.Comment
	decodeJSON(t, resp, &comment)
	commentPath := postPath + "/comments/" + strconv.FormatInt(comment.ID, 10)

	resp = tc.do(t, http.MethodPatch, commentPath, map[string]string{"content": "hijacked"}, otherToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign comment edit, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodDelete, commentPath, nil, otherToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign comment delete, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()
}

func TestCommentFlow(t *testing.T) {
	tc := newIntegrationClient(t)
	token := createTestAccount(t, tc, "commenter")

	resp := tc.do(t, http.MethodPost, "/posts", map[string]string{
		"title":   "Discussion",
		"content": "body",
	}, token)
	var post model.Post
	decodeJSON(t, resp, &post)
	postPath := "/posts/" + strconv.FormatInt(post.ID, 10)

	// Empty content is rejected up front.
	resp = tc.do(t, http.MethodPost, postPath+"/comments", map[string]string{"content": "   "}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank comment, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodPost, postPath+"/comments", map[string]string{"content": "First!"}, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create comment status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var comment model.Comment
	decodeJSON(t, resp, &comment)
	if comment.ID == 0 || comment.PostID != post.ID {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	resp = tc.do(t, http.MethodGet, postPath+"/comments", nil, "")
	var listResp struct {
		Comments []model.Comment `json:"comments"`
	}
	decodeJSON(t, resp, &listResp)
	if len(listResp.Comments) != 1 || listResp.Comments[0].Content != "First!" {
		t.Fatalf("unexpected comments: %+v", listResp.Comments)
	}

	commentPath := postPath + "/comments/" + strconv.FormatInt(comment.ID, 10)
	resp = tc.do(t, http.MethodPatch, commentPath, map[string]string{"content": "Edited!"}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit comment status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodDelete, commentPath, nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete comment status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodGet, postPath+"/comments", nil, "")
	decodeJSON(t, resp, &listResp)
	if len(listResp.Comments) != 0 {
		t.Fatalf("expected no comments after delete, got %d", len(listResp.Comments))
	}
}

func TestOrphanedCommentLocked(t *testing.T) {
	tc := newIntegrationClient(t)
	token := createTestAccount(t, tc, "orphaner")

	resp := tc.do(t, http.MethodPost, "/posts", map[string]string{
		"title":   "Doomed Post",
		"content": "body",
	}, token)
	var post model.Post
	decodeJSON(t, resp, &post)
	postPath := "/posts/" + strconv.FormatInt(post.ID, 10)

	resp = tc.do(t, http.MethodPost, postPath+"/comments", map[string]string{"content": "survivor"}, token)
	var comment model.Comment
	decodeJSON(t, resp, &comment)

	resp = tc.do(t, http.MethodDelete, postPath, nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete post status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	// The comment row is still there, but with the parent gone it can no
	// longer be edited or deleted, even by its owner.
	commentPath := postPath + "/comments/" + strconv.FormatInt(comment.ID, 10)
	resp = tc.do(t, http.MethodPatch, commentPath, map[string]string{"content": "rewrite"}, token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 editing orphaned comment, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = tc.do(t, http.MethodDelete, commentPath, nil, token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 deleting orphaned comment, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()
}

func TestCommentPostMismatch(t *testing.T) {
	tc := newIntegrationClient(t)
	token := createTestAccount(t, tc, "mismatch")

	resp := tc.do(t, http.MethodPost, "/posts", map[string]string{"title": "A", "content": "a"}, token)
	var postA model.Post
	decodeJSON(t, resp, &postA)

	resp = tc.do(t, http.MethodPost, "/posts", map[string]string{"title": "B", "content": "b"}, token)
	var postB model.Post
	decodeJSON(t, resp, &postB)

	resp = tc.do(t, http.MethodPost, "/posts/"+strconv.FormatInt(postA.ID, 10)+"/comments",
		map[string]string{"content": "on A"}, token)
	var comment model.Comment
	decodeJSON(t, resp, &comment)

	// Addressing the comment under the wrong post is a 404, not a cross edit.
	wrongPath := "/posts/" + strconv.FormatInt(postB.ID, 10) + "/comments/" + strconv.FormatInt(comment.ID, 10)
	resp = tc.do(t, http.MethodPatch, wrongPath, map[string]string{"content": "sneaky"}, token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for mismatched post id, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()
}

func TestStatsEndpoint(t *testing.T) {
	tc := newIntegrationClient(t)

	resp := tc.do(t, http.MethodGet, "/stats", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status %d", resp.StatusCode)
	}
	var stats model.SiteStats
	decodeJSON(t, resp, &stats)
	if stats.Users != 0 || stats.Posts != 0 || stats.Comments != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}

	token := createTestAccount(t, tc, "statsman")
	resp = tc.do(t, http.MethodPost, "/posts", map[string]string{"title": "S", "content": "s"}, token)
	var post model.Post
	decodeJSON(t, resp, &post)
	resp = tc.do(t, http.MethodPost, "/posts/"+strconv.FormatInt(post.ID, 10)+"/comments",
		map[string]string{"content": "c"}, token)
	resp.Body.Close()

	resp = tc.do(t, http.MethodGet, "/stats", nil, "")
	decodeJSON(t, resp, &stats)
	if stats.Users != 1 || stats.Posts != 1 || stats.Comments != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	tc := newIntegrationClient(t)

	resp := tc.do(t, http.MethodPost, "/logout", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatalf("expected %s cookie on logout", auth.CookieName)
	}
	if cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cleared)
	}
}
