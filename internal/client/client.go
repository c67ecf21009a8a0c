// Package client provides a Go client for the Bulletin API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a Bulletin API client. The session token obtained at login is
// replayed on every request through the Authorization cookie.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// New creates a new Bulletin client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Errors
var (
	ErrNicknameTaken = errors.New("nickname already in use")
)

// Signup registers a new account.
func (c *Client) Signup(nickname, password string) error {
	reqBody := map[string]string{
		"nickname":        nickname,
		"password":        password,
		"confirmPassword": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := c.HTTPClient.Post(c.BaseURL+"/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return nil
	}
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusPreconditionFailed && bytes.Contains(respBody, []byte("already in use")) {
		return ErrNicknameTaken
	}
	return fmt.Errorf("signup failed (%d): %s", resp.StatusCode, string(respBody))
}

// Login exchanges credentials for a session token.
func (c *Client) Login(nickname, password string) error {
	reqBody := map[string]string{"nickname": nickname, "password": password}
	body, _ := json.Marshal(reqBody)

	resp, err := c.HTTPClient.Post(c.BaseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	c.Token = result.Token
	return nil
}

// IsAuthenticated returns true if the client holds a session token.
func (c *Client) IsAuthenticated() bool {
	return c.Token != ""
}

// doRequest performs an HTTP request, attaching the session cookie when present.
func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.AddCookie(&http.Cookie{Name: "Authorization", Value: "Bearer " + c.Token})
	}
	return c.HTTPClient.Do(req)
}

// Post represents a post from the API.
type Post struct {
	ID        int64  `json:"postId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UserID    int64  `json:"userId"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"createdAt"`
}

// Comment represents a comment from the API.
type Comment struct {
	ID        int64  `json:"commentId"`
	PostID    int64  `json:"postId"`
	Content   string `json:"content"`
	UserID    int64  `json:"userId"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"createdAt"`
}

// Me fetches the authenticated account's nickname.
func (c *Client) Me() (string, error) {
	resp, err := c.doRequest(http.MethodGet, "/signup/me", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("me failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		User struct {
			Nickname string `json:"nickname"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.User.Nickname, nil
}

// CreatePost creates a new post.
func (c *Client) CreatePost(title, content string) (*Post, error) {
	reqBody := map[string]string{"title": title, "content": content}

	resp, err := c.doRequest(http.MethodPost, "/posts", reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create post failed (%d): %s", resp.StatusCode, string(body))
	}

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts fetches posts, newest first.
func (c *Client) GetPosts(limit int) ([]Post, error) {
	path := fmt.Sprintf("/posts?limit=%d", limit)
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get posts failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Posts []Post `json:"posts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// GetPost fetches a single post including its content.
func (c *Client) GetPost(id int64) (*Post, error) {
	path := fmt.Sprintf("/posts/%d", id)
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get post failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Post Post `json:"post"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// EditPost edits a post you own.
func (c *Client) EditPost(id int64, title, content string) error {
	reqBody := map[string]string{"title": title, "content": content}
	resp, err := c.doRequest(http.MethodPut, fmt.Sprintf("/posts/%d", id), reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("edit post failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// DeletePost deletes a post you own.
func (c *Client) DeletePost(id int64) error {
	resp, err := c.doRequest(http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete post failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(postID int64, content string) (*Comment, error) {
	reqBody := map[string]string{"content": content}
	resp, err := c.doRequest(http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create comment failed (%d): %s", resp.StatusCode, string(body))
	}

	var comment Comment
	if err := json.NewDecoder(resp.Body).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments fetches a post's comments.
func (c *Client) GetComments(postID int64) ([]Comment, error) {
	resp, err := c.doRequest(http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get comments failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Comments []Comment `json:"comments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Comments, nil
}

// EditComment edits a comment you own.
func (c *Client) EditComment(postID, commentID int64, content string) error {
	reqBody := map[string]string{"content": content}
	resp, err := c.doRequest(http.MethodPut, fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("edit comment failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// DeleteComment deletes a comment you own.
func (c *Client) DeleteComment(postID, commentID int64) error {
	resp, err := c.doRequest(http.MethodDelete, fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete comment failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// TestHelper provides utilities for creating authenticated clients in tests.
type TestHelper struct {
	BaseURL string
}

// NewTestHelper creates a new test helper for the given base URL.
func NewTestHelper(baseURL string) *TestHelper {
	return &TestHelper{BaseURL: baseURL}
}

// testPassword satisfies the signup rules and is deliberately not derived
// from the nickname.
const testPassword = "secret1"

// CreateAuthenticatedClient signs up an account with the given nickname (if
// needed) and returns a logged-in client. This is a convenience method for tests.
func (h *TestHelper) CreateAuthenticatedClient(nickname string) (*Client, error) {
	c := New(h.BaseURL)
	if err := c.Signup(nickname, testPassword); err != nil && !errors.Is(err, ErrNicknameTaken) {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if err := c.Login(nickname, testPassword); err != nil {
		return nil, err
	}
	return c, nil
}

// GetToken creates an account (if needed) and returns a session token.
func (h *TestHelper) GetToken(nickname string) (string, error) {
	c, err := h.CreateAuthenticatedClient(nickname)
	if err != nil {
		return "", err
	}
	return c.Token, nil
}
