package httpapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/openbbs/bulletin/internal/auth"
	"github.com/openbbs/bulletin/internal/config"
	"github.com/openbbs/bulletin/internal/model"
	"github.com/openbbs/bulletin/internal/store"

	_ "github.com/openbbs/bulletin/docs" // swagger docs
)

const requestIDHeader = "X-Request-ID"

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,}$`)

type Server struct {
	store store.Store
	auth  *auth.Service
	cfg   config.Config
}

func NewServer(store store.Store, authSvc *auth.Service, cfg config.Config) *Server {
	return &Server{store: store, auth: authSvc, cfg: cfg}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := r.Header.Get(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, reqID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.route(rec, r)

	log.Info().
		Str("request_id", reqID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("request")
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}

	segments := splitPath(r.URL.Path)

	switch {
	case len(segments) == 0:
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, map[string]any{"name": "bulletin", "status": "ok"})
			return
		}
	case len(segments) == 1 && segments[0] == "login":
		if r.Method == http.MethodPost {
			s.handleLogin(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "logout":
		if r.Method == http.MethodPost {
			s.handleLogout(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "signup":
		if r.Method == http.MethodPost {
			s.handleSignup(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "signup" && segments[1] == "me":
		if r.Method == http.MethodGet {
			s.handleMe(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "posts":
		if r.Method == http.MethodGet {
			s.handleListPosts(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreatePost(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "posts":
		if r.Method == http.MethodGet {
			s.handleGetPost(w, r, segments[1])
			return
		}
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			s.handleEditPost(w, r, segments[1])
			return
		}
		if r.Method == http.MethodDelete {
			s.handleDeletePost(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "posts" && segments[2] == "comments":
		if r.Method == http.MethodGet {
			s.handleListComments(w, r, segments[1])
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreateComment(w, r, segments[1])
			return
		}
	case len(segments) == 4 && segments[0] == "posts" && segments[2] == "comments":
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			s.handleEditComment(w, r, segments[1], segments[3])
			return
		}
		if r.Method == http.MethodDelete {
			s.handleDeleteComment(w, r, segments[1], segments[3])
			return
		}
	case len(segments) == 1 && segments[0] == "stats":
		if r.Method == http.MethodGet {
			s.handleGetStats(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "version":
		if r.Method == http.MethodGet {
			s.handleVersion(w, r)
			return
		}
	}

	notFound(w)
}

// handleSignup godoc
//
//	@Summary		Create an account
//	@Description	Register a new account with a unique nickname.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			account	body		object{nickname=string,password=string,confirmPassword=string}	true	"Signup data"
//	@Success		201		{object}	map[string]string	"Created"
//	@Failure		412		{object}	map[string]string	"Validation failure or nickname taken"
//	@Router			/signup [post]
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname        string `json:"nickname"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := validateSignup(req.Nickname, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, http.StatusPreconditionFailed, err)
		return
	}

	if _, err := s.auth.Signup(r.Context(), req.Nickname, req.Password); err != nil {
		if errors.Is(err, store.ErrDuplicateNickname) {
			writeError(w, http.StatusPreconditionFailed, errors.New("nickname already in use"))
			return
		}
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{})
}

func validateSignup(nickname, password, confirmPassword string) error {
	if !nicknamePattern.MatchString(nickname) {
		return errors.New("nickname must be at least 3 alphanumeric characters")
	}
	if len(password) < 4 {
		return errors.New("password must be at least 4 characters")
	}
	if strings.Contains(password, nickname) {
		return errors.New("password must not contain the nickname")
	}
	if password != confirmPassword {
		return errors.New("password and confirmation do not match")
	}
	return nil
}

// handleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchange nickname and password for a session token. The token is also set as the Authorization cookie.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		object{nickname=string,password=string}	true	"Login data"
//	@Success		200			{object}	map[string]string	"Session token"
//	@Failure		400			{object}	map[string]string	"Invalid credentials"
//	@Router			/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.Authenticate(r.Context(), req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.internalError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    auth.CookieValue(token),
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleMe godoc
//
//	@Summary		Get own profile
//	@Description	Return the authenticated caller's account. Requires the session cookie.
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}	"Current user"
//	@Failure		400	{object}	map[string]string		"Login required"
//	@Router			/signup/me [get]
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{"nickname": identity.Nickname},
	})
}

// handleListPosts godoc
//
//	@Summary		List posts
//	@Description	List posts, newest first. Post content is omitted from list views.
//	@Tags			Posts
//	@Produce		json
//	@Param			limit	query		int	false	"Max posts to return"	default(50)
//	@Success		200		{object}	map[string]interface{}	"Posts"
//	@Router			/posts [get]
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	posts, err := s.store.ListPosts(r.Context(), store.PostListOpts{Limit: limit})
	if err != nil {
		s.internalError(w, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// handleCreatePost godoc
//
//	@Summary		Create a post
//	@Description	Create a new post. Requires the session cookie.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			post	body		object{title=string,content=string}	true	"Post data"
//	@Success		201		{object}	model.Post
//	@Failure		400		{object}	map[string]string	"Validation error or login required"
//	@Router			/posts [post]
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		writeError(w, http.StatusBadRequest, errors.New("title and content required"))
		return
	}

	now := time.Now()
	post := model.Post{
		Title:     title,
		Content:   content,
		UserID:    identity.UserID,
		Nickname:  identity.Nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.CreatePost(r.Context(), &post)
	if err != nil {
		s.internalError(w, err)
		return
	}
	post.ID = id
	writeJSON(w, http.StatusCreated, post)
}

// handleGetPost godoc
//
//	@Summary		Get a post
//	@Description	Get a single post by ID, including its content.
//	@Tags			Posts
//	@Produce		json
//	@Param			id	path		int	true	"Post ID"
//	@Success		200	{object}	map[string]interface{}	"Post"
//	@Failure		404	{object}	map[string]string		"Post not found"
//	@Router			/posts/{id} [get]
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}
	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return
		}
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

// handleEditPost godoc
//
//	@Summary		Edit a post
//	@Description	Edit your own post's title and content. Requires the session cookie.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Post ID"
//	@Param			post	body		object{title=string,content=string}	true	"Updated fields"
//	@Success		200		{object}	map[string]string	"Success message"
//	@Failure		400		{object}	map[string]string	"Validation error or login required"
//	@Failure		403		{object}	map[string]string	"Forbidden - not your post"
//	@Failure		404		{object}	map[string]string	"Post not found"
//	@Router			/posts/{id} [put]
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request, idStr string) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}

	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return
		}
		s.internalError(w, err)
		return
	}

	if post.UserID != identity.UserID {
		writeError(w, http.StatusForbidden, errors.New("you can only edit your own posts"))
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Missing fields keep their current value.
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = post.Title
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		content = post.Content
	}

	if err := s.store.UpdatePost(r.Context(), id, title, content); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post updated"})
}

// handleDeletePost godoc
//
//	@Summary		Delete a post
//	@Description	Delete your own post. Its comments remain but become orphaned. Requires the session cookie.
//	@Tags			Posts
//	@Produce		json
//	@Param			id	path		int	true	"Post ID"
//	@Success		200	{object}	map[string]string	"Success message"
//	@Failure		400	{object}	map[string]string	"Login required"
//	@Failure		403	{object}	map[string]string	"Forbidden - not your post"
//	@Failure		404	{object}	map[string]string	"Post not found"
//	@Router			/posts/{id} [delete]
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, idStr string) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}

	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return
		}
		s.internalError(w, err)
		return
	}

	if post.UserID != identity.UserID {
		writeError(w, http.StatusForbidden, errors.New("you can only delete your own posts"))
		return
	}

	if err := s.store.DeletePost(r.Context(), id); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// handleListComments godoc
//
//	@Summary		List comments
//	@Description	List a post's comments, newest first.
//	@Tags			Comments
//	@Produce		json
//	@Param			id	path		int	true	"Post ID"
//	@Success		200	{object}	map[string]interface{}	"Comments"
//	@Failure		404	{object}	map[string]string		"Post not found"
//	@Router			/posts/{id}/comments [get]
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, postIDStr string) {
	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}
	if _, err := s.store.GetPost(r.Context(), postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return
		}
		s.internalError(w, err)
		return
	}
	comments, err := s.store.ListCommentsByPost(r.Context(), postID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// handleCreateComment godoc
//
//	@Summary		Post a comment
//	@Description	Add a comment to a post. Requires the session cookie.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Post ID"
//	@Param			comment	body		object{content=string}	true	"Comment data"
//	@Success		201		{object}	model.Comment
//	@Failure		400		{object}	map[string]string	"Empty content or login required"
//	@Failure		404		{object}	map[string]string	"Post not found"
//	@Router			/posts/{id}/comments [post]
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, postIDStr string) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, errors.New("comment content required"))
		return
	}

	if _, err := s.store.GetPost(r.Context(), postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return
		}
		s.internalError(w, err)
		return
	}

	now := time.Now()
	comment := model.Comment{
		PostID:    postID,
		Content:   content,
		UserID:    identity.UserID,
		Nickname:  identity.Nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.CreateComment(r.Context(), &comment)
	if err != nil {
		s.internalError(w, err)
		return
	}
	comment.ID = id
	writeJSON(w, http.StatusCreated, comment)
}

// handleEditComment godoc
//
//	@Summary		Edit a comment
//	@Description	Edit your own comment. Rejected when the parent post no longer exists. Requires the session cookie.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int						true	"Post ID"
//	@Param			commentId	path		int						true	"Comment ID"
//	@Param			comment		body		object{content=string}	true	"Updated content"
//	@Success		200			{object}	map[string]string	"Success message"
//	@Failure		400			{object}	map[string]string	"Empty content or login required"
//	@Failure		403			{object}	map[string]string	"Forbidden - not your comment"
//	@Failure		404			{object}	map[string]string	"Comment or parent post not found"
//	@Router			/posts/{id}/comments/{commentId} [put]
func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request, postIDStr, commentIDStr string) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}

	comment, ok := s.loadOwnedComment(w, r, postIDStr, commentIDStr, identity, "edit")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, errors.New("comment content required"))
		return
	}

	if err := s.store.UpdateComment(r.Context(), comment.ID, content); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment updated"})
}

// handleDeleteComment godoc
//
//	@Summary		Delete a comment
//	@Description	Delete your own comment. Rejected when the parent post no longer exists. Requires the session cookie.
//	@Tags			Comments
//	@Produce		json
//	@Param			id			path		int	true	"Post ID"
//	@Param			commentId	path		int	true	"Comment ID"
//	@Success		200			{object}	map[string]string	"Success message"
//	@Failure		400			{object}	map[string]string	"Login required"
//	@Failure		403			{object}	map[string]string	"Forbidden - not your comment"
//	@Failure		404			{object}	map[string]string	"Comment or parent post not found"
//	@Router			/posts/{id}/comments/{commentId} [delete]
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, postIDStr, commentIDStr string) {
	identity, ok := s.requireAuth(w, r)
	if !ok {
		return
	}

	comment, ok := s.loadOwnedComment(w, r, postIDStr, commentIDStr, identity, "delete")
	if !ok {
		return
	}

	if err := s.store.DeleteComment(r.Context(), comment.ID); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// loadOwnedComment loads a comment, verifies its parent post still exists and
// that the caller owns it. Writes the error response itself on failure.
func (s *Server) loadOwnedComment(w http.ResponseWriter, r *http.Request, postIDStr, commentIDStr string, identity auth.Identity, action string) (model.Comment, bool) {
	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return model.Comment{}, false
	}
	commentID, err := strconv.ParseInt(commentIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid comment id"))
		return model.Comment{}, false
	}

	comment, err := s.store.GetComment(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("comment not found"))
			return model.Comment{}, false
		}
		s.internalError(w, err)
		return model.Comment{}, false
	}
	if comment.PostID != postID {
		writeError(w, http.StatusNotFound, errors.New("comment not found"))
		return model.Comment{}, false
	}

	// An orphaned comment (parent post removed) is no longer editable.
	if _, err := s.store.GetPost(r.Context(), comment.PostID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("post not found"))
			return model.Comment{}, false
		}
		s.internalError(w, err)
		return model.Comment{}, false
	}

	if comment.UserID != identity.UserID {
		writeError(w, http.StatusForbidden, errors.New("you can only "+action+" your own comments"))
		return model.Comment{}, false
	}

	return comment, true
}

// handleGetStats godoc
//
//	@Summary		Site statistics
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{object}	model.SiteStats
//	@Router			/stats [get]
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetSiteStats(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "bulletin",
		"version": "0.1.0",
	})
}

// requireAuth resolves the caller identity from the session cookie and gates
// the handler: on failure the response is written and the handler must not run.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, err := s.auth.Resolve(r.Context(), r)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			writeError(w, http.StatusBadRequest, auth.ErrUnauthenticated)
			return auth.Identity{}, false
		}
		s.internalError(w, err)
		return auth.Identity{}, false
	}
	return identity, true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("internal error")
	writeError(w, http.StatusInternalServerError, errors.New("internal error"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return def
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
