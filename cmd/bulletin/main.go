package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openbbs/bulletin/internal/auth"
	"github.com/openbbs/bulletin/internal/client"
	"github.com/openbbs/bulletin/internal/config"
	httpapp "github.com/openbbs/bulletin/internal/http"
	"github.com/openbbs/bulletin/internal/store/sqlite"
)

// CLIConfig holds the CLI client configuration persisted to disk.
type CLIConfig struct {
	BaseURL  string `json:"base_url"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println("bulletin v0.1.0")
		return
	}

	if strings.HasPrefix(cmd, "-") {
		runServer()
		return
	}

	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "signup", "register":
		cmdSignup(args)
	case "login", "auth":
		cmdLogin(args)
	case "post", "submit":
		cmdPost(args)
	case "comment":
		cmdComment(args)
	case "read", "list":
		cmdRead(args)
	case "delete", "rm":
		cmdDelete(args)
	case "status", "whoami":
		cmdStatus(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bulletin - A small bulletin-board backend

Usage: bulletin <command> [options]

Quick Start:
  bulletin signup --nickname alice --password pw1234
  bulletin login --nickname alice --password pw1234
  bulletin post --title "Hello" --content "First post"

Server:
  server              Run the HTTP server (default with no command)

Client Commands:
  signup              Create an account
  login               Log in and store the session token
  post                Create a post
  comment             Comment on a post
  read                Read posts (or a post's comments with --post)
  delete              Delete your own post
  status              Show current config and session state

Other:
  version             Print version
  help                Show this help

Server environment:
  BULLETIN_ADDR         Listen address (default :3000, or PORT)
  BULLETIN_DB           SQLite path (default bulletin.db)
  BULLETIN_JWT_SECRET   Session token signing secret
  BULLETIN_TOKEN_TTL    Session token lifetime (default 24h, 0 disables expiry)`)
}

func runServer() {
	// .env is optional; env vars win.
	_ = godotenv.Load()
	cfg := config.Load()

	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open db")
	}
	defer st.Close()

	authSvc := auth.NewService(st, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	server := httpapp.NewServer(st, authSvc, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("bulletin listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// ============================================================================
// CLIENT COMMANDS
// ============================================================================

func cmdSignup(args []string) {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:3000", "Server URL")
	nickname := fs.String("nickname", "", "Account nickname (alphanumeric, min 3 chars)")
	password := fs.String("password", "", "Account password (min 4 chars)")
	_ = fs.Parse(args)

	if *nickname == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "signup requires --nickname and --password")
		os.Exit(1)
	}

	c := client.New(*baseURL)
	if err := c.Signup(*nickname, *password); err != nil {
		fmt.Fprintf(os.Stderr, "signup failed: %v\n", err)
		os.Exit(1)
	}

	cfg := CLIConfig{BaseURL: *baseURL, Nickname: *nickname}
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}
	fmt.Printf("Account %q created. Now run: bulletin login --nickname %s --password ...\n", *nickname, *nickname)
}

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:3000", "Server URL")
	nickname := fs.String("nickname", "", "Account nickname")
	password := fs.String("password", "", "Account password")
	_ = fs.Parse(args)

	cfg, _ := loadCLIConfig()
	if *nickname == "" {
		*nickname = cfg.Nickname
	}
	if *nickname == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "login requires --nickname and --password")
		os.Exit(1)
	}

	c := client.New(*baseURL)
	if err := c.Login(*nickname, *password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	cfg.BaseURL = *baseURL
	cfg.Nickname = *nickname
	cfg.Token = c.Token
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}
	fmt.Printf("Logged in as %q.\n", *nickname)
}

func cmdPost(args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	title := fs.String("title", "", "Post title")
	content := fs.String("content", "", "Post content")
	_ = fs.Parse(args)

	if *title == "" || *content == "" {
		fmt.Fprintln(os.Stderr, "post requires --title and --content")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	post, err := c.CreatePost(*title, *content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Posted #%d: %s\n", post.ID, post.Title)
}

func cmdComment(args []string) {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	postID := fs.Int64("post", 0, "Post ID to comment on")
	content := fs.String("content", "", "Comment content")
	_ = fs.Parse(args)

	if *postID == 0 || *content == "" {
		fmt.Fprintln(os.Stderr, "comment requires --post and --content")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	comment, err := c.CreateComment(*postID, *content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "comment failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Comment #%d added to post #%d.\n", comment.ID, comment.PostID)
}

func cmdRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	baseURL := fs.String("url", "", "Server URL (defaults to saved config)")
	postID := fs.Int64("post", 0, "Read a post (with comments) instead of the list")
	limit := fs.Int("limit", 20, "Max posts to list")
	_ = fs.Parse(args)

	cfg, _ := loadCLIConfig()
	if *baseURL == "" {
		*baseURL = cfg.BaseURL
	}
	if *baseURL == "" {
		*baseURL = "http://localhost:3000"
	}
	c := client.New(*baseURL)

	if *postID != 0 {
		post, err := c.GetPost(*postID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("#%d %s (by %s)\n\n%s\n", post.ID, post.Title, post.Nickname, post.Content)
		comments, err := c.GetComments(*postID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read comments failed: %v\n", err)
			os.Exit(1)
		}
		if len(comments) > 0 {
			fmt.Println("\nComments:")
			for _, comment := range comments {
				fmt.Printf("  [%d] %s: %s\n", comment.ID, comment.Nickname, comment.Content)
			}
		}
		return
	}

	posts, err := c.GetPosts(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}
	for _, post := range posts {
		fmt.Printf("#%d %s (by %s)\n", post.ID, post.Title, post.Nickname)
	}
}

func cmdDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	postID := fs.Int64("post", 0, "Post ID to delete")
	_ = fs.Parse(args)

	if *postID == 0 {
		fmt.Fprintln(os.Stderr, "delete requires --post")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := c.DeletePost(*postID); err != nil {
		fmt.Fprintf(os.Stderr, "delete failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Post #%d deleted.\n", *postID)
}

func cmdStatus(args []string) {
	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Println("Not configured. Run: bulletin signup --nickname ... --password ...")
		return
	}
	fmt.Printf("Server:   %s\n", cfg.BaseURL)
	fmt.Printf("Nickname: %s\n", cfg.Nickname)
	if cfg.Token == "" {
		fmt.Println("Session:  not logged in")
		return
	}

	c := client.New(cfg.BaseURL)
	c.Token = cfg.Token
	nickname, err := c.Me()
	if err != nil {
		fmt.Println("Session:  expired or invalid (run: bulletin login)")
		return
	}
	fmt.Printf("Session:  valid (%s)\n", nickname)
}

// ============================================================================
// CLI CONFIG
// ============================================================================

func bulletinDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bulletin")
}

func cliConfigPath() string {
	return filepath.Join(bulletinDir(), "config.json")
}

func loadCLIConfig() (CLIConfig, error) {
	var cfg CLIConfig
	data, err := os.ReadFile(cliConfigPath())
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func saveCLIConfig(cfg CLIConfig) error {
	if err := os.MkdirAll(bulletinDir(), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cliConfigPath(), data, 0o600)
}

func loadAuthenticatedClient() (*client.Client, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, fmt.Errorf("not configured, run: bulletin login --nickname ... --password ...")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("not logged in, run: bulletin login --nickname ... --password ...")
	}
	c := client.New(cfg.BaseURL)
	c.Token = cfg.Token
	return c, nil
}
