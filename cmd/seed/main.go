package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/openbbs/bulletin/internal/client"
)

var members = []struct {
	nickname string
	password string
}{
	{"alice", "wonderland1"},
	{"bob", "builder42"},
	{"carol", "singer99"},
	{"dave", "diver2024"},
	{"erin", "gardener7"},
}

var posts = []struct {
	title   string
	content string
}{
	{"Welcome to the board", "Introduce yourself in the comments. Be nice."},
	{"Looking for Go study group members", "We meet twice a week online. Beginners welcome, reply below if interested."},
	{"Best coffee near the station?", "New to the neighborhood. Any recommendations for a quiet place to work?"},
	{"Selling a barely used mechanical keyboard", "87 keys, brown switches, bought last month. Message me for details."},
	{"Weekend hiking plan", "Thinking of the ridge trail this Saturday, leaving early. Anyone in?"},
	{"Book recommendation thread", "Post one book you read this year and one sentence on why it stuck with you."},
	{"Lost keys near the park entrance", "Found a set of keys with a red keychain on Sunday. Describe them and they are yours."},
	{"Server maintenance notice", "Short downtime planned this Friday night. Back before morning."},
}

var comments = []string{
	"Thanks for posting this!",
	"Count me in.",
	"Could you share more details?",
	"I had the same question last week.",
	"Not sure I agree, but interesting point.",
	"Sent you a message.",
	"This was really helpful.",
	"Bumping this so more people see it.",
	"Same here.",
	"Great idea, looking forward to it.",
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "Bulletin server URL")
	flag.Parse()

	log.Printf("Seeding board at %s...\n", *baseURL)

	// Sign up and log in all members
	var clients []*client.Client
	for _, m := range members {
		c := client.New(*baseURL)
		if err := c.Signup(m.nickname, m.password); err != nil && !errors.Is(err, client.ErrNicknameTaken) {
			log.Fatalf("signup %s: %v", m.nickname, err)
		}
		if err := c.Login(m.nickname, m.password); err != nil {
			log.Fatalf("login %s: %v", m.nickname, err)
		}
		log.Printf("✓ Logged in: %s", m.nickname)
		clients = append(clients, c)
	}

	// Create posts from random members
	var postIDs []int64
	for _, p := range posts {
		idx := rand.Intn(len(clients))
		c := clients[idx]

		post, err := c.CreatePost(p.title, p.content)
		if err != nil {
			log.Printf("✗ Failed to create post: %v", err)
			continue
		}
		postIDs = append(postIDs, post.ID)
		log.Printf("✓ Post #%d: %s (by %s)", post.ID, p.title, members[idx].nickname)

		// Small delay to spread out created_at times
		time.Sleep(50 * time.Millisecond)
	}

	// Add comments from random members
	total := 0
	for _, postID := range postIDs {
		// 1-4 comments per post
		n := rand.Intn(4) + 1
		for i := 0; i < n; i++ {
			idx := rand.Intn(len(clients))
			c := clients[idx]
			text := comments[rand.Intn(len(comments))]

			comment, err := c.CreateComment(postID, text)
			if err != nil {
				log.Printf("✗ Failed to comment: %v", err)
				continue
			}
			total++
			log.Printf("✓ Comment #%d on post #%d (by %s)", comment.ID, postID, members[idx].nickname)
		}
	}

	// Print summary
	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Members:  %d\n", len(members))
	fmt.Printf("Posts:    %d\n", len(postIDs))
	fmt.Printf("Comments: %d\n", total)
	fmt.Println("\nAPI at:", *baseURL)
}
