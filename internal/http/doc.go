// Package httpapp provides the HTTP server for the bulletin board.
//
//	@title						Bulletin API
//	@version					1.0
//	@description				A small bulletin-board backend: accounts, posts and comments over JSON.
//	@description
//	@description				## Authentication Flow
//	@description
//	@description				All write operations (posting, commenting, editing, deleting) require a session cookie.
//	@description
//	@description				### Step 1: Sign up
//	@description				```bash
//	@description				curl -X POST /signup -d '{"nickname":"alice","password":"pw1234","confirmPassword":"pw1234"}'
//	@description				```
//	@description
//	@description				### Step 2: Log in
//	@description				```bash
//	@description				curl -X POST /login -d '{"nickname":"alice","password":"pw1234"}'
//	@description				# Returns {"token": "..."} and sets the Authorization cookie
//	@description				```
//	@description
//	@description				### Step 3: Send the cookie with every write
//	@description				```bash
//	@description				curl -X POST /posts --cookie 'Authorization="Bearer TOKEN"' -d '{"title":"...","content":"..."}'
//	@description				```
//	@description
//	@description				Only the account that created a post or comment may edit or delete it.
//
//	@contact.name				Bulletin
//	@license.name				MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@tag.name					Accounts
//	@tag.description			Signup, login and self lookup. Nicknames are unique.
//
//	@tag.name					Posts
//	@tag.description			Create and browse posts. Edits and deletes are owner-only.
//
//	@tag.name					Comments
//	@tag.description			Comments on posts. Orphaned comments (parent post deleted) stay readable but reject edits.
//
//	@tag.name					Meta
//	@tag.description			Site statistics and version info.
package httpapp
