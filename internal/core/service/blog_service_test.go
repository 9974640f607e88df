package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/q815101630/flaska/internal/core/domain"
)

func TestBlogCreateRendersSanitizedHTML(t *testing.T) {
	store := newMemStore()
	users := seedUsers(t, store, "alice")
	svc := NewBlogService(blogRepo{store}, store, 10, zerolog.Nop())

	blog, err := svc.Create(context.Background(), users[0], "hello *world* <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(blog.BodyHTML, "<em>world</em>") {
		t.Fatalf("emphasis missing from html: %q", blog.BodyHTML)
	}
	if strings.Contains(blog.BodyHTML, "<script") {
		t.Fatalf("script survived sanitization: %q", blog.BodyHTML)
	}
	if blog.AuthorName != "alice" {
		t.Fatalf("author name not set: %+v", blog)
	}
}

func TestBlogUpdateReRendersAndAuthorizes(t *testing.T) {
	store := newMemStore()
	users := seedUsers(t, store, "alice", "bob")
	svc := NewBlogService(blogRepo{store}, store, 10, zerolog.Nop())
	ctx := context.Background()

	blog, err := svc.Create(ctx, users[0], "first")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A stranger without the administer bit cannot edit.
	if _, err := svc.Update(ctx, users[1], blog.ID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, users[0], blog.ID, "# second")
	if err != nil {
		t.Fatalf("update by author: %v", err)
	}
	if updated.Body != "# second" || !strings.Contains(updated.BodyHTML, "<h1>second</h1>") {
		t.Fatalf("body_html not re-rendered: %+v", updated)
	}

	// An administrator may edit anyone's blog.
	admin := users[1]
	admin.Role = domain.Role{Permissions: 143}
	if _, err := svc.Update(ctx, admin, blog.ID, "admin edit"); err != nil {
		t.Fatalf("update by admin: %v", err)
	}

	if _, err := svc.Update(ctx, users[0], 9999, "x"); !errors.Is(err, domain.ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogListNewestFirst(t *testing.T) {
	store := newMemStore()
	users := seedUsers(t, store, "alice")
	svc := NewBlogService(blogRepo{store}, store, 2, zerolog.Nop())
	ctx := context.Background()

	for _, body := range []string{"one", "two", "three"} {
		if _, err := svc.Create(ctx, users[0], body); err != nil {
			t.Fatalf("create %s: %v", body, err)
		}
	}

	page1, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page1.Total != 3 || page1.TotalPages != 2 || len(page1.Items) != 2 {
		t.Fatalf("unexpected page %+v", page1)
	}
	if page1.Items[0].Body != "three" {
		t.Fatalf("expected newest first, got %q", page1.Items[0].Body)
	}

	page99, err := svc.List(ctx, 99)
	if err != nil {
		t.Fatalf("list page 99: %v", err)
	}
	if len(page99.Items) != 0 {
		t.Fatalf("out-of-range page should be empty, got %d items", len(page99.Items))
	}
}

func TestBlogFeedFollowedAuthorsOnly(t *testing.T) {
	store := newMemStore()
	users := seedUsers(t, store, "alice", "bob", "carol")
	blogs := NewBlogService(blogRepo{store}, store, 10, zerolog.Nop())
	follows := NewFollowService(followRepo{store}, store, 10, zerolog.Nop())
	ctx := context.Background()

	if _, err := blogs.Create(ctx, users[1], "bob post"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := blogs.Create(ctx, users[2], "carol post"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := blogs.Create(ctx, users[0], "alice own post"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := follows.Follow(ctx, users[0], "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	feed, err := blogs.Feed(ctx, users[0], 1)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 1 || len(feed.Items) != 1 {
		t.Fatalf("expected only bob's post, got %+v", feed)
	}
	if feed.Items[0].Body != "bob post" {
		t.Fatalf("unexpected feed item %q", feed.Items[0].Body)
	}
}

func TestBlogByAuthor(t *testing.T) {
	store := newMemStore()
	users := seedUsers(t, store, "alice", "bob")
	svc := NewBlogService(blogRepo{store}, store, 10, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, users[0], "mine"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, users[1], "theirs"); err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := svc.ByAuthor(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("by author: %v", err)
	}
	if page.Total != 1 || page.Items[0].Body != "mine" {
		t.Fatalf("unexpected listing %+v", page)
	}

	if _, err := svc.ByAuthor(ctx, "ghost", 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
