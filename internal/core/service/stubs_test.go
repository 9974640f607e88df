package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// memStore is an in-memory implementation of every repository port. Delete
// mimics the storage layer's cascade rules so graph and ownership properties
// can be asserted without a database.
type memStore struct {
	mu         sync.Mutex
	userSeq    int64
	roleSeq    int64
	blogSeq    int64
	commentSeq int64

	users    map[int64]*domain.User
	roles    map[int64]*domain.Role
	follows  map[[2]int64]time.Time
	blogs    map[int64]*domain.Blog
	comments map[int64]*domain.Comment
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*domain.User),
		roles:    make(map[int64]*domain.Role),
		follows:  make(map[[2]int64]time.Time),
		blogs:    make(map[int64]*domain.Blog),
		comments: make(map[int64]*domain.Comment),
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

// --- ports.UserRepository ---

func (m *memStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userSeq++
	c := cloneUser(user)
	c.ID = m.userSeq
	m.users[c.ID] = c
	return cloneUser(c), nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) FindByName(_ context.Context, name string) (*domain.User, error) {
	return m.findUser(func(u *domain.User) bool { return u.Name == name })
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.findUser(func(u *domain.User) bool { return u.Email == email })
}

func (m *memStore) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	return m.findUser(func(u *domain.User) bool { return u.Phone != "" && u.Phone == phone })
}

func (m *memStore) findUser(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *memStore) TouchLastSeen(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastSeen = time.Now().UTC()
		return nil
	}
	return domain.ErrUserNotFound
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	for key := range m.follows {
		if key[0] == id || key[1] == id {
			delete(m.follows, key)
		}
	}
	for blogID, b := range m.blogs {
		if b.AuthorID == id {
			delete(m.blogs, blogID)
			for commentID, c := range m.comments {
				if c.BlogID == blogID {
					delete(m.comments, commentID)
				}
			}
		}
	}
	for commentID, c := range m.comments {
		if c.AuthorID == id {
			delete(m.comments, commentID)
		}
	}
	return nil
}

// --- ports.RoleRepository ---

func (m *memStore) Upsert(_ context.Context, role *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == role.Name {
			r.Permissions = role.Permissions
			r.Default = role.Default
			role.ID = r.ID
			return nil
		}
	}
	m.roleSeq++
	c := *role
	c.ID = m.roleSeq
	m.roles[c.ID] = &c
	role.ID = c.ID
	return nil
}

func (m *memStore) FindByIDRole(id int64) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.roles[id]; ok {
		c := *r
		return &c, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (m *memStore) FindDefault(_ context.Context) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Default {
			c := *r
			return &c, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (m *memStore) List(_ context.Context) ([]domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Permissions < out[j].Permissions })
	return out, nil
}

// roleRepo adapts memStore to ports.RoleRepository; FindByID collides with
// the user repository method, so roles get a thin wrapper.
type roleRepo struct{ *memStore }

func (r roleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	return r.memStore.FindByIDRole(id)
}

// --- ports.FollowRepository ---

type followRepo struct{ *memStore }

func (f followRepo) Insert(_ context.Context, followerID, followedID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{followerID, followedID}
	if _, ok := f.follows[key]; !ok {
		f.follows[key] = time.Now().UTC()
	}
	return nil
}

func (f followRepo) Delete(_ context.Context, followerID, followedID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.follows, [2]int64{followerID, followedID})
	return nil
}

func (f followRepo) Exists(_ context.Context, followerID, followedID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.follows[[2]int64{followerID, followedID}]
	return ok, nil
}

func (f followRepo) Followers(_ context.Context, userID int64, limit, offset int) ([]ports.FollowEdge, error) {
	return f.edges(func(key [2]int64) (int64, bool) {
		if key[1] == userID {
			return key[0], true
		}
		return 0, false
	}, limit, offset)
}

func (f followRepo) CountFollowers(_ context.Context, userID int64) (int64, error) {
	return f.countEdges(func(key [2]int64) bool { return key[1] == userID })
}

func (f followRepo) Following(_ context.Context, userID int64, limit, offset int) ([]ports.FollowEdge, error) {
	return f.edges(func(key [2]int64) (int64, bool) {
		if key[0] == userID {
			return key[1], true
		}
		return 0, false
	}, limit, offset)
}

func (f followRepo) CountFollowing(_ context.Context, userID int64) (int64, error) {
	return f.countEdges(func(key [2]int64) bool { return key[0] == userID })
}

func (f followRepo) edges(pick func([2]int64) (int64, bool), limit, offset int) ([]ports.FollowEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ports.FollowEdge
	for key, ts := range f.follows {
		otherID, ok := pick(key)
		if !ok {
			continue
		}
		u := f.users[otherID]
		if u == nil {
			continue
		}
		out = append(out, ports.FollowEdge{User: *cloneUser(u), CreatedAt: ts})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].User.ID < out[j].User.ID
	})
	return slicePage(out, limit, offset), nil
}

func (f followRepo) countEdges(match func([2]int64) bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key := range f.follows {
		if match(key) {
			n++
		}
	}
	return n, nil
}

// --- ports.BlogRepository ---

type blogRepo struct{ *memStore }

func (b blogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blogSeq++
	c := *blog
	c.ID = b.blogSeq
	b.blogs[c.ID] = &c
	out := c
	return &out, nil
}

func (b blogRepo) FindByID(_ context.Context, id int64) (*domain.Blog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bl, ok := b.blogs[id]; ok {
		c := *bl
		return &c, nil
	}
	return nil, domain.ErrBlogNotFound
}

func (b blogRepo) Update(_ context.Context, blog *domain.Blog) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blogs[blog.ID]; !ok {
		return domain.ErrBlogNotFound
	}
	c := *blog
	b.blogs[blog.ID] = &c
	return nil
}

func (b blogRepo) List(_ context.Context, limit, offset int) ([]domain.Blog, error) {
	return b.selectBlogs(func(*domain.Blog) bool { return true }, limit, offset)
}

func (b blogRepo) Count(_ context.Context) (int64, error) {
	return b.countBlogs(func(*domain.Blog) bool { return true })
}

func (b blogRepo) ByAuthor(_ context.Context, authorID int64, limit, offset int) ([]domain.Blog, error) {
	return b.selectBlogs(func(bl *domain.Blog) bool { return bl.AuthorID == authorID }, limit, offset)
}

func (b blogRepo) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	return b.countBlogs(func(bl *domain.Blog) bool { return bl.AuthorID == authorID })
}

func (b blogRepo) Feed(_ context.Context, followerID int64, limit, offset int) ([]domain.Blog, error) {
	followed := b.followedSet(followerID)
	return b.selectBlogs(func(bl *domain.Blog) bool { return followed[bl.AuthorID] }, limit, offset)
}

func (b blogRepo) CountFeed(_ context.Context, followerID int64) (int64, error) {
	followed := b.followedSet(followerID)
	return b.countBlogs(func(bl *domain.Blog) bool { return followed[bl.AuthorID] })
}

func (b blogRepo) followedSet(followerID int64) map[int64]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[int64]bool)
	for key := range b.follows {
		if key[0] == followerID {
			out[key[1]] = true
		}
	}
	return out
}

func (b blogRepo) selectBlogs(match func(*domain.Blog) bool, limit, offset int) ([]domain.Blog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.Blog
	for _, bl := range b.blogs {
		if match(bl) {
			c := *bl
			if author, ok := b.users[bl.AuthorID]; ok {
				c.AuthorName = author.Name
			}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return slicePage(out, limit, offset), nil
}

func (b blogRepo) countBlogs(match func(*domain.Blog) bool) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for _, bl := range b.blogs {
		if match(bl) {
			n++
		}
	}
	return n, nil
}

// --- ports.CommentRepository ---

type commentRepo struct{ *memStore }

func (c commentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentSeq++
	cl := *comment
	cl.ID = c.commentSeq
	c.comments[cl.ID] = &cl
	out := cl
	return &out, nil
}

func (c commentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cm, ok := c.comments[id]; ok {
		cl := *cm
		return &cl, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (c commentRepo) ByBlog(_ context.Context, blogID int64, limit, offset int) ([]domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Comment
	for _, cm := range c.comments {
		if cm.BlogID == blogID {
			cl := *cm
			if author, ok := c.users[cm.AuthorID]; ok {
				cl.AuthorName = author.Name
			}
			out = append(out, cl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return slicePage(out, limit, offset), nil
}

func (c commentRepo) CountByBlog(_ context.Context, blogID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, cm := range c.comments {
		if cm.BlogID == blogID {
			n++
		}
	}
	return n, nil
}

func (c commentRepo) SetDisabled(_ context.Context, id int64, disabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cm, ok := c.comments[id]; ok {
		cm.Disabled = disabled
		return nil
	}
	return domain.ErrCommentNotFound
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- mail + revocation stubs ---

type stubMailQueue struct {
	mu   sync.Mutex
	msgs []ports.Email
}

func (q *stubMailQueue) Enqueue(msg ports.Email) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
}

func (q *stubMailQueue) sent() []ports.Email {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.Email(nil), q.msgs...)
}

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok, nil
}
