package service

import (
	"context"
	"sync"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

// In-memory repository doubles mirroring the behavior the pg implementations
// get from the schema: serial IDs, unique username/email, newest-first
// listings.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) findBy(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return common.ErrConflict
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.AvatarFile = user.AvatarFile
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	stored.HashedPassword = hashedPassword
	stored.UpdatedAt = time.Now()
	return nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  []*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1}
}

func (r *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	copied := *post
	// Prepend: newest first, matching the created_at DESC ordering.
	r.posts = append([]*model.Post{&copied}, r.posts...)
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakePostRepo) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	return r.window(func(*model.Post) bool { return true }, limit, offset), nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*model.Post, error) {
	return r.window(func(p *model.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

func (r *fakePostRepo) window(match func(*model.Post) bool, limit, offset int) []*model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Post{}
	skipped := 0
	for _, p := range r.posts {
		if !match(p) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		copied := *p
		out = append(out, &copied)
	}
	return out
}

func (r *fakePostRepo) Update(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == post.ID {
			p.Title = post.Title
			p.Slug = post.Slug
			p.Content = post.Content
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakePostRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
