package handler

import (
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"go-blog-api/internal/domain"
)

// In-memory repositories behind the domain interfaces, so handler tests
// run without a database.

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	createErr error // forced Create failure, e.g. the duplicate race
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*domain.User{}}
	for _, u := range users {
		cp := *u
		f.byID[u.ID] = &cp
	}
	return f
}

func (f *fakeUsers) Create(u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindForAuth(id string) (*domain.User, error) {
	u, err := f.FindByID(id)
	if u != nil {
		u.PasswordHash = ""
	}
	return u, err
}

func (f *fakeUsers) FindByEmail(email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) EmailTaken(email, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) List(offset, limit int, q string, withDeleted bool) ([]domain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.User
	for _, u := range f.byID {
		if q != "" && !strings.Contains(u.Email, q) && !strings.Contains(u.Name, q) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeUsers) Update(u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ex := range f.byID {
		if ex.Email == u.Email && id != u.ID {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) SoftDelete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePosts struct {
	mu   sync.Mutex
	byID map[string]*domain.Post
}

func newFakePosts(posts ...*domain.Post) *fakePosts {
	f := &fakePosts{byID: map[string]*domain.Post{}}
	for _, p := range posts {
		cp := *p
		f.byID[p.ID] = &cp
	}
	return f
}

func (f *fakePosts) Create(p *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePosts) FindByID(id string) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) List(fl domain.PostFilter) ([]domain.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.Post
	for _, p := range f.byID {
		if fl.Search != "" && !strings.Contains(p.Title, fl.Search) && !strings.Contains(p.Content, fl.Search) {
			continue
		}
		if fl.AuthorID != "" && p.AuthorID != fl.AuthorID {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if fl.Offset >= len(all) {
		return nil, total, nil
	}
	end := fl.Offset + fl.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[fl.Offset:end], total, nil
}

func (f *fakePosts) Update(p *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.byID[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ex.Title = p.Title
	ex.Content = p.Content
	return nil
}

func (f *fakePosts) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}
