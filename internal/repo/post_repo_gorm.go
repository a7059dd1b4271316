package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-blog-api/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(p *domain.Post) error {
	if err := r.db.Create(p).Error; err != nil {
		return err
	}
	r.attachAuthors([]*domain.Post{p})
	return nil
}

func (r *PostRepo) FindByID(id string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.attachAuthors([]*domain.Post{&p})
	return &p, nil
}

func (r *PostRepo) List(f domain.PostFilter) ([]domain.Post, int64, error) {
	tx := r.db.Model(&domain.Post{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if f.AuthorID != "" {
		tx = tx.Where("author_id = ?", f.AuthorID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []domain.Post
	if err := tx.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	refs := make([]*domain.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	r.attachAuthors(refs)
	return posts, total, nil
}

func (r *PostRepo) Update(p *domain.Post) error {
	err := r.db.Model(&domain.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{"title": p.Title, "content": p.Content}).Error
	if err != nil {
		return err
	}
	r.attachAuthors([]*domain.Post{p})
	return nil
}

func (r *PostRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&domain.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// attachAuthors resolves author id/name/email in one query. Posts whose
// author was removed keep a nil Author.
func (r *PostRepo) attachAuthors(posts []*domain.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]string, 0, len(posts))
	seen := map[string]struct{}{}
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}
	var authors []domain.User
	if err := r.db.Select("id", "name", "email").Find(&authors, "id IN ?", ids).Error; err != nil {
		return
	}
	byID := make(map[string]*domain.PostAuthor, len(authors))
	for i := range authors {
		a := authors[i]
		byID[a.ID] = &domain.PostAuthor{ID: a.ID, Name: a.Name, Email: a.Email}
	}
	for _, p := range posts {
		p.Author = byID[p.AuthorID]
	}
}
