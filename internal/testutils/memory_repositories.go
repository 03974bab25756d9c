// Package testutils provides in-memory implementations of the repository
// contracts plus fakes for the outbound adapters.
package testutils

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
)

// ListingRepo keeps listings in a map and orders reads by id
type ListingRepo struct {
	mu    sync.Mutex
	items map[string]entity.Listing

	// FindCalls counts Find invocations
	FindCalls int
}

func NewListingRepo(seed ...*entity.Listing) *ListingRepo {
	r := &ListingRepo{items: map[string]entity.Listing{}}
	for _, l := range seed {
		r.items[l.ID] = *l
	}
	return r
}

func (r *ListingRepo) matching(f repository.ListingFilter) []entity.Listing {
	out := make([]entity.Listing, 0, len(r.items))
	needle := strings.ToLower(f.NameContains)
	for _, l := range r.items {
		if needle != "" && !strings.Contains(strings.ToLower(l.Name), needle) {
			continue
		}
		if f.PropertyType != "" && l.PropertyType != f.PropertyType {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ListingRepo) Count(_ context.Context, f repository.ListingFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r *ListingRepo) Find(_ context.Context, f repository.ListingFilter, skip, limit int64) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindCalls++
	all := r.matching(f)
	out := []*entity.Listing{}
	for i := skip; i < int64(len(all)) && int64(len(out)) < limit; i++ {
		l := all[i]
		out = append(out, &l)
	}
	return out, nil
}

func (r *ListingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *ListingRepo) Create(_ context.Context, l *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[l.ID]; ok {
		return repository.ErrDuplicate
	}
	r.items[l.ID] = *l
	return nil
}

func (r *ListingRepo) Update(_ context.Context, id string, l *entity.Listing, mode repository.UpdateMode) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if mode == repository.UpdateMerge {
		cur = mergeListing(cur, *l)
	} else {
		cur = *l
		cur.ID = id
	}
	r.items[id] = cur
	return &cur, nil
}

func (r *ListingRepo) SetPictureURL(_ context.Context, id, url string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	imgs := entity.Images{}
	if cur.Images != nil {
		imgs = *cur.Images
	}
	imgs.PictureURL = url
	cur.Images = &imgs
	r.items[id] = cur
	return &cur, nil
}

func (r *ListingRepo) Delete(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.items, id)
	return &l, nil
}

// mergeListing copies the fields a handler test sets; it stands in for $set
func mergeListing(cur, in entity.Listing) entity.Listing {
	if in.Name != "" {
		cur.Name = in.Name
	}
	if in.Summary != "" {
		cur.Summary = in.Summary
	}
	if in.Description != "" {
		cur.Description = in.Description
	}
	if in.PropertyType != "" {
		cur.PropertyType = in.PropertyType
	}
	if in.RoomType != "" {
		cur.RoomType = in.RoomType
	}
	if in.Price != 0 {
		cur.Price = in.Price
	}
	if in.Beds != 0 {
		cur.Beds = in.Beds
	}
	if in.Accommodates != 0 {
		cur.Accommodates = in.Accommodates
	}
	if in.Images != nil {
		cur.Images = in.Images
	}
	return cur
}

// UserRepo keeps users in memory and enforces the unique indexes
type UserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User

	// TakenAPIKeys makes Create report ErrAPIKeyTaken for these keys
	TakenAPIKeys map[string]bool
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]entity.User{}, TakenAPIKeys: map[string]bool{}}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Username == u.Username {
			return repository.ErrDuplicate
		}
		if x.APIKey == u.APIKey {
			return repository.ErrAPIKeyTaken
		}
	}
	if r.TakenAPIKeys[u.APIKey] {
		delete(r.TakenAPIKeys, u.APIKey)
		return repository.ErrAPIKeyTaken
	}
	now := time.Now().UTC()
	u.ID = strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByAPIKey(_ context.Context, key string) (*entity.User, error) {
	if key == "" {
		return nil, repository.ErrNotFound
	}
	return r.find(func(u entity.User) bool { return u.APIKey == key })
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// Remove drops a user, simulating an account deleted out of band
func (r *UserRepo) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Publisher records published events
type Publisher struct {
	mu     sync.Mutex
	Events []any
	Err    error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, body)
	return nil
}

func (p *Publisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Events)
}

// Uploader records uploads and returns a deterministic URL
type Uploader struct {
	Paths []string
	Bytes int
}

func (u *Uploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.Paths = append(u.Paths, objectPath)
	u.Bytes += len(b)
	return "https://storage.test/" + objectPath, nil
}

var (
	_ repository.ListingRepository = (*ListingRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)
