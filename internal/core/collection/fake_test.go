// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/collection"
	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// memoryRepository is an in-memory [collection.Repository].
type memoryRepository struct {
	collections   map[string]*collection.Collection
	memberships   map[string][]*membershipRow
	collaborators map[string]map[string]*collection.Collaborator
	users         map[string]bool
	mangas        map[int64]*manga.Manga

	// removalLog records the order of cascade deletes.
	removalLog []string
}

type membershipRow struct {
	mangaID int64
	addedBy *string
	addedAt time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		collections:   map[string]*collection.Collection{},
		memberships:   map[string][]*membershipRow{},
		collaborators: map[string]map[string]*collection.Collaborator{},
		users:         map[string]bool{},
		mangas:        map[int64]*manga.Manga{},
	}
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*collection.Collection, error) {
	c, ok := m.collections[id]
	if !ok {
		return nil, collection.ErrNotFound
	}
	copied := *c
	copied.MangaCount = len(m.memberships[id])
	return &copied, nil
}

func (m *memoryRepository) Create(_ context.Context, c *collection.Collection, mangaIDs []int64) error {
	for _, id := range mangaIDs {
		if _, ok := m.mangas[id]; !ok {
			return manga.ErrNotFound
		}
	}

	copied := *c
	m.collections[c.ID] = &copied
	owner := c.OwnerID
	for _, id := range mangaIDs {
		m.memberships[c.ID] = append(m.memberships[c.ID], &membershipRow{mangaID: id, addedBy: &owner, addedAt: time.Now()})
	}
	return nil
}

func (m *memoryRepository) Update(ctx context.Context, id string, changes collection.Changes) (*collection.Collection, error) {
	c, ok := m.collections[id]
	if !ok {
		return nil, collection.ErrNotFound
	}
	if changes.Name != nil {
		c.Name = *changes.Name
	}
	if changes.Cover != nil {
		c.Cover = changes.Cover
	}
	if changes.Description != nil {
		c.Description = changes.Description
	}
	if changes.Status != nil {
		c.Status = *changes.Status
	}
	return m.FindByID(ctx, id)
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.collections[id]; !ok {
		return collection.ErrNotFound
	}
	delete(m.collections, id)
	delete(m.memberships, id)
	delete(m.collaborators, id)
	return nil
}

func (m *memoryRepository) ListForUser(_ context.Context, userID string, limit, offset int) ([]*collection.Listed, int, error) {
	all := make([]*collection.Listed, 0)
	for id, c := range m.collections {
		collaborator := m.collaborators[id][userID]
		if c.OwnerID != userID && collaborator == nil {
			continue
		}
		all = append(all, &collection.Listed{Collection: *c, Collaborator: collaborator})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, limit, offset), len(all), nil
}

func (m *memoryRepository) ListPublic(_ context.Context, limit, offset int) ([]*collection.Collection, int, error) {
	all := make([]*collection.Collection, 0)
	for _, c := range m.collections {
		if c.Status == collection.StatusPublic {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, limit, offset), len(all), nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func (m *memoryRepository) ListMangas(_ context.Context, collectionID string) ([]collection.Membership, error) {
	out := make([]collection.Membership, 0)
	for _, row := range m.memberships[collectionID] {
		out = append(out, collection.Membership{Manga: m.mangas[row.mangaID], AddedBy: row.addedBy, AddedAt: row.addedAt})
	}
	return out, nil
}

func (m *memoryRepository) Inclusions(ctx context.Context, userID string, mangaID int64) ([]collection.Inclusion, error) {
	listed, _, _ := m.ListForUser(ctx, userID, 1000, 0)
	out := make([]collection.Inclusion, 0, len(listed))
	for _, l := range listed {
		included, _ := m.HasManga(ctx, l.ID, mangaID)
		out = append(out, collection.Inclusion{ID: l.ID, Name: l.Name, Status: l.Status, IsIncluded: included})
	}
	return out, nil
}

func (m *memoryRepository) HasManga(_ context.Context, collectionID string, mangaID int64) (bool, error) {
	for _, row := range m.memberships[collectionID] {
		if row.mangaID == mangaID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) AddManga(_ context.Context, collectionID string, mangaID int64, addedBy string) error {
	m.memberships[collectionID] = append(m.memberships[collectionID], &membershipRow{mangaID: mangaID, addedBy: &addedBy, addedAt: time.Now()})
	return nil
}

func (m *memoryRepository) RemoveManga(_ context.Context, collectionID string, mangaID int64) error {
	rows := m.memberships[collectionID][:0]
	for _, row := range m.memberships[collectionID] {
		if row.mangaID != mangaID {
			rows = append(rows, row)
		}
	}
	m.memberships[collectionID] = rows
	return nil
}

func (m *memoryRepository) UserExists(_ context.Context, userID string) (bool, error) {
	return m.users[userID], nil
}

func (m *memoryRepository) FindCollaborator(_ context.Context, collectionID, userID string) (*collection.Collaborator, error) {
	c, ok := m.collaborators[collectionID][userID]
	if !ok {
		return nil, collection.ErrCollaboratorNotFound
	}
	return c, nil
}

func (m *memoryRepository) AddCollaborator(_ context.Context, c *collection.Collaborator) error {
	if m.collaborators[c.CollectionID] == nil {
		m.collaborators[c.CollectionID] = map[string]*collection.Collaborator{}
	}
	if _, ok := m.collaborators[c.CollectionID][c.UserID]; ok {
		return collection.ErrAlreadyCollaborator
	}
	m.collaborators[c.CollectionID][c.UserID] = c
	return nil
}

func (m *memoryRepository) UpdateCollaboratorRole(_ context.Context, collectionID, userID string, role collection.Role) (*collection.Collaborator, error) {
	c, ok := m.collaborators[collectionID][userID]
	if !ok {
		return nil, collection.ErrCollaboratorNotFound
	}
	c.Role = role
	return c, nil
}

func (m *memoryRepository) RemoveCollaborator(_ context.Context, collectionID, userID string) (int, error) {
	if _, ok := m.collaborators[collectionID][userID]; !ok {
		return 0, collection.ErrCollaboratorNotFound
	}

	kept := make([]*membershipRow, 0)
	removed := 0
	for _, row := range m.memberships[collectionID] {
		if row.addedBy != nil && *row.addedBy == userID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.memberships[collectionID] = kept
	m.removalLog = append(m.removalLog, "memberships")

	delete(m.collaborators[collectionID], userID)
	m.removalLog = append(m.removalLog, "collaborator")

	return removed, nil
}

func (m *memoryRepository) ListCollaborators(_ context.Context, collectionID string) ([]*collection.Collaborator, error) {
	out := make([]*collection.Collaborator, 0)
	for _, c := range m.collaborators[collectionID] {
		out = append(out, c)
	}
	return out, nil
}

// mangaLookup adapts the memory repository's mangas to [manga.Repository].
type mangaLookup struct{ repo *memoryRepository }

func (l mangaLookup) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := l.repo.mangas[id]
	return ok, nil
}

func (l mangaLookup) FindByID(_ context.Context, id int64) (*manga.Manga, error) {
	m, ok := l.repo.mangas[id]
	if !ok {
		return nil, manga.ErrNotFound
	}
	return m, nil
}

// # Fixture

const (
	owner    = "0190a000-0000-7000-8000-000000000001"
	admin    = "0190a000-0000-7000-8000-000000000002"
	editor   = "0190a000-0000-7000-8000-000000000003"
	stranger = "0190a000-0000-7000-8000-000000000004"
)

type fixture struct {
	repo    *memoryRepository
	service *collection.Service
}

func newFixture() *fixture {
	repo := newMemoryRepository()
	for _, id := range []string{owner, admin, editor, stranger} {
		repo.users[id] = true
	}
	for id := int64(1); id <= 6; id++ {
		repo.mangas[id] = &manga.Manga{ID: id, Translations: []manga.Translation{{Language: "en", Name: "Manga"}}}
	}

	service := collection.NewService(repo, mangaLookup{repo: repo}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &fixture{repo: repo, service: service}
}

// seed creates a PRIVATE collection owned by owner with an ADMIN and an EDITOR.
func (f *fixture) seed(ctx context.Context) *collection.Collection {
	created, err := f.service.Create(ctx, owner, collection.CreateInput{Name: "Favoritos", MangaIDs: []int64{1, 2}})
	if err != nil {
		panic(err)
	}
	if _, err := f.service.AddCollaborator(ctx, created.ID, owner, admin, collection.RoleAdmin); err != nil {
		panic(err)
	}
	if _, err := f.service.AddCollaborator(ctx, created.ID, owner, editor, collection.RoleEditor); err != nil {
		panic(err)
	}
	return created
}
