package testhelpers

import (
	"context"
	"strings"
	"sync"
)

// MemoryLinkRepository keeps account links in memory
type MemoryLinkRepository struct {
	mu    sync.Mutex
	links map[string]string
}

// NewMemoryLinkRepository creates a link repository seeded with discordID -> chat username
func NewMemoryLinkRepository(links map[string]string) *MemoryLinkRepository {
	r := &MemoryLinkRepository{links: make(map[string]string)}
	for id, username := range links {
		r.links[id] = username
	}
	return r
}

func (r *MemoryLinkRepository) GetChatUsername(ctx context.Context, discordID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.links[discordID], nil
}

// MemoryProfileRepository keeps chat profile balances in memory
type MemoryProfileRepository struct {
	mu     sync.Mutex
	points map[string]int64
}

// NewMemoryProfileRepository creates a profile repository seeded with username -> points
func NewMemoryProfileRepository(points map[string]int64) *MemoryProfileRepository {
	r := &MemoryProfileRepository{points: make(map[string]int64)}
	for username, p := range points {
		r.points[strings.ToLower(username)] = p
	}
	return r
}

func (r *MemoryProfileRepository) GetPoints(ctx context.Context, chatUsername string) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[strings.ToLower(chatUsername)]
	return p, ok, nil
}

func (r *MemoryProfileRepository) SetPoints(ctx context.Context, chatUsername string, points int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(chatUsername)
	if _, ok := r.points[key]; !ok {
		return false, nil
	}
	r.points[key] = points
	return true, nil
}

// Points returns the stored balance of a profile
func (r *MemoryProfileRepository) Points(chatUsername string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[strings.ToLower(chatUsername)]
}

// MemoryLocalPointsRepository keeps local balances in memory
type MemoryLocalPointsRepository struct {
	mu     sync.Mutex
	points map[string]int64
}

// NewMemoryLocalPointsRepository creates a local repository seeded with discordID -> points
func NewMemoryLocalPointsRepository(points map[string]int64) *MemoryLocalPointsRepository {
	r := &MemoryLocalPointsRepository{points: make(map[string]int64)}
	for id, p := range points {
		r.points[id] = p
	}
	return r
}

func (r *MemoryLocalPointsRepository) GetPoints(ctx context.Context, discordID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[discordID], nil
}

func (r *MemoryLocalPointsRepository) SetPoints(ctx context.Context, discordID string, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points[discordID] = points
	return nil
}

// Points returns the stored balance of an identity
func (r *MemoryLocalPointsRepository) Points(discordID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[discordID]
}
