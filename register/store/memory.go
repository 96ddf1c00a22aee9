// Package store provides an in-memory register.Store implementation
// (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/asset-register/fixedasset"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	assets     map[fixedasset.AssetID]fixedasset.Asset
	categories map[fixedasset.CategoryID]fixedasset.AssetCategory
	locations  map[fixedasset.LocationID]fixedasset.AssetLocation
}

func NewMemory() *Memory {
	return &Memory{
		assets:     make(map[fixedasset.AssetID]fixedasset.Asset),
		categories: make(map[fixedasset.CategoryID]fixedasset.AssetCategory),
		locations:  make(map[fixedasset.LocationID]fixedasset.AssetLocation),
	}
}

// SaveAsset inserts or replaces the asset and its component tree.
func (m *Memory) SaveAsset(_ context.Context, a fixedasset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[a.ID] = cloneAsset(a)
	return nil
}

func (m *Memory) GetAsset(_ context.Context, id fixedasset.AssetID) (*fixedasset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	out := cloneAsset(a)
	return &out, nil
}

func (m *Memory) GetAssetByNumber(_ context.Context, number string) (*fixedasset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assets {
		if a.AssetNumber == number {
			out := cloneAsset(a)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListAssets(_ context.Context) ([]fixedasset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fixedasset.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, cloneAsset(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetNumber < out[j].AssetNumber })
	return out, nil
}

func (m *Memory) SaveCategory(_ context.Context, c fixedasset.AssetCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
	return nil
}

func (m *Memory) GetCategory(_ context.Context, id fixedasset.CategoryID) (*fixedasset.AssetCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListCategories(_ context.Context) ([]fixedasset.AssetCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fixedasset.AssetCategory, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveLocation(_ context.Context, l fixedasset.AssetLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[l.ID] = l
	return nil
}

func (m *Memory) GetLocation(_ context.Context, id fixedasset.LocationID) (*fixedasset.AssetLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *Memory) ListLocations(_ context.Context) ([]fixedasset.AssetLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fixedasset.AssetLocation, 0, len(m.locations))
	for _, l := range m.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// cloneAsset deep-copies the component tree so callers can't reach the
// stored slices. Copy-on-write at the service layer depends on this.
func cloneAsset(a fixedasset.Asset) fixedasset.Asset {
	out := a
	out.Components = make([]fixedasset.AssetComponent, len(a.Components))
	for i, c := range a.Components {
		cc := c
		if c.DisposalDate != nil {
			d := *c.DisposalDate
			cc.DisposalDate = &d
		}
		if c.Revaluations != nil {
			cc.Revaluations = make([]fixedasset.RevaluationEvent, len(c.Revaluations))
			copy(cc.Revaluations, c.Revaluations)
		}
		out.Components[i] = cc
	}
	return out
}
