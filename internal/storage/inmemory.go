// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/types"
)

var _ StorageInterface = (*InMemoryStorage)(nil)

// InMemoryStorage backs mock mode: the same contract as the PostgreSQL
// storage, held in maps behind one RWMutex. Cascades are applied by hand
// where the database would use ON DELETE CASCADE.
type InMemoryStorage struct {
	mu sync.RWMutex

	tenants    map[string]types.Tenant
	users      map[string]types.User
	suppliers  map[string]types.Supplier
	categories map[string]types.Category
	locations  map[string]types.Location
	buildings  map[string]types.Building
	floors     map[string]types.Floor
	rooms      map[string]types.Room
	assets     map[string]types.Asset

	logger logging.LoggerInterface
}

func NewInMemoryStorage(logger logging.LoggerInterface) *InMemoryStorage {
	return &InMemoryStorage{
		tenants:    make(map[string]types.Tenant),
		users:      make(map[string]types.User),
		suppliers:  make(map[string]types.Supplier),
		categories: make(map[string]types.Category),
		locations:  make(map[string]types.Location),
		buildings:  make(map[string]types.Building),
		floors:     make(map[string]types.Floor),
		rooms:      make(map[string]types.Room),
		assets:     make(map[string]types.Asset),
		logger:     logger,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does
		return uuid.NewString()
	}
	return id.String()
}

// Tenants

func (s *InMemoryStorage) CreateTenant(_ context.Context, t *types.Tenant) (*types.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *t
	stored.ID = newID()
	stored.CreatedAt = time.Now().UTC()

	if stored.ParentID != nil {
		if _, ok := s.tenants[*stored.ParentID]; !ok {
			return nil, ErrForeignKeyViolation
		}
	}

	s.tenants[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetTenantByID(_ context.Context, id string) (*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}

func (s *InMemoryStorage) ListTenants(_ context.Context) ([]*types.Tenant, error) {
	return s.listTenants(func(types.Tenant) bool { return true })
}

func (s *InMemoryStorage) ListTenantsByType(_ context.Context, tenantType string) ([]*types.Tenant, error) {
	return s.listTenants(func(t types.Tenant) bool { return t.Type == tenantType })
}

func (s *InMemoryStorage) ListTenantsByParent(_ context.Context, parentID string) ([]*types.Tenant, error) {
	return s.listTenants(func(t types.Tenant) bool { return t.ParentID != nil && *t.ParentID == parentID })
}

func (s *InMemoryStorage) listTenants(keep func(types.Tenant) bool) ([]*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Tenant
	for _, t := range s.tenants {
		if keep(t) {
			c := t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStorage) UpdateTenant(_ context.Context, t *types.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tenants[t.ID]
	if !ok {
		return ErrNotFound
	}

	if t.ParentID != nil {
		if _, ok := s.tenants[*t.ParentID]; !ok {
			return ErrForeignKeyViolation
		}
	}

	existing.Name = t.Name
	existing.ParentID = t.ParentID
	existing.Settings = t.Settings
	s.tenants[t.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteTenant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[id]; !ok {
		return ErrNotFound
	}
	delete(s.tenants, id)

	for uid, u := range s.users {
		if u.TenantID == id {
			delete(s.users, uid)
		}
	}
	for sid, sup := range s.suppliers {
		if sup.TenantID == id {
			delete(s.suppliers, sid)
		}
	}
	for cid, c := range s.categories {
		if c.TenantID == id {
			delete(s.categories, cid)
		}
	}
	for lid, l := range s.locations {
		if l.TenantID == id {
			delete(s.locations, lid)
		}
	}
	for bid, b := range s.buildings {
		if b.TenantID == id {
			s.deleteBuildingLocked(bid)
		}
	}
	for aid, a := range s.assets {
		if a.TenantID == id {
			delete(s.assets, aid)
		}
	}
	// Detach any company tenants that pointed at a deleted group.
	for tid, t := range s.tenants {
		if t.ParentID != nil && *t.ParentID == id {
			t.ParentID = nil
			s.tenants[tid] = t
		}
	}
	return nil
}

// Users

func (s *InMemoryStorage) CreateUser(_ context.Context, u *types.User) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateKey
		}
	}
	if _, ok := s.tenants[u.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}

	stored := *u
	stored.ID = newID()
	stored.CreatedAt = time.Now().UTC()
	if stored.Permissions == nil {
		stored.Permissions = []string{}
	}

	s.users[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetUserByID(_ context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *InMemoryStorage) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStorage) ListUsers(_ context.Context, tenantID string) ([]*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.User
	for _, u := range s.users {
		if tenantID == "" || u.TenantID == tenantID {
			c := u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStorage) UpdateUser(_ context.Context, u *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok || existing.TenantID != u.TenantID {
		return ErrNotFound
	}

	for oid, other := range s.users {
		if oid != u.ID && other.Email == u.Email {
			return ErrDuplicateKey
		}
	}

	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.Name = u.Name
	existing.Role = u.Role
	existing.Active = u.Active
	existing.Permissions = u.Permissions
	s.users[u.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteUser(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || (tenantID != "" && u.TenantID != tenantID) {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Suppliers

func (s *InMemoryStorage) CreateSupplier(_ context.Context, sup *types.Supplier) (*types.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[sup.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}

	stored := *sup
	stored.ID = newID()
	s.suppliers[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetSupplierByID(_ context.Context, tenantID, id string) (*types.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sup, ok := s.suppliers[id]
	if !ok || (tenantID != "" && sup.TenantID != tenantID) {
		return nil, ErrNotFound
	}
	out := sup
	return &out, nil
}

func (s *InMemoryStorage) ListSuppliers(_ context.Context, tenantID string) ([]*types.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Supplier
	for _, sup := range s.suppliers {
		if tenantID == "" || sup.TenantID == tenantID {
			c := sup
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStorage) UpdateSupplier(_ context.Context, sup *types.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.suppliers[sup.ID]
	if !ok || existing.TenantID != sup.TenantID {
		return ErrNotFound
	}

	existing.Name = sup.Name
	existing.ContactEmail = sup.ContactEmail
	existing.Phone = sup.Phone
	s.suppliers[sup.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteSupplier(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.suppliers[id]
	if !ok || (tenantID != "" && sup.TenantID != tenantID) {
		return ErrNotFound
	}
	delete(s.suppliers, id)
	return nil
}

// Categories

func (s *InMemoryStorage) CreateCategory(_ context.Context, c *types.Category) (*types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[c.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}
	for _, existing := range s.categories {
		if existing.TenantID == c.TenantID && existing.Name == c.Name {
			return nil, ErrDuplicateKey
		}
	}

	stored := *c
	stored.ID = newID()
	s.categories[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) ListCategories(_ context.Context, tenantID string) ([]*types.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Category
	for _, c := range s.categories {
		if tenantID == "" || c.TenantID == tenantID {
			cc := c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Locations

func (s *InMemoryStorage) CreateLocation(_ context.Context, l *types.Location) (*types.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[l.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}

	stored := *l
	stored.ID = newID()
	s.locations[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetLocationByID(_ context.Context, tenantID, id string) (*types.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.locations[id]
	if !ok || (tenantID != "" && l.TenantID != tenantID) {
		return nil, ErrNotFound
	}
	out := l
	return &out, nil
}

func (s *InMemoryStorage) ListLocations(_ context.Context, tenantID string) ([]*types.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Location
	for _, l := range s.locations {
		if tenantID == "" || l.TenantID == tenantID {
			c := l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStorage) UpdateLocation(_ context.Context, l *types.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.locations[l.ID]
	if !ok || existing.TenantID != l.TenantID {
		return ErrNotFound
	}

	existing.Name = l.Name
	existing.Address = l.Address
	existing.City = l.City
	existing.Country = l.Country
	s.locations[l.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteLocation(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locations[id]
	if !ok || (tenantID != "" && l.TenantID != tenantID) {
		return ErrNotFound
	}
	delete(s.locations, id)

	// Buildings keep existing but lose the location link.
	for bid, b := range s.buildings {
		if b.LocationID != nil && *b.LocationID == id {
			b.LocationID = nil
			s.buildings[bid] = b
		}
	}
	return nil
}

// Buildings

func (s *InMemoryStorage) CreateBuilding(_ context.Context, b *types.Building) (*types.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[b.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}
	if b.LocationID != nil {
		if _, ok := s.locations[*b.LocationID]; !ok {
			return nil, ErrForeignKeyViolation
		}
	}

	stored := *b
	stored.ID = newID()
	s.buildings[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetBuildingByID(_ context.Context, tenantID, id string) (*types.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buildings[id]
	if !ok || (tenantID != "" && b.TenantID != tenantID) {
		return nil, ErrNotFound
	}
	out := b
	return &out, nil
}

func (s *InMemoryStorage) ListBuildings(_ context.Context, tenantID string) ([]*types.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Building
	for _, b := range s.buildings {
		if tenantID == "" || b.TenantID == tenantID {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStorage) UpdateBuilding(_ context.Context, b *types.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateBuildingLocked(b)
}

func (s *InMemoryStorage) updateBuildingLocked(b *types.Building) error {
	existing, ok := s.buildings[b.ID]
	if !ok || existing.TenantID != b.TenantID {
		return ErrNotFound
	}
	if b.LocationID != nil {
		if _, ok := s.locations[*b.LocationID]; !ok {
			return ErrForeignKeyViolation
		}
	}

	existing.Name = b.Name
	existing.LocationID = b.LocationID
	s.buildings[b.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteBuilding(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buildings[id]
	if !ok || (tenantID != "" && b.TenantID != tenantID) {
		return ErrNotFound
	}

	s.deleteBuildingLocked(id)
	return nil
}

// deleteBuildingLocked removes a building with its floors, rooms and the
// assets placed in those rooms. Caller holds the write lock.
func (s *InMemoryStorage) deleteBuildingLocked(id string) {
	delete(s.buildings, id)

	for fid, f := range s.floors {
		if f.BuildingID == id {
			delete(s.floors, fid)
		}
	}
	for rid, r := range s.rooms {
		if r.BuildingID == id {
			for aid, a := range s.assets {
				if a.RoomID != nil && *a.RoomID == rid {
					delete(s.assets, aid)
				}
			}
			delete(s.rooms, rid)
		}
	}
}

func (s *InMemoryStorage) ListFloors(_ context.Context, buildingID string) ([]*types.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Floor
	for _, f := range s.floors {
		if f.BuildingID == buildingID {
			c := f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *InMemoryStorage) ListRoomsWithCounts(_ context.Context, buildingID string) ([]*types.RoomWithCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, a := range s.assets {
		if a.RoomID != nil {
			counts[*a.RoomID]++
		}
	}

	var out []*types.RoomWithCount
	for rid, r := range s.rooms {
		if r.BuildingID == buildingID {
			out = append(out, &types.RoomWithCount{Room: r, AssetCount: counts[rid]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FloorNumber != out[j].FloorNumber {
			return out[i].FloorNumber < out[j].FloorNumber
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *InMemoryStorage) ListAssetsByBuilding(_ context.Context, buildingID string) ([]*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomIDs := make(map[string]bool)
	for rid, r := range s.rooms {
		if r.BuildingID == buildingID {
			roomIDs[rid] = true
		}
	}

	var out []*types.Asset
	for _, a := range s.assets {
		if a.RoomID != nil && roomIDs[*a.RoomID] {
			c := a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStorage) ReplaceBuildingContents(_ context.Context, b *types.Building, floors []*types.Floor, rooms []*types.Room, assets []*types.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything up front so a failure leaves state untouched.
	existing, ok := s.buildings[b.ID]
	if !ok || existing.TenantID != b.TenantID {
		return ErrNotFound
	}
	if b.LocationID != nil {
		if _, ok := s.locations[*b.LocationID]; !ok {
			return ErrForeignKeyViolation
		}
	}

	newRoomIDs := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		if r.ID == "" {
			r.ID = newID()
		}
		newRoomIDs[r.ID] = true
	}
	for _, a := range assets {
		if a.RoomID == nil || !newRoomIDs[*a.RoomID] {
			return ErrForeignKeyViolation
		}
	}

	// Clear old contents, room cascade included.
	for fid, f := range s.floors {
		if f.BuildingID == b.ID {
			delete(s.floors, fid)
		}
	}
	for rid, r := range s.rooms {
		if r.BuildingID == b.ID {
			for aid, a := range s.assets {
				if a.RoomID != nil && *a.RoomID == rid {
					delete(s.assets, aid)
				}
			}
			delete(s.rooms, rid)
		}
	}

	existing.Name = b.Name
	existing.LocationID = b.LocationID
	s.buildings[b.ID] = existing

	now := time.Now().UTC()
	for _, f := range floors {
		stored := *f
		if stored.ID == "" {
			stored.ID = newID()
		}
		stored.BuildingID = b.ID
		s.floors[stored.ID] = stored
	}
	for _, r := range rooms {
		stored := *r
		stored.BuildingID = b.ID
		stored.TenantID = b.TenantID
		s.rooms[stored.ID] = stored
	}
	for _, a := range assets {
		stored := *a
		if stored.ID == "" {
			stored.ID = newID()
		}
		stored.TenantID = b.TenantID
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.assets[stored.ID] = stored
	}

	return nil
}

// Assets

func (s *InMemoryStorage) CreateAsset(_ context.Context, a *types.Asset) (*types.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[a.TenantID]; !ok {
		return nil, ErrForeignKeyViolation
	}
	if a.RoomID != nil {
		if _, ok := s.rooms[*a.RoomID]; !ok {
			return nil, ErrForeignKeyViolation
		}
	}
	if a.SupplierID != nil {
		if _, ok := s.suppliers[*a.SupplierID]; !ok {
			return nil, ErrForeignKeyViolation
		}
	}
	if a.CategoryID != nil {
		if _, ok := s.categories[*a.CategoryID]; !ok {
			return nil, ErrForeignKeyViolation
		}
	}

	stored := *a
	if stored.ID == "" {
		stored.ID = newID()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.assets[stored.ID] = stored
	out := stored
	return &out, nil
}

func (s *InMemoryStorage) GetAssetByID(_ context.Context, tenantID, id string) (*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[id]
	if !ok || (tenantID != "" && a.TenantID != tenantID) {
		return nil, ErrNotFound
	}
	out := a
	return &out, nil
}

func (s *InMemoryStorage) ListAssets(_ context.Context, tenantID string) ([]*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Asset
	for _, a := range s.assets {
		if tenantID == "" || a.TenantID == tenantID {
			c := a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStorage) ListAssetsByRoom(_ context.Context, roomID string) ([]*types.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Asset
	for _, a := range s.assets {
		if a.RoomID != nil && *a.RoomID == roomID {
			c := a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStorage) UpdateAsset(_ context.Context, a *types.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.assets[a.ID]
	if !ok || existing.TenantID != a.TenantID {
		return ErrNotFound
	}
	if a.RoomID != nil {
		if _, ok := s.rooms[*a.RoomID]; !ok {
			return ErrForeignKeyViolation
		}
	}

	existing.CategoryID = a.CategoryID
	existing.RoomID = a.RoomID
	existing.SupplierID = a.SupplierID
	existing.Name = a.Name
	existing.Model = a.Model
	existing.Position = a.Position
	existing.Rotation = a.Rotation
	existing.Scale = a.Scale
	existing.Price = a.Price
	existing.Currency = a.Currency
	existing.UpdatedAt = time.Now().UTC()
	s.assets[a.ID] = existing
	return nil
}

func (s *InMemoryStorage) DeleteAsset(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok || (tenantID != "" && a.TenantID != tenantID) {
		return ErrNotFound
	}
	delete(s.assets, id)
	return nil
}
