// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Tenant types. A company may hang off a group; groups and the admin
// root stand alone.
const (
	TenantTypeAdmin   = "admin"
	TenantTypeGroup   = "group"
	TenantTypeCompany = "company"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleGroup    = "group"
	RoleCompany  = "company"
	RoleUser     = "user"
	RoleSupplier = "supplier"
)

type Tenant struct {
	ID        string                 `db:"id" json:"id"`
	Name      string                 `db:"name" json:"name"`
	Type      string                 `db:"type" json:"type"`
	ParentID  *string                `db:"parent_id" json:"parentId,omitempty"`
	Settings  map[string]interface{} `db:"settings" json:"settings,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"createdAt"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	TenantID     string    `db:"tenant_id" json:"tenantId"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	Permissions  []string  `db:"permissions" json:"permissions"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type Supplier struct {
	ID           string `db:"id" json:"id"`
	TenantID     string `db:"tenant_id" json:"tenantId"`
	Name         string `db:"name" json:"name"`
	ContactEmail string `db:"contact_email" json:"contactEmail,omitempty"`
	Phone        string `db:"phone" json:"phone,omitempty"`
}

type Category struct {
	ID       string `db:"id" json:"id"`
	TenantID string `db:"tenant_id" json:"tenantId"`
	Name     string `db:"name" json:"name"`
}

type Location struct {
	ID       string `db:"id" json:"id"`
	TenantID string `db:"tenant_id" json:"tenantId"`
	Name     string `db:"name" json:"name"`
	Address  string `db:"address" json:"address,omitempty"`
	City     string `db:"city" json:"city,omitempty"`
	Country  string `db:"country" json:"country,omitempty"`
}

type Building struct {
	ID         string  `db:"id" json:"id"`
	TenantID   string  `db:"tenant_id" json:"tenantId"`
	LocationID *string `db:"location_id" json:"locationId,omitempty"`
	Name       string  `db:"name" json:"name"`
}

// Floor is an explicit floor definition on a building. Floors without a
// definition still show up in the derived structure when a room
// references their number.
type Floor struct {
	ID         string `db:"id" json:"id"`
	BuildingID string `db:"building_id" json:"buildingId"`
	Number     int    `db:"number" json:"number"`
	Name       string `db:"name" json:"name"`
}

type Room struct {
	ID          string  `db:"id" json:"id"`
	TenantID    string  `db:"tenant_id" json:"tenantId"`
	BuildingID  string  `db:"building_id" json:"buildingId"`
	Name        string  `db:"name" json:"name"`
	FloorNumber int     `db:"floor_number" json:"floorNumber"`
	Width       float64 `db:"width" json:"width"`
	Depth       float64 `db:"depth" json:"depth"`
	Height      float64 `db:"height" json:"height"`
	PosX        float64 `db:"pos_x" json:"posX"`
	PosY        float64 `db:"pos_y" json:"posY"`
}

// RoomWithCount carries the denormalized asset count used by the floor
// aggregation.
type RoomWithCount struct {
	Room
	AssetCount int `db:"asset_count" json:"assetCount"`
}

// Vec3 is a spatial triple used for asset transforms.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Asset struct {
	ID         string  `db:"id" json:"id"`
	TenantID   string  `db:"tenant_id" json:"tenantId"`
	CategoryID *string `db:"category_id" json:"categoryId,omitempty"`
	RoomID     *string `db:"room_id" json:"roomId,omitempty"`
	SupplierID *string `db:"supplier_id" json:"supplierId,omitempty"`
	Name       string  `db:"name" json:"name"`
	Model      string  `db:"model" json:"model,omitempty"`

	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`

	Price     float64   `db:"price" json:"price"`
	Currency  string    `db:"currency" json:"currency,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultScale is applied when an asset is created without a transform;
// position and rotation default to the zero vector.
var DefaultScale = Vec3{X: 1, Y: 1, Z: 1}
