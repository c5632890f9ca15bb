package models

import (
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
)

type CreateFarmerParams struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Community   string `json:"community" binding:"required"`
	Region      string `json:"region" binding:"required"`
}

type FarmerResponse struct {
	ID          ID        `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Community   string    `json:"community"`
	Region      string    `json:"region"`
	CreatedBy   ID        `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToFarmerResponse(f *db.Farmer) *FarmerResponse {
	return &FarmerResponse{
		ID:          ID(f.ID),
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		PhoneNumber: f.PhoneNumber,
		Community:   f.Community,
		Region:      f.Region,
		CreatedBy:   ID(f.CreatedBy),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func ToFarmerResponseList(farmers []db.Farmer) []*FarmerResponse {
	out := make([]*FarmerResponse, len(farmers))
	for i := range farmers {
		out[i] = ToFarmerResponse(&farmers[i])
	}
	return out
}

type CreateSellerParams struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Region       string `json:"region" binding:"required"`
}

type SellerResponse struct {
	ID           ID        `json:"id"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name"`
	PhoneNumber  string    `json:"phone_number"`
	Region       string    `json:"region"`
	CreatedBy    ID        `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToSellerResponse(s *db.Seller) *SellerResponse {
	return &SellerResponse{
		ID:           ID(s.ID),
		BusinessName: s.BusinessName,
		ContactName:  s.ContactName,
		PhoneNumber:  s.PhoneNumber,
		Region:       s.Region,
		CreatedBy:    ID(s.CreatedBy),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToSellerResponseList(sellers []db.Seller) []*SellerResponse {
	out := make([]*SellerResponse, len(sellers))
	for i := range sellers {
		out[i] = ToSellerResponse(&sellers[i])
	}
	return out
}

type CreateWarehouseParams struct {
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location" binding:"required"`
	CapacityTons string `json:"capacity_tons" binding:"required"`
}

type WarehouseResponse struct {
	ID           ID        `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	CapacityTons string    `json:"capacity_tons"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToWarehouseResponse(w *db.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:           ID(w.ID),
		Name:         w.Name,
		Location:     w.Location,
		CapacityTons: w.CapacityTons,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func ToWarehouseResponseList(warehouses []db.Warehouse) []*WarehouseResponse {
	out := make([]*WarehouseResponse, len(warehouses))
	for i := range warehouses {
		out[i] = ToWarehouseResponse(&warehouses[i])
	}
	return out
}

type WarehouseStockResponse struct {
	WarehouseID ID        `json:"warehouse_id"`
	Commodity   string    `json:"commodity"`
	QuantityKg  string    `json:"quantity_kg"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToWarehouseStockResponseList(stock []db.WarehouseStock) []*WarehouseStockResponse {
	out := make([]*WarehouseStockResponse, len(stock))
	for i, s := range stock {
		out[i] = &WarehouseStockResponse{
			WarehouseID: ID(s.WarehouseID),
			Commodity:   s.Commodity,
			QuantityKg:  s.QuantityKg,
			UpdatedAt:   s.UpdatedAt,
		}
	}
	return out
}
