package models

import (
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/google/uuid"
)

type CreatePurchaseParams struct {
	FarmerID    string `json:"farmer_id" binding:"required"`
	SellerID    string `json:"seller_id"`
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Commodity   string `json:"commodity" binding:"required"`
	QuantityKg  string `json:"quantity_kg" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type UpdatePurchaseStatusParams struct {
	Status string `json:"status" binding:"required"`
}

type PurchaseResponse struct {
	ID          uuid.UUID `json:"id"`
	FarmerID    ID        `json:"farmer_id"`
	SellerID    ID        `json:"seller_id,omitempty"`
	WarehouseID ID        `json:"warehouse_id"`
	Commodity   string    `json:"commodity"`
	QuantityKg  string    `json:"quantity_kg"`
	UnitPrice   string    `json:"unit_price"`
	TotalCost   string    `json:"total_cost"`
	Status      string    `json:"status"`
	CreatedBy   ID        `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPurchaseResponse(p *db.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:          p.ID,
		FarmerID:    ID(p.FarmerID),
		SellerID:    ID(p.SellerID.Int64),
		WarehouseID: ID(p.WarehouseID),
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg,
		UnitPrice:   p.UnitPrice,
		TotalCost:   p.TotalCost,
		Status:      p.Status,
		CreatedBy:   ID(p.CreatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPurchaseResponseList(purchases []db.Purchase) []*PurchaseResponse {
	out := make([]*PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}

type CreatePickupParams struct {
	PurchaseID   string `json:"purchase_id" binding:"required"`
	ScheduledFor string `json:"scheduled_for" binding:"required"`
	VehicleReg   string `json:"vehicle_reg" binding:"required"`
	DriverName   string `json:"driver_name" binding:"required"`
}

type UpdatePickupStatusParams struct {
	Status string `json:"status" binding:"required"`
}

type PickupResponse struct {
	ID           uuid.UUID `json:"id"`
	PurchaseID   uuid.UUID `json:"purchase_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	VehicleReg   string    `json:"vehicle_reg"`
	DriverName   string    `json:"driver_name"`
	Status       string    `json:"status"`
	CreatedBy    ID        `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToPickupResponse(p *db.Pickup) *PickupResponse {
	return &PickupResponse{
		ID:           p.ID,
		PurchaseID:   p.PurchaseID,
		ScheduledFor: p.ScheduledFor,
		VehicleReg:   p.VehicleReg,
		DriverName:   p.DriverName,
		Status:       p.Status,
		CreatedBy:    ID(p.CreatedBy),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToPickupResponseList(pickups []db.Pickup) []*PickupResponse {
	out := make([]*PickupResponse, len(pickups))
	for i := range pickups {
		out[i] = ToPickupResponse(&pickups[i])
	}
	return out
}

type TransferStockParams struct {
	Commodity       string `json:"commodity" binding:"required"`
	QuantityKg      string `json:"quantity_kg" binding:"required"`
	FromWarehouseID string `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   string `json:"to_warehouse_id" binding:"required"`
}

type StockMovementResponse struct {
	ID              uuid.UUID `json:"id"`
	Commodity       string    `json:"commodity"`
	QuantityKg      string    `json:"quantity_kg"`
	FromWarehouseID ID        `json:"from_warehouse_id"`
	ToWarehouseID   ID        `json:"to_warehouse_id"`
	Status          string    `json:"status"`
	InitiatedBy     ID        `json:"initiated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToStockMovementResponse(m *db.StockMovement) *StockMovementResponse {
	return &StockMovementResponse{
		ID:              m.ID,
		Commodity:       m.Commodity,
		QuantityKg:      m.QuantityKg,
		FromWarehouseID: ID(m.FromWarehouseID),
		ToWarehouseID:   ID(m.ToWarehouseID),
		Status:          m.Status,
		InitiatedBy:     ID(m.InitiatedBy),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToStockMovementResponseList(movements []db.StockMovement) []*StockMovementResponse {
	out := make([]*StockMovementResponse, len(movements))
	for i := range movements {
		out[i] = ToStockMovementResponse(&movements[i])
	}
	return out
}
