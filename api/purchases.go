package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	db "github.com/AgroVault/AgroVault-Backend/db/store"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var purchaseStatuses = map[string]bool{
	"pending":   true,
	"delivered": true,
	"cancelled": true,
}

type Purchases struct {
	server *Server
}

func (p Purchases) router(server *Server) {
	p.server = server

	serverGroupV1 := server.router.Group("/api/v1/purchases")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), p.createPurchase)
	serverGroupV1.GET("", AuthenticatedMiddleware(), p.listPurchases)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), p.getPurchase)
	serverGroupV1.PUT(":id/status", AuthenticatedMiddleware(), VerifiedMiddleware(), p.updateStatus)
}

func (p *Purchases) createPurchase(ctx *gin.Context) {
	var params models.CreatePurchaseParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	farmerID, err := models.DecodeID(params.FarmerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}
	warehouseID, err := models.DecodeID(params.WarehouseID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var sellerID sql.NullInt64
	if params.SellerID != "" {
		decoded, err := models.DecodeID(params.SellerID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
			return
		}
		sellerID = sql.NullInt64{Int64: decoded, Valid: true}
	}

	quantity, err := decimal.NewFromString(params.QuantityKg)
	if err != nil || quantity.LessThanOrEqual(decimal.Zero) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}
	unitPrice, err := decimal.NewFromString(params.UnitPrice)
	if err != nil || unitPrice.LessThanOrEqual(decimal.Zero) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	purchase, err := p.server.store.CreatePurchase(ctx, db.CreatePurchaseParams{
		FarmerID:    farmerID,
		SellerID:    sellerID,
		WarehouseID: warehouseID,
		Commodity:   params.Commodity,
		QuantityKg:  quantity.String(),
		UnitPrice:   unitPrice.String(),
		TotalCost:   quantity.Mul(unitPrice).String(),
		Status:      "pending",
		CreatedBy:   activeUser.UserID,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.ForeignKeyGone {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.FarmerNotFound))
			return
		}
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("purchase recorded", models.ToPurchaseResponse(&purchase)))
}

func (p *Purchases) getPurchase(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	purchase, err := p.server.store.GetPurchase(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.PurchaseNotFound))
		return
	} else if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("purchase fetched", models.ToPurchaseResponse(&purchase)))
}

// updateStatus moves a purchase along its lifecycle. Marking it
// delivered books the grain into the destination warehouse in the same
// transaction, so stock and purchases cannot drift apart.
func (p *Purchases) updateStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.UpdatePurchaseStatusParams
	if err := ctx.ShouldBindJSON(&params); err != nil || !purchaseStatuses[params.Status] {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	current, err := p.server.store.GetPurchase(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.PurchaseNotFound))
		return
	} else if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if current.Status != "pending" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("purchase has already been finalized"))
		return
	}

	var updated db.Purchase
	apply := func(q *db.Queries) error {
		u, err := q.UpdatePurchaseStatus(ctx, db.UpdatePurchaseStatusParams{ID: id, Status: params.Status})
		if err != nil {
			return err
		}
		updated = u

		if params.Status == "delivered" {
			if _, err := q.CreditWarehouseStock(ctx, db.CreditWarehouseStockParams{
				WarehouseID: u.WarehouseID,
				Commodity:   u.Commodity,
				QuantityKg:  u.QuantityKg,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	err = p.server.store.ExecTx(ctx, apply)
	if errors.Is(err, db.ErrTxUnsupported) {
		p.server.logger.Warn(fmt.Sprintf("store cannot open a transaction for purchase %s, applying sequentially", id))
		err = apply(p.server.store.Queries)
	}
	if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("purchase updated", models.ToPurchaseResponse(&updated)))
}

func (p *Purchases) listPurchases(ctx *gin.Context) {
	var farmerID sql.NullInt64
	if raw := ctx.Query("farmer_id"); raw != "" {
		decoded, err := models.DecodeID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
			return
		}
		farmerID = sql.NullInt64{Int64: decoded, Valid: true}
	}

	var status sql.NullString
	if raw := ctx.Query("status"); raw != "" {
		if !purchaseStatuses[raw] {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
			return
		}
		status = sql.NullString{String: raw, Valid: true}
	}

	limit, offset := paginationParams(ctx)

	purchases, err := p.server.store.ListPurchases(ctx, db.ListPurchasesParams{
		FarmerID: farmerID,
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("purchases fetched", models.ToPurchaseResponseList(purchases)))
}
