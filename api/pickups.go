package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	db "github.com/AgroVault/AgroVault-Backend/db/store"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var pickupStatuses = map[string]bool{
	"scheduled": true,
	"completed": true,
	"cancelled": true,
}

type Pickups struct {
	server *Server
}

func (p Pickups) router(server *Server) {
	p.server = server

	serverGroupV1 := server.router.Group("/api/v1/pickups")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), p.createPickup)
	serverGroupV1.GET("", AuthenticatedMiddleware(), p.listPickups)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), p.getPickup)
	serverGroupV1.PUT(":id/status", AuthenticatedMiddleware(), VerifiedMiddleware(), p.updateStatus)
}

func (p *Pickups) createPickup(ctx *gin.Context) {
	var params models.CreatePickupParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	purchaseID, err := uuid.Parse(params.PurchaseID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	scheduledFor, err := time.Parse(time.RFC3339, params.ScheduledFor)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("scheduled_for must be an RFC3339 timestamp"))
		return
	}

	pickup, err := p.server.store.CreatePickup(ctx, db.CreatePickupParams{
		PurchaseID:   purchaseID,
		ScheduledFor: scheduledFor,
		VehicleReg:   params.VehicleReg,
		DriverName:   params.DriverName,
		Status:       "scheduled",
		CreatedBy:    activeUser.UserID,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.ForeignKeyGone {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.PurchaseNotFound))
			return
		}
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("pickup scheduled", models.ToPickupResponse(&pickup)))
}

func (p *Pickups) getPickup(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	pickup, err := p.server.store.GetPickup(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.PickupNotFound))
		return
	} else if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("pickup fetched", models.ToPickupResponse(&pickup)))
}

func (p *Pickups) updateStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.UpdatePickupStatusParams
	if err := ctx.ShouldBindJSON(&params); err != nil || !pickupStatuses[params.Status] {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	pickup, err := p.server.store.UpdatePickupStatus(ctx, db.UpdatePickupStatusParams{
		ID:     id,
		Status: params.Status,
	})
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.PickupNotFound))
		return
	} else if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("pickup updated", models.ToPickupResponse(&pickup)))
}

func (p *Pickups) listPickups(ctx *gin.Context) {
	raw := ctx.Query("purchase_id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("purchase_id query parameter is required"))
		return
	}

	purchaseID, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	pickups, err := p.server.store.ListPickupsByPurchase(ctx, purchaseID)
	if err != nil {
		p.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("pickups fetched", models.ToPickupResponseList(pickups)))
}
