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
	"github.com/AgroVault/AgroVault-Backend/services/auth"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Warehouses struct {
	server *Server
}

func (w Warehouses) router(server *Server) {
	w.server = server

	serverGroupV1 := server.router.Group("/api/v1/warehouses")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), w.createWarehouse)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.listWarehouses)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), w.getWarehouse)
	serverGroupV1.GET(":id/stock", AuthenticatedMiddleware(), w.listStock)
	serverGroupV1.PUT(":id", AuthenticatedMiddleware(), VerifiedMiddleware(), w.updateWarehouse)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), w.deleteWarehouse)
}

func (w *Warehouses) createWarehouse(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}
	if !auth.FromToken(activeUser).Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	var params models.CreateWarehouseParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	warehouse, err := w.server.store.CreateWarehouse(ctx, db.CreateWarehouseParams{
		Name:         params.Name,
		Location:     params.Location,
		CapacityTons: params.CapacityTons,
	})
	if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.invalidateCache(ctx)
	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("warehouse created", models.ToWarehouseResponse(&warehouse)))
}

func (w *Warehouses) listWarehouses(ctx *gin.Context) {
	if w.server.redis != nil {
		cached, err := w.server.redis.GetWarehouseCollection(ctx)
		if err != nil {
			w.server.logger.Warn(fmt.Sprintf("warehouse cache read failed: %v", err))
		} else if cached != nil {
			ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouses fetched", models.ToWarehouseResponseList(cached)))
			return
		}
	}

	warehouses, err := w.server.store.ListWarehouses(ctx)
	if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if w.server.redis != nil {
		if err := w.server.redis.StoreWarehouseCollection(ctx, warehouses); err != nil {
			w.server.logger.Warn(fmt.Sprintf("warehouse cache write failed: %v", err))
		}
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouses fetched", models.ToWarehouseResponseList(warehouses)))
}

func (w *Warehouses) getWarehouse(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	warehouse, err := w.server.store.GetWarehouse(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WarehouseNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouse fetched", models.ToWarehouseResponse(&warehouse)))
}

func (w *Warehouses) listStock(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	if _, err := w.server.store.GetWarehouse(ctx, id); errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WarehouseNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	stock, err := w.server.store.ListWarehouseStock(ctx, id)
	if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouse stock fetched", models.ToWarehouseStockResponseList(stock)))
}

func (w *Warehouses) updateWarehouse(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}
	if !auth.FromToken(activeUser).Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.CreateWarehouseParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	warehouse, err := w.server.store.UpdateWarehouse(ctx, db.UpdateWarehouseParams{
		ID:           id,
		Name:         params.Name,
		Location:     params.Location,
		CapacityTons: params.CapacityTons,
	})
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WarehouseNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.invalidateCache(ctx)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouse updated", models.ToWarehouseResponse(&warehouse)))
}

func (w *Warehouses) deleteWarehouse(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}
	if !auth.FromToken(activeUser).Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	if err := w.server.store.DeleteWarehouse(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WarehouseNotFound))
			return
		}
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	w.invalidateCache(ctx)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("warehouse deleted", nil))
}

func (w *Warehouses) invalidateCache(ctx *gin.Context) {
	if w.server.redis == nil {
		return
	}
	if err := w.server.redis.InvalidateWarehouseCollection(ctx); err != nil {
		w.server.logger.Warn(fmt.Sprintf("warehouse cache invalidation failed: %v", err))
	}
}
