package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	db "github.com/AgroVault/AgroVault-Backend/db/store"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/services/auth"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type Farmers struct {
	server *Server
}

func (f Farmers) router(server *Server) {
	f.server = server

	serverGroupV1 := server.router.Group("/api/v1/farmers")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), f.createFarmer)
	serverGroupV1.GET("", AuthenticatedMiddleware(), f.listFarmers)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), f.getFarmer)
	serverGroupV1.PUT(":id", AuthenticatedMiddleware(), VerifiedMiddleware(), f.updateFarmer)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), f.deleteFarmer)
}

func (f *Farmers) createFarmer(ctx *gin.Context) {
	var params models.CreateFarmerParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	farmer, err := f.server.store.CreateFarmer(ctx, db.CreateFarmerParams{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		PhoneNumber: params.PhoneNumber,
		Community:   params.Community,
		Region:      params.Region,
		CreatedBy:   activeUser.UserID,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			ctx.JSON(http.StatusConflict, basemodels.NewError("farmer with this phone number already exists"))
			return
		}
		f.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("farmer registered", models.ToFarmerResponse(&farmer)))
}

func (f *Farmers) getFarmer(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	farmer, err := f.server.store.GetFarmer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.FarmerNotFound))
		return
	} else if err != nil {
		f.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("farmer fetched", models.ToFarmerResponse(&farmer)))
}

func (f *Farmers) updateFarmer(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.CreateFarmerParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	farmer, err := f.server.store.UpdateFarmer(ctx, db.UpdateFarmerParams{
		ID:          id,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		PhoneNumber: params.PhoneNumber,
		Community:   params.Community,
		Region:      params.Region,
	})
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.FarmerNotFound))
		return
	} else if err != nil {
		f.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("farmer updated", models.ToFarmerResponse(&farmer)))
}

func (f *Farmers) deleteFarmer(ctx *gin.Context) {
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

	if err := f.server.store.DeleteFarmer(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.FarmerNotFound))
			return
		}
		f.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("farmer deleted", nil))
}

func (f *Farmers) listFarmers(ctx *gin.Context) {
	var region sql.NullString
	if raw := ctx.Query("region"); raw != "" {
		region = sql.NullString{String: raw, Valid: true}
	}

	limit, offset := paginationParams(ctx)

	farmers, err := f.server.store.ListFarmers(ctx, db.ListFarmersParams{
		Region: region,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		f.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("farmers fetched", models.ToFarmerResponseList(farmers)))
}
