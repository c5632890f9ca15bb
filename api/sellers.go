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

type Sellers struct {
	server *Server
}

func (s Sellers) router(server *Server) {
	s.server = server

	serverGroupV1 := server.router.Group("/api/v1/sellers")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), s.createSeller)
	serverGroupV1.GET("", AuthenticatedMiddleware(), s.listSellers)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), s.getSeller)
	serverGroupV1.PUT(":id", AuthenticatedMiddleware(), VerifiedMiddleware(), s.updateSeller)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), s.deleteSeller)
}

func (s *Sellers) createSeller(ctx *gin.Context) {
	var params models.CreateSellerParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	seller, err := s.server.store.CreateSeller(ctx, db.CreateSellerParams{
		BusinessName: params.BusinessName,
		ContactName:  params.ContactName,
		PhoneNumber:  params.PhoneNumber,
		Region:       params.Region,
		CreatedBy:    activeUser.UserID,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			ctx.JSON(http.StatusConflict, basemodels.NewError("seller with this phone number already exists"))
			return
		}
		s.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("seller registered", models.ToSellerResponse(&seller)))
}

func (s *Sellers) getSeller(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	seller, err := s.server.store.GetSeller(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.SellerNotFound))
		return
	} else if err != nil {
		s.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("seller fetched", models.ToSellerResponse(&seller)))
}

func (s *Sellers) updateSeller(ctx *gin.Context) {
	id, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.CreateSellerParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRegistry))
		return
	}

	seller, err := s.server.store.UpdateSeller(ctx, db.UpdateSellerParams{
		ID:           id,
		BusinessName: params.BusinessName,
		ContactName:  params.ContactName,
		PhoneNumber:  params.PhoneNumber,
		Region:       params.Region,
	})
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.SellerNotFound))
		return
	} else if err != nil {
		s.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("seller updated", models.ToSellerResponse(&seller)))
}

func (s *Sellers) deleteSeller(ctx *gin.Context) {
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

	if err := s.server.store.DeleteSeller(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.SellerNotFound))
			return
		}
		s.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("seller deleted", nil))
}

func (s *Sellers) listSellers(ctx *gin.Context) {
	var region sql.NullString
	if raw := ctx.Query("region"); raw != "" {
		region = sql.NullString{String: raw, Valid: true}
	}

	limit, offset := paginationParams(ctx)

	sellers, err := s.server.store.ListSellers(ctx, db.ListSellersParams{
		Region: region,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("sellers fetched", models.ToSellerResponseList(sellers)))
}
