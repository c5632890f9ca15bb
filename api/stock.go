package api

import (
	"errors"
	"net/http"

	"database/sql"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/services/stock"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Stock struct {
	server       *Server
	stockService *stock.StockService
}

func (s Stock) router(server *Server) {
	s.server = server
	s.stockService = stock.NewStockService(stock.NewSQLStore(server.store), server.logger)

	serverGroupV1 := server.router.Group("/api/v1/stock-movements")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), s.transfer)
	serverGroupV1.GET("", AuthenticatedMiddleware(), s.listMovements)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), s.getMovement)
}

func (s *Stock) transfer(ctx *gin.Context) {
	var params models.TransferStockParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	fromID, err := models.DecodeID(params.FromWarehouseID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}
	toID, err := models.DecodeID(params.ToWarehouseID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	quantity, err := decimal.NewFromString(params.QuantityKg)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTradeInput))
		return
	}

	movement, err := s.stockService.Transfer(ctx, stock.TransferParams{
		Commodity:       params.Commodity,
		QuantityKg:      quantity,
		FromWarehouseID: fromID,
		ToWarehouseID:   toID,
		InitiatedBy:     activeUser.UserID,
	})
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("stock transferred", models.ToStockMovementResponse(movement)))
}

func (s *Stock) getMovement(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	movement, err := s.stockService.GetMovement(ctx, id)
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("stock movement fetched", models.ToStockMovementResponse(movement)))
}

func (s *Stock) listMovements(ctx *gin.Context) {
	var warehouseID int64
	if raw := ctx.Query("warehouse_id"); raw != "" {
		decoded, err := models.DecodeID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
			return
		}
		warehouseID = decoded
	}

	limit, offset := paginationParams(ctx)
	page := offset/limit + 1

	movements, err := s.stockService.ListMovements(ctx, warehouseID, page, limit)
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("stock movements fetched", models.ToStockMovementResponseList(movements)))
}

func (s *Stock) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, stock.ErrWarehouseNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WarehouseNotFound))
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, stock.ErrSameWarehouse),
		errors.Is(err, stock.ErrInvalidQuantity):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
	case errors.Is(err, sql.ErrNoRows):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.MovementNotFound))
	default:
		s.server.logger.Error("Stock Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
