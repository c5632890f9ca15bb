package api

import (
	"net/http"
	"strconv"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/services/auth"
	activitylogs "github.com/AgroVault/AgroVault-Backend/services/activity_logs"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
)

type ActivityLogs struct {
	server  *Server
	service *activitylogs.ActivityLog
}

func (a ActivityLogs) router(server *Server) {
	a.server = server
	a.service = activitylogs.NewActivityLog(server.store)

	serverGroupV1 := server.router.Group("/api/v1/activity-logs")
	serverGroupV1.GET("recent", AuthenticatedMiddleware(), a.getRecentActivity)
	serverGroupV1.GET("user/:id", AuthenticatedMiddleware(), a.getUserActivity)
}

func (a *ActivityLogs) getUserActivity(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}
	if !auth.FromToken(activeUser).Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	userID, err := models.DecodeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	limit, offset := logWindow(ctx)

	logs, err := a.service.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("activity logs fetched", models.ToActivityLogResponseList(logs)))
}

func (a *ActivityLogs) getRecentActivity(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}
	if !auth.FromToken(activeUser).Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	limit, offset := logWindow(ctx)

	logs, err := a.service.GetRecent(ctx, limit, offset)
	if err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("activity logs fetched", models.ToActivityLogResponseList(logs)))
}

func logWindow(ctx *gin.Context) (int32, int32) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return int32(limit), int32(offset)
}
