package api

import (
	"net/http"
	"strconv"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	service "github.com/AgroVault/AgroVault-Backend/services/notification"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Notifications struct {
	server              *Server
	notificationService *service.Notification
}

func (n Notifications) router(server *Server) {
	n.server = server
	n.notificationService = service.NewNotificationService(server.store)

	serverGroupV1 := server.router.Group("/api/v1/notifications")
	serverGroupV1.GET("", AuthenticatedMiddleware(), n.listNotifications)
	serverGroupV1.PUT(":id/read", AuthenticatedMiddleware(), n.markRead)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), n.deleteNotification)
}

func (n *Notifications) listNotifications(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	notifications, err := n.notificationService.Get(ctx, activeUser.UserID)
	if err != nil {
		n.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notifications fetched", models.ToNotificationResponseList(notifications)))
}

func (n *Notifications) markRead(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	if err := n.notificationService.MarkRead(ctx, activeUser.UserID, int32(id)); err != nil {
		n.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notification marked as read", nil))
}

func (n *Notifications) deleteNotification(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	if err := n.notificationService.Delete(ctx, activeUser.UserID, int32(id)); err != nil {
		n.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("notification deleted", nil))
}
