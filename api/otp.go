package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	db "github.com/AgroVault/AgroVault-Backend/db/store"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	service "github.com/AgroVault/AgroVault-Backend/services/notification"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
)

func (a *Auth) sendOTP(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	user, err := a.server.store.GetUserByID(ctx, activeUser.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	twilio := service.Twilio{Config: a.server.config}
	if err := twilio.SendVerificationCode(user.PhoneNumber); err != nil {
		a.server.logger.Error("Twilio Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("verification code sent", nil))
}

func (a *Auth) verifyOTP(ctx *gin.Context) {
	var params models.UserOTPParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidOTPInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	user, err := a.server.store.GetUserByID(ctx, activeUser.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	twilio := service.Twilio{Config: a.server.config}
	ok, err := twilio.CheckVerificationCode(user.PhoneNumber, params.OTP)
	if err != nil {
		a.server.logger.Error("Twilio Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}
	if !ok {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidOTPInput))
		return
	}

	if err := a.server.store.MarkUserVerified(ctx, user.ID); err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	// Re-issue the token so user_verified in the claim reflects reality.
	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID:   user.ID,
		Roles:    user.Roles,
		Verified: true,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("account verified", gin.H{"token": token}))
}

func (a *Auth) updatePushTokens(ctx *gin.Context) {
	var params models.UpdatePushTokenParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	arg := db.UpdateUserPushTokensParams{
		ID: activeUser.UserID,
	}
	if params.FcmToken != "" {
		arg.FcmToken = sql.NullString{String: params.FcmToken, Valid: true}
	}
	if params.ExpoToken != "" {
		arg.ExpoToken = sql.NullString{String: params.ExpoToken, Valid: true}
	}

	if err := a.server.store.UpdateUserPushTokens(ctx, arg); err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("push tokens updated", nil))
}
