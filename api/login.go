package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
)

func (a *Auth) login(ctx *gin.Context) {
	var params models.UserLoginParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidPhonePassInput))
		return
	}

	user, err := a.server.store.GetUserByPhone(ctx, params.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.IncorrectPhonePass))
		return
	} else if err != nil {
		a.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if err := utils.VerifyHashValue(params.Password, user.PasswordHash); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.IncorrectPhonePass))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID:   user.ID,
		Roles:    user.Roles,
		Verified: user.Verified,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	userWT := models.UserWithToken{
		User:  models.UserResponse{}.ToUserResponse(&user),
		Token: token,
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("login successful", userWT))
}

func (a *Auth) logout(ctx *gin.Context) {
	tokenSplit := strings.Split(ctx.GetHeader("Authorization"), " ")
	if len(tokenSplit) == 2 {
		// Blacklist the raw token until the claim would have expired
		// anyway.
		a.server.cache.RevokeToken(tokenSplit[1], 100*24*time.Hour)
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("logged out successfully", nil))
}
