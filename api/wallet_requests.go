package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"database/sql"

	"github.com/AgroVault/AgroVault-Backend/api/apistrings"
	httperrors "github.com/AgroVault/AgroVault-Backend/api/errors"
	models "github.com/AgroVault/AgroVault-Backend/api/models"
	basemodels "github.com/AgroVault/AgroVault-Backend/models"
	"github.com/AgroVault/AgroVault-Backend/services/auth"
	"github.com/AgroVault/AgroVault-Backend/services/walletrequest"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletEvents is what the handlers need from the notification
// dispatcher; the tests swap in a no-op.
type walletEvents interface {
	WalletRequestApproved(userID int64, amount string)
	WalletRequestDeclined(userID int64, reason string)
	WalletRequestConfirmed(userID int64, amount string)
}

type WalletRequests struct {
	server *Server
	engine *walletrequest.Engine
	events walletEvents
}

func (w WalletRequests) router(server *Server) {
	w.server = server
	w.engine = walletrequest.NewEngine(walletrequest.NewSQLStore(server.store), server.logger)
	w.events = server.dispatcher

	serverGroupV1 := server.router.Group("/api/v1/wallet-topup-request")
	serverGroupV1.POST("", AuthenticatedMiddleware(), VerifiedMiddleware(), w.create)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.list)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), w.get)
	serverGroupV1.PUT(":id", AuthenticatedMiddleware(), VerifiedMiddleware(), w.review)
	serverGroupV1.PUT(":id/confirm-receipt", AuthenticatedMiddleware(), w.confirmReceipt)
}

func (w *WalletRequests) create(ctx *gin.Context) {
	var params models.CreateTopUpRequestParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
		return
	}

	created, result, note, err := w.engine.CreateRequest(ctx, walletrequest.CreateParams{
		Identity: auth.FromToken(activeUser),
		Amount:   amount,
		Details: walletrequest.PaymentDetails{
			Method:      walletrequest.PaymentMethod(params.PaymentMethod),
			Provider:    params.Provider,
			PhoneNumber: params.PhoneNumber,
			BankName:    params.BankName,
			BranchName:  params.BranchName,
		},
		Reason: params.Reason,
	})
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	resp := models.ToTopUpRequestResponse(created)
	if result != nil && !result.AlreadyApproved {
		resp.NewBalance = result.NewBalance.String()
		w.events.WalletRequestApproved(created.UserID, created.Amount)
	}

	if note != "" {
		ctx.JSON(http.StatusCreated, basemodels.NewSuccessWithNote("top-up request created", resp, note))
		return
	}
	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("top-up request created", resp))
}

func (w *WalletRequests) review(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	identity := auth.FromToken(activeUser)
	if !identity.Privileged() {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	var params models.ReviewTopUpRequestParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidReviewAction))
		return
	}

	switch walletrequest.NormalizeStatus(params.Status) {
	case walletrequest.StatusApproved:
		w.approve(ctx, identity, requestID, params)
	case walletrequest.StatusDeclined:
		w.decline(ctx, identity, requestID, params)
	default:
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidReviewAction))
	}
}

func (w *WalletRequests) approve(ctx *gin.Context, identity auth.Identity, requestID uuid.UUID, params models.ReviewTopUpRequestParams) {
	var amount decimal.Decimal
	if params.Amount != "" {
		parsed, err := decimal.NewFromString(params.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
			return
		}
		amount = parsed
	}

	result, err := w.engine.ProcessApproval(ctx, walletrequest.ApprovalParams{
		RequestID:   requestID,
		Amount:      amount,
		InitiatedBy: identity.ID,
		Details: walletrequest.PaymentDetails{
			Method:      walletrequest.PaymentMethod(params.PaymentMethod),
			Provider:    params.Provider,
			PhoneNumber: params.PhoneNumber,
			BankName:    params.BankName,
			BranchName:  params.BranchName,
		},
	})
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	resp := models.ToTopUpRequestResponse(&result.Request)
	if result.AlreadyApproved {
		ctx.JSON(http.StatusOK, basemodels.NewSuccess("request was already approved", resp))
		return
	}

	resp.NewBalance = result.NewBalance.String()
	w.events.WalletRequestApproved(result.Request.UserID, result.Request.Amount)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("top-up request approved", resp))
}

func (w *WalletRequests) decline(ctx *gin.Context, identity auth.Identity, requestID uuid.UUID, params models.ReviewTopUpRequestParams) {
	declined, err := w.engine.Decline(ctx, walletrequest.DeclineParams{
		RequestID:   requestID,
		InitiatedBy: identity.ID,
		Reason:      params.DeclineReason(),
	})
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	w.events.WalletRequestDeclined(declined.UserID, declined.RejectionReason.String)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("top-up request declined", models.ToTopUpRequestResponse(declined)))
}

func (w *WalletRequests) confirmReceipt(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	confirmed, err := w.engine.ConfirmReceipt(ctx, walletrequest.ConfirmParams{
		RequestID: requestID,
		UserID:    activeUser.UserID,
	})
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	w.events.WalletRequestConfirmed(confirmed.UserID, confirmed.Amount)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("receipt confirmed", models.ToTopUpRequestResponse(confirmed)))
}

func (w *WalletRequests) list(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	params := walletrequest.ListParams{
		Identity:      auth.FromToken(activeUser),
		Status:        ctx.Query("status"),
		PaymentMethod: ctx.Query("payment_method"),
	}

	if raw := ctx.Query("user_id"); raw != "" {
		userID, err := models.DecodeID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
			return
		}
		params.UserID = userID
	}

	if raw := ctx.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
			return
		}
		params.From = sql.NullTime{Time: from, Valid: true}
	}
	if raw := ctx.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
			return
		}
		params.To = sql.NullTime{Time: to, Valid: true}
	}

	if raw := ctx.Query("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
			return
		}
		params.Page = int32(page)
	}
	if raw := ctx.Query("page_size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
			return
		}
		params.PageSize = int32(size)
	}

	result, err := w.engine.List(ctx, params)
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(
		"top-up requests fetched",
		models.ToTopUpRequestCollection(result.Requests, result.Total, result.Page, result.PageSize),
	))
}

func (w *WalletRequests) get(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidID))
		return
	}

	request, err := w.engine.Get(ctx, auth.FromToken(activeUser), requestID)
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("top-up request fetched", models.ToTopUpRequestResponse(request)))
}

// respondError maps engine errors onto response codes: business and
// validation failures are 400s, ownership is 403, unknown IDs are 404,
// anything else is a masked 500.
func (w *WalletRequests) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, walletrequest.ErrRequestNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.RequestNotFound))
	case errors.Is(err, walletrequest.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.OwnerOnlyConfirm))
	case errors.Is(err, walletrequest.ErrNotPrivileged):
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotPermitted))
	case errors.Is(err, walletrequest.ErrInsufficientFunds):
		ctx.JSON(http.StatusBadRequest, basemodels.NewErrorWithDetails(err.Error(), []string{httperrors.InsufficientFloatMessage}))
	case errors.Is(err, walletrequest.ErrInvalidState):
		ctx.JSON(http.StatusBadRequest, basemodels.NewErrorWithDetails(err.Error(), []string{httperrors.RequestImmutableMessage}))
	case errors.Is(err, walletrequest.ErrInvalidAmount),
		errors.Is(err, walletrequest.ErrInvalidMethod),
		errors.Is(err, walletrequest.ErrMissingMethodInfo),
		errors.Is(err, walletrequest.ErrReasonRequired),
		errors.Is(err, walletrequest.ErrReasonTooLong),
		errors.Is(err, walletrequest.ErrAppWalletMissing):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(err.Error()))
	default:
		w.logError(err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}

func (w *WalletRequests) logError(err error) {
	if w.server == nil {
		return
	}
	var wErr *walletrequest.WalletRequestError
	if errors.As(err, &wErr) {
		w.server.logger.Error("Wallet Request Error", wErr.ErrorOut())
		return
	}
	w.server.logger.Error("Wallet Request Error", err)
}
