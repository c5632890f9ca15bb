package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/AgroVault/AgroVault-Backend/services/monitoring/logging"
	"github.com/AgroVault/AgroVault-Backend/utils"
)

// Dispatcher fans wallet events out to SMS, email and push after the
// engine has committed a transition. Every send is best-effort:
// failures are logged and never surface to the caller, so a
// notification problem can never roll back or fail a state change.
type Dispatcher struct {
	store  *db.Store
	push   *PushNotificationService
	email  *Plunk
	config *utils.Config
	logger *logging.Logger
}

func NewDispatcher(store *db.Store, push *PushNotificationService, config *utils.Config, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		push:   push,
		email:  NewPlunk(config),
		config: config,
		logger: logger,
	}
}

func (d *Dispatcher) WalletRequestApproved(userID int64, amount string) {
	go d.notify(userID, "Top-up approved", fmt.Sprintf("Your wallet top-up of GHS %s has been approved. Please confirm receipt once the funds arrive.", amount))
}

func (d *Dispatcher) WalletRequestDeclined(userID int64, reason string) {
	go d.notify(userID, "Top-up declined", fmt.Sprintf("Your wallet top-up request was declined: %s", reason))
}

func (d *Dispatcher) WalletRequestConfirmed(userID int64, amount string) {
	go d.notify(userID, "Receipt confirmed", fmt.Sprintf("Receipt of GHS %s has been confirmed. Thank you.", amount))
}

func (d *Dispatcher) notify(userID int64, title string, message string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(fmt.Sprintf("notification dispatch panicked for user %d: %v", userID, r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	user, err := d.store.GetUserByID(ctx, userID)
	if err != nil {
		d.logger.Error(fmt.Sprintf("could not load user %d for notification: %v", userID, err))
		return
	}

	if _, err := d.store.CreateNotification(ctx, db.CreateNotificationParams{
		UserID:  sql.NullInt64{Int64: userID, Valid: true},
		Message: message,
	}); err != nil {
		d.logger.Error(fmt.Sprintf("could not persist notification for user %d: %v", userID, err))
	}

	sms := SmsNotification{
		Message:     message,
		PhoneNumber: user.PhoneNumber,
		Config:      d.config,
	}
	if err := sms.SendSMS(); err != nil {
		d.logger.Error(fmt.Sprintf("SMS to user %d failed: %v", userID, err))
	}

	if d.email != nil && user.Email != "" {
		if err := d.email.SendEmail(user.Email, title, message); err != nil {
			d.logger.Error(fmt.Sprintf("email to user %d failed: %v", userID, err))
		}
	}

	if d.push == nil {
		return
	}

	info := &PushNotificationInfo{
		Title:   title,
		Message: message,
		Badge:   1,
	}
	switch {
	case user.ExpoToken.Valid && user.ExpoToken.String != "":
		info.Provider = PushProviderExpo
		info.UserExpoToken = user.ExpoToken.String
	case user.FcmToken.Valid && user.FcmToken.String != "":
		info.Provider = PushProviderFCM
		info.UserFCMToken = user.FcmToken.String
	default:
		return
	}

	if err := d.push.SendPush(info); err != nil {
		d.logger.Error(fmt.Sprintf("push to user %d failed: %v", userID, err))
	}
}
