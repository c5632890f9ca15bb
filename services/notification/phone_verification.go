package service

import (
	"errors"

	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

type Twilio struct {
	Config *utils.Config
}

func (t *Twilio) SendVerificationCode(phone string) error {
	var client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   t.Config.TwilioKeySid,
		Password:   t.Config.TwilioKeySecret,
		AccountSid: t.Config.TwilioAccountSid,
	})

	if t.Config.TwilioVerifyServiceSid == "" {
		return errors.New("twilio Verify Service SID is not configured")
	}

	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	_, err := client.VerifyV2.CreateVerification(t.Config.TwilioVerifyServiceSid, params)
	if err != nil {
		return err
	}

	return nil
}

func (t *Twilio) CheckVerificationCode(phone string, code string) (bool, error) {
	var client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   t.Config.TwilioKeySid,
		Password:   t.Config.TwilioKeySecret,
		AccountSid: t.Config.TwilioAccountSid,
	})
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := client.VerifyV2.CreateVerificationCheck(t.Config.TwilioVerifyServiceSid, params)
	if err != nil {
		return false, err
	}

	return *resp.Status == "approved", nil
}
