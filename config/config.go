package config

import (
	"time"

	"com.martdev.kitchenrack/internal/env"
)

type Configuration struct {
	Addr       string
	DB         dbConfig
	AuthConfig authConfig
	OtpConfig  otpConfig
	SmsConfig  smsConfig
}

type dbConfig struct {
	Addr                       string
	MaxOpenConns, MaxIdleConns int
	MaxIdleTime                string
}

type authConfig struct {
	Secret     string
	AccessExp  time.Duration
	RefreshExp time.Duration
	Iss        string
}

type otpConfig struct {
	ValidityMin int
}

type smsConfig struct {
	Provider         string
	BulkSmsBdAPIKey  string
	BulkSmsBdSender  string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

var Config = initConfig()

func initConfig() Configuration {
	return Configuration{
		Addr: env.GetString("ADDR", ":8080"),
		DB: dbConfig{
			Addr:         env.GetString("DB_ADDR", ""),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		AuthConfig: authConfig{
			Secret:     env.GetString("JWT_SECRET", "supperSecret@4356"),
			AccessExp:  env.GetDuration("ACCESS_TOKEN_EXPIRATION", time.Hour*24),
			RefreshExp: env.GetDuration("REFRESH_TOKEN_EXPIRATION", time.Hour*24*30),
			Iss:        "KitchenRack",
		},
		OtpConfig: otpConfig{
			ValidityMin: env.GetInt("OTP_VALIDITY_MIN", 3),
		},
		SmsConfig: smsConfig{
			Provider:         env.GetString("SMS_PROVIDER", "bulksmsbd"),
			BulkSmsBdAPIKey:  env.GetString("BULKSMSBD_API_KEY", ""),
			BulkSmsBdSender:  env.GetString("BULKSMSBD_SENDER_ID", ""),
			TwilioAccountSID: env.GetString("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  env.GetString("TWILIO_AUTH_TOKEN", ""),
			TwilioFrom:       env.GetString("TWILIO_FROM_NUMBER", ""),
		},
	}
}
