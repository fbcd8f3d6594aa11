package main

import (
	stdlog "log"

	"booking-payment/internal/config"
	"booking-payment/internal/logger"
	"booking-payment/internal/modules/booking"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	handler := booking.NewHandler(booking.NewServiceFromConfig(cfg, log), cfg.AllowOrigin, log)

	log.Info().Bool("test_mode", cfg.TestMode()).Msg("starting lambda handler")
	lambda.Start(handler.Handle)
}
