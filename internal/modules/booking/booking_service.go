package booking

import (
	"context"
	"fmt"
	"time"

	"booking-payment/internal/config"
	"booking-payment/internal/logger"
	"booking-payment/internal/models"
	"booking-payment/pkg/payment"

	"github.com/rs/zerolog"
)

const (
	currencyRUB     = "rub"
	testModeMessage = "Тестовый режим: платёж успешно обработан"
)

// ServiceInterface defines the contract for the booking payment service.
type ServiceInterface interface {
	CreatePayment(ctx context.Context, req models.BookingPaymentRequest) (*models.PaymentResult, error)
}

// Service decides between test mode and a real payment intent.
type Service struct {
	paymentService payment.ServiceInterface // nil means test mode
	timeout        time.Duration
	log            zerolog.Logger
}

// NewService creates a booking service. Passing a nil paymentService puts the
// service in test mode: bookings succeed without contacting any provider.
func NewService(paymentService payment.ServiceInterface, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		paymentService: paymentService,
		timeout:        timeout,
		log:            log,
	}
}

// NewServiceFromConfig wires a Stripe-backed service when a secret key is
// configured and a test-mode service otherwise.
func NewServiceFromConfig(cfg *config.Config, log zerolog.Logger) *Service {
	if cfg.TestMode() {
		return NewService(nil, cfg.PaymentTimeout, log)
	}
	stripeSvc := payment.NewStripeService(payment.StripeConfig{
		SecretKey: cfg.StripeSecretKey,
		APIURL:    cfg.StripeAPIURL,
		Timeout:   cfg.PaymentTimeout,
		Logger:    logger.NewStripeLogger(log),
	})
	return NewService(stripeSvc, cfg.PaymentTimeout, log)
}

// TestMode reports whether no payment provider is configured.
func (s *Service) TestMode() bool {
	return s.paymentService == nil
}

// CreatePayment expects an already validated request.
func (s *Service) CreatePayment(ctx context.Context, req models.BookingPaymentRequest) (*models.PaymentResult, error) {
	if s.TestMode() {
		return testModeResult(req), nil
	}

	amount, err := payment.ToMinorUnits(req.Total)
	if err != nil || amount <= 0 {
		return nil, fmt.Errorf("service.CreatePayment: total %s: %w", req.Total, models.ErrInvalidAmount)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	intent, err := s.paymentService.CreatePaymentIntent(ctx, payment.IntentRequest{
		Amount:       amount,
		Currency:     currencyRUB,
		Description:  fmt.Sprintf("Аренда: %s на %s ч.", req.ApartmentTitle, req.Hours),
		ReceiptEmail: req.CustomerEmail,
		Metadata: map[string]string{
			"apartment_id":   string(req.ApartmentID),
			"hours":          req.Hours.String(),
			"price_per_hour": req.Price.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreatePayment: %w", err)
	}

	s.log.Info().
		Str("payment_intent_id", intent.ID).
		Int64("amount_minor", amount).
		Str("apartment_id", string(req.ApartmentID)).
		Msg("payment intent created")

	return &models.PaymentResult{
		Success:         true,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          req.Total,
		TestMode:        false,
	}, nil
}

func testModeResult(req models.BookingPaymentRequest) *models.PaymentResult {
	return &models.PaymentResult{
		Success:   true,
		Message:   testModeMessage,
		TestMode:  true,
		BookingID: fmt.Sprintf("test_%s_%sh", req.ApartmentID, req.Hours),
		Amount:    req.Total,
		Details: &models.BookingDetails{
			Apartment:    req.ApartmentTitle,
			Hours:        req.Hours,
			PricePerHour: req.Price,
			Total:        req.Total,
			Customer:     req.CustomerEmail,
		},
	}
}
