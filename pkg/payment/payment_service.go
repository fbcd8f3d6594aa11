package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// ServiceInterface defines the contract for a payment provider.
type ServiceInterface interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// IntentRequest describes a charge to be authorized by the client-side SDK.
// Amount is in minor currency units.
type IntentRequest struct {
	Amount       int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// Intent is the subset of the provider's payment intent the caller needs.
type Intent struct {
	ID           string
	ClientSecret string
}

// StripeConfig configures a StripeService.
type StripeConfig struct {
	SecretKey string
	// APIURL overrides the Stripe API base URL, e.g. for stripe-mock.
	APIURL  string
	Timeout time.Duration
	Logger  stripe.LeveledLoggerInterface
}

// StripeService creates payment intents through the Stripe API.
type StripeService struct {
	api *client.API
}

// NewStripeService builds a client bound to cfg.SecretKey. Network retries are
// disabled: a failed call surfaces to the caller immediately.
func NewStripeService(cfg StripeConfig) *StripeService {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	// GetBackendWithConfig fills in defaults, so each backend gets its own config.
	backendConfig := func(url string) *stripe.BackendConfig {
		bc := &stripe.BackendConfig{
			HTTPClient:        httpClient,
			MaxNetworkRetries: stripe.Int64(0),
			EnableTelemetry:   stripe.Bool(false),
		}
		if cfg.Logger != nil {
			bc.LeveledLogger = cfg.Logger
		}
		if url != "" {
			bc.URL = stripe.String(url)
		}
		return bc
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig(cfg.APIURL)),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig("")),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig("")),
	}

	return &StripeService{api: client.New(cfg.SecretKey, backends)}
}

// CreatePaymentIntent creates a PaymentIntent and returns its id and client secret.
func (s *StripeService) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, NewProviderError("invalid_amount", "amount must be positive", nil)
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.Amount),
		Currency:     stripe.String(req.Currency),
		Description:  stripe.String(req.Description),
		ReceiptEmail: stripe.String(req.ReceiptEmail),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func wrapStripeError(err error) *ProviderError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		code := string(stripeErr.Code)
		if code == "" {
			code = string(stripeErr.Type)
		}
		msg := stripeErr.Msg
		if msg == "" {
			msg = err.Error()
		}
		return NewProviderError(code, msg, err)
	}
	return NewProviderError("api_call_failed", err.Error(), err)
}
