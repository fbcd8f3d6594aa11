package booking

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"booking-payment/internal/models"
	"booking-payment/pkg/payment"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Client-facing messages.
const (
	msgInvalidJSON      = "Некорректный формат JSON"
	msgMissingFields    = "Заполните все обязательные поля"
	msgInvalidAmount    = "Некорректная сумма платежа"
	msgMethodNotAllowed = "Метод не поддерживается"
	msgProviderError    = "Ошибка Stripe: "
	msgInternalError    = "Внутренняя ошибка сервера"
)

const (
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerAllowHeaders = "Access-Control-Allow-Headers"
	headerContentType  = "Content-Type"
	headerRequestID    = "X-Request-Id"
)

// Handler handles booking payment requests.
type Handler struct {
	svc         ServiceInterface
	validate    *validator.Validate
	allowOrigin string
	log         zerolog.Logger
}

// NewHandler creates a new booking payment handler.
func NewHandler(svc ServiceInterface, allowOrigin string, log zerolog.Logger) *Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &Handler{
		svc:         svc,
		validate:    newValidator(),
		allowOrigin: allowOrigin,
		log:         log,
	}
}

// newValidator registers "nonzero", which rejects numeric fields equal to zero.
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("nonzero", func(fl validator.FieldLevel) bool {
		n, ok := fl.Field().Interface().(json.Number)
		if !ok {
			return !fl.Field().IsZero()
		}
		f, _ := n.Float64()
		return f != 0
	})
	if err != nil {
		panic(fmt.Sprintf("booking: register nonzero validation: %v", err))
	}
	return v
}

// validatePayload reports falsy or absent required fields as ErrMissingFields.
func (h *Handler) validatePayload(payload models.BookingPaymentRequest) error {
	if err := h.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMissingFields, err)
	}
	return nil
}

// Handle is the Lambda entry point. It never returns an error: every failure
// is turned into a JSON response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	method := req.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}
	log := h.log.With().Str("request_id", requestID).Str("method", method).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("handler panicked")
			resp = h.jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternalError})
			err = nil
		}
		resp.Headers[headerRequestID] = requestID
	}()

	switch method {
	case http.MethodOptions:
		resp = h.preflight()
	case http.MethodPost:
		resp = h.createPayment(ctx, req, log)
	default:
		resp = h.jsonResponse(http.StatusMethodNotAllowed, models.ErrorResponse{Error: msgMethodNotAllowed})
	}

	log.Info().Int("status", resp.StatusCode).Msg("request handled")
	return resp, nil
}

func (h *Handler) createPayment(ctx context.Context, req events.APIGatewayProxyRequest, log zerolog.Logger) events.APIGatewayProxyResponse {
	payload, err := decodePayload(req)
	if err != nil {
		log.Debug().Err(err).Msg("invalid request body")
		return h.jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidJSON})
	}

	if err := h.validatePayload(payload); err != nil {
		log.Debug().Err(err).Msg("validation failed")
		return h.jsonResponse(http.StatusBadRequest, models.ErrorResponse{
			Error:    msgMissingFields,
			Required: models.RequiredFields,
		})
	}

	result, err := h.svc.CreatePayment(ctx, payload)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			log.Warn().Err(err).Msg("rejected booking amount")
			return h.jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidAmount})
		}
		log.Error().Err(err).Msg("Handler.createPayment")
		return h.jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: msgProviderError + providerMessage(err)})
	}

	return h.jsonResponse(http.StatusOK, result)
}

func decodePayload(req events.APIGatewayProxyRequest) (models.BookingPaymentRequest, error) {
	var payload models.BookingPaymentRequest

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return payload, fmt.Errorf("%w: %v", models.ErrInvalidJSON, err)
		}
		body = decoded
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", models.ErrInvalidJSON, err)
	}
	return payload, nil
}

// providerMessage extracts the provider's own text from err.
func providerMessage(err error) string {
	var perr *payment.ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

func (h *Handler) preflight() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			headerAllowOrigin:  h.allowOrigin,
			headerAllowMethods: "POST, OPTIONS",
			headerAllowHeaders: "Content-Type",
		},
		Body:            "",
		IsBase64Encoded: false,
	}
}

func (h *Handler) jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		h.log.Error().Err(err).Msg("Handler.jsonResponse: marshal")
		status = http.StatusInternalServerError
		data = []byte(`{"error":"` + msgInternalError + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			headerContentType: "application/json",
			headerAllowOrigin: h.allowOrigin,
		},
		Body:            string(data),
		IsBase64Encoded: false,
	}
}

// RegisterRoutes mounts the handler on a plain HTTP server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.Any("/", h.ServeEcho)
	e.Any("/payment", h.ServeEcho)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ServeEcho adapts an HTTP request into a proxy event and writes back the
// response produced by Handle.
func (h *Handler) ServeEcho(c echo.Context) error {
	r := c.Request()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidJSON})
	}

	event := events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Body:       string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		},
	}

	resp, err := h.Handle(r.Context(), event)
	if err != nil {
		return err
	}

	for k, v := range resp.Headers {
		c.Response().Header().Set(k, v)
	}
	if resp.Body == "" {
		return c.NoContent(resp.StatusCode)
	}
	return c.Blob(resp.StatusCode, resp.Headers[headerContentType], []byte(resp.Body))
}
