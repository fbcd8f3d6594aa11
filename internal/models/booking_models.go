package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RequiredFields lists the payload keys every booking payment must carry,
// in the order they are reported back to the client.
var RequiredFields = []string{"apartment_id", "apartment_title", "price", "hours", "total", "customer_email"}

// ApartmentID accepts either a JSON string or a JSON number. Numbers keep
// their literal text so that 7 and 7.0 stay distinguishable. Falsy values,
// including the number 0, decode to the empty id.
type ApartmentID string

func (id *ApartmentID) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = ApartmentID(val)
	case json.Number:
		*id = ApartmentID(val.String())
	default:
		return fmt.Errorf("apartment_id must be a string or a number, got %s", data)
	}
	return nil
}

// BookingPaymentRequest is the body of a POST to the payment endpoint.
// Numeric fields keep the caller's literal representation.
type BookingPaymentRequest struct {
	ApartmentID    ApartmentID `json:"apartment_id" validate:"required"`
	ApartmentTitle string      `json:"apartment_title" validate:"required"`
	Price          json.Number `json:"price" validate:"required,nonzero"`
	Hours          json.Number `json:"hours" validate:"required,nonzero"`
	Total          json.Number `json:"total" validate:"required,nonzero"`
	CustomerEmail  string      `json:"customer_email" validate:"required"`
}

// UnmarshalJSON treats every falsy JSON value ("", 0, false, null, [], {})
// as an absent field, so that validation reports it as missing. Truthy
// values of the wrong type are still a decode error.
func (r *BookingPaymentRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out BookingPaymentRequest
	if v, ok := raw["apartment_id"]; ok {
		if err := out.ApartmentID.UnmarshalJSON(v); err != nil {
			return err
		}
	}

	var err error
	if out.ApartmentTitle, err = looseString(raw, "apartment_title"); err != nil {
		return err
	}
	if out.Price, err = looseNumber(raw, "price"); err != nil {
		return err
	}
	if out.Hours, err = looseNumber(raw, "hours"); err != nil {
		return err
	}
	if out.Total, err = looseNumber(raw, "total"); err != nil {
		return err
	}
	if out.CustomerEmail, err = looseString(raw, "customer_email"); err != nil {
		return err
	}

	*r = out
	return nil
}

func looseString(raw map[string]json.RawMessage, key string) (string, error) {
	v, err := decodeLoose(raw[key])
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	default:
		return "", fmt.Errorf("%s must be a string, got %s", key, raw[key])
	}
}

func looseNumber(raw map[string]json.RawMessage, key string) (json.Number, error) {
	v, err := decodeLoose(raw[key])
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil:
		return "", nil
	case json.Number:
		return val, nil
	default:
		return "", fmt.Errorf("%s must be a number, got %s", key, raw[key])
	}
}

// decodeLoose decodes a single JSON value and returns nil when it is falsy.
// Non-falsy values come back as string, json.Number, bool, []interface{} or
// map[string]interface{}.
func decodeLoose(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, nil
		}
	case json.Number:
		if f, _ := strconv.ParseFloat(val.String(), 64); f == 0 {
			return nil, nil
		}
	case bool:
		if !val {
			return nil, nil
		}
	case []interface{}:
		if len(val) == 0 {
			return nil, nil
		}
	case map[string]interface{}:
		if len(val) == 0 {
			return nil, nil
		}
	}
	return v, nil
}

// BookingDetails echoes the submitted booking in a test-mode response.
type BookingDetails struct {
	Apartment    string      `json:"apartment"`
	Hours        json.Number `json:"hours"`
	PricePerHour json.Number `json:"price_per_hour"`
	Total        json.Number `json:"total"`
	Customer     string      `json:"customer"`
}

// PaymentResult is the success body for both test and live mode.
type PaymentResult struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message,omitempty"`
	TestMode        bool            `json:"test_mode"`
	BookingID       string          `json:"booking_id,omitempty"`
	ClientSecret    string          `json:"client_secret,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	Amount          json.Number     `json:"amount"`
	Details         *BookingDetails `json:"details,omitempty"`
}

// ErrorResponse is returned on every failure path.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required,omitempty"`
}
