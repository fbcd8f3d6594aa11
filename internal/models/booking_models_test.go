package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApartmentIDUnmarshal(t *testing.T) {
	tests := []struct {
		body string
		want ApartmentID
	}{
		{`{"apartment_id":"A1"}`, "A1"},
		{`{"apartment_id":7}`, "7"},
		{`{"apartment_id":7.0}`, "7.0"},
		{`{"apartment_id":null}`, ""},
		{`{}`, ""},
		{`{"apartment_id":0}`, ""},
		{`{"apartment_id":0.0}`, ""},
		{`{"apartment_id":-0}`, ""},
		{`{"apartment_id":false}`, ""},
		{`{"apartment_id":""}`, ""},
		{`{"apartment_id":[]}`, ""},
		{`{"apartment_id":{}}`, ""},
	}
	for _, tt := range tests {
		var req BookingPaymentRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.want, req.ApartmentID, tt.body)
	}
}

func TestApartmentIDRejectsOtherTypes(t *testing.T) {
	for _, body := range []string{`{"apartment_id":true}`, `{"apartment_id":{"a":1}}`, `{"apartment_id":[1]}`} {
		var req BookingPaymentRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestBookingPaymentRequestKeepsNumberLiterals(t *testing.T) {
	var req BookingPaymentRequest
	body := `{"price":1000,"hours":2.5,"total":2500.00}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "1000", req.Price.String())
	assert.Equal(t, "2.5", req.Hours.String())
	assert.Equal(t, "2500.00", req.Total.String())
}

func TestBookingPaymentRequestFalsyValuesAreEmpty(t *testing.T) {
	for _, falsy := range []string{`null`, `""`, `0`, `0.0`, `false`, `[]`, `{}`} {
		body := `{"apartment_title":` + falsy + `,"price":` + falsy + `,"hours":` + falsy +
			`,"total":` + falsy + `,"customer_email":` + falsy + `}`

		var req BookingPaymentRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, BookingPaymentRequest{}, req, body)
	}
}

func TestBookingPaymentRequestRejectsTruthyWrongTypes(t *testing.T) {
	for _, body := range []string{
		`{"apartment_title":5}`,
		`{"customer_email":true}`,
		`{"price":"abc"}`,
		`{"hours":true}`,
		`{"total":[1]}`,
		`[]`,
		`"text"`,
	} {
		var req BookingPaymentRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestErrorResponseOmitsEmptyRequired(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(data))
}
