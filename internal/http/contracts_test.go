package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueFieldDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RevenueField
	}{
		{"string", `{"revenue":"1000"}`, "1000"},
		{"padded string", `{"revenue":" 12.5 "}`, " 12.5 "},
		{"integer", `{"revenue":1000}`, "1000"},
		{"float", `{"revenue":2.675}`, "2.675"},
		{"exponent", `{"revenue":1e3}`, "1e3"},
		{"null", `{"revenue":null}`, ""},
		{"absent", `{"name":"Acme"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CompanyRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Revenue)
		})
	}
}

func TestRevenueFieldRejectsOtherTypes(t *testing.T) {
	for _, body := range []string{`{"revenue":true}`, `{"revenue":{}}`, `{"revenue":[1]}`} {
		var req CompanyRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}
