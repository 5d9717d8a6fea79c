package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"password": null}`, wantSet: true},
		{name: "empty", body: `{"password": ""}`, wantSet: true, wantValue: strPtr("")},
		{name: "value", body: `{"password": "secret"}`, wantSet: true, wantValue: strPtr("secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateGalleryRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantSet, req.Password.Set)
			assert.Equal(t, tt.wantValue, req.Password.Value)
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", body: `"2024-05-01"`, want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "local datetime", body: `"2024-05-01T10:30:00"`, want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{name: "rfc3339 zulu", body: `"2024-05-01T10:30:00Z"`, want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{name: "garbage", body: `"yesterday"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.body), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time))
		})
	}
}

func strPtr(s string) *string { return &s }
