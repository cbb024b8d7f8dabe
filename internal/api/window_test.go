package api

import (
	"testing"

	"github.com/iceforge/skadimon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input   string
		want    Window
		wantErr bool
	}{
		{"15m", Window15m, false},
		{"1h", Window1h, false},
		{" 6H ", Window6h, false},
		{"24h", Window24h, false},
		{"2h", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_Next(t *testing.T) {
	assert.Equal(t, Window1h, Window15m.Next())
	assert.Equal(t, Window6h, Window1h.Next())
	assert.Equal(t, Window24h, Window6h.Next())
	assert.Equal(t, Window15m, Window24h.Next())
	assert.Equal(t, DefaultWindow, Window("bogus").Next())
}

func TestWindow_Label(t *testing.T) {
	assert.Equal(t, "Last 15m", Window15m.Label())
	assert.Equal(t, "24h", Window24h.String())
}
