package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptConfigLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{name: "named zone", timezone: "Asia/Kolkata", want: "Asia/Kolkata"},
		{name: "empty falls back to process zone", timezone: "", want: time.Local.String()},
		{name: "unknown falls back to process zone", timezone: "Mars/Olympus", want: time.Local.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ReceiptConfig{Timezone: tt.timezone}
			assert.Equal(t, tt.want, cfg.Location().String())
		})
	}
}
