package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJaeger(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{name: "collector", endpoint: "http://localhost:14268/api/traces"},
		{name: "agent", endpoint: "localhost:6831"},
		{name: "empty", endpoint: "", wantErr: true},
		{name: "agent without port", endpoint: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := NewJaeger(tt.endpoint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, exp.Shutdown(context.Background()))
		})
	}
}
