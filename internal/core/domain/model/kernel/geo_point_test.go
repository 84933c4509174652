package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	testCases := []struct {
		name      string
		lat, lon  float64
		expectErr bool
	}{
		{name: "bogota", lat: 4.7110, lon: -74.0721},
		{name: "poles and antimeridian", lat: 90, lon: 180},
		{name: "latitude too high", lat: 91, lon: 0, expectErr: true},
		{name: "longitude too low", lat: 0, lon: -181, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tc.lat, tc.lon)
			if tc.expectErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.InDelta(t, tc.lat, p.Latitude(), 1e-9)
			assert.InDelta(t, tc.lon, p.Longitude(), 1e-9)
		})
	}

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p kernel.GeoPoint
		require.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
	})
}
