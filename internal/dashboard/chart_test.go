package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderPie(t *testing.T) {
	ds := fixedSiteDataset()

	tests := []struct {
		name   string
		site   string
		format string
	}{
		{name: "all sites svg", site: domain.AllSites, format: FormatSVG},
		{name: "single site svg", site: domain.SiteKSCLC39A, format: FormatSVG},
		{name: "all sites png", site: domain.AllSites, format: FormatPNG},
		{name: "site without records", site: "nowhere", format: FormatSVG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := RenderPie(&buf, SiteSuccesses(ds, tt.site), tt.format, ChartOptions{})
			require.NoError(t, err)
			assertImage(t, buf.Bytes(), tt.format)
		})
	}
}

func TestRenderScatter(t *testing.T) {
	ds := fixedSiteDataset()

	tests := []struct {
		name   string
		site   string
		rng    PayloadRange
		format string
	}{
		{name: "all sites svg", site: domain.AllSites, rng: PayloadRange{Low: 0, High: 9600}, format: FormatSVG},
		{name: "single site png", site: domain.SiteCCAFSLC40, rng: PayloadRange{Low: 500, High: 2000}, format: FormatPNG},
		{name: "zero width range", site: domain.AllSites, rng: PayloadRange{Low: 3000, High: 3000}, format: FormatSVG},
		{name: "site without records", site: "nowhere", rng: PayloadRange{Low: 0, High: 10000}, format: FormatSVG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := RenderScatter(&buf, PayloadScatter(ds, tt.site, tt.rng), tt.format, ChartOptions{Width: 640, Height: 360})
			require.NoError(t, err)
			assertImage(t, buf.Bytes(), tt.format)
		})
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := RenderPie(&buf, PieFigure{}, "gif", ChartOptions{})
	require.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)

	err = RenderScatter(&buf, ScatterFigure{}, "jpeg", ChartOptions{})
	require.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)

	assert.Zero(t, buf.Len())
}

func TestContentType(t *testing.T) {
	ct, err := ContentType(FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", ct)

	ct, err = ContentType(FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = ContentType("bmp")
	require.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestSeriesColorHex(t *testing.T) {
	assert.Regexp(t, `^#[0-9a-f]{6}$`, seriesColorHex(0))
	assert.NotEqual(t, seriesColorHex(0), seriesColorHex(1))
}

func assertImage(t *testing.T, data []byte, format string) {
	t.Helper()

	require.NotEmpty(t, data)

	switch format {
	case FormatSVG:
		assert.Contains(t, string(data), "<svg")
	case FormatPNG:
		assert.True(t, bytes.HasPrefix(data, pngMagic), "missing PNG signature")
	}
}
