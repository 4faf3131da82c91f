package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
	"github.com/lueurxax/launch-dashboard/internal/platform/config"
)

const launchesCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
2,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT
3,VAFB SLC-4E,1,9600.0,F9 B4 B1041.1,B4
`

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	logger := zerolog.Nop()

	return New(cfg, &logger)
}

func TestApp_LoadDataset_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.csv")
	require.NoError(t, os.WriteFile(path, []byte(launchesCSV), 0o600))

	a := newTestApp(t, &config.Config{DatasetSource: config.DatasetSourceCSV, DatasetPath: path})

	ds, err := a.LoadDataset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.InDelta(t, 0.0, ds.MinPayload, 0)
	assert.InDelta(t, 9600.0, ds.MaxPayload, 0)
}

func TestApp_LoadDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{
			name:    "missing file",
			cfg:     &config.Config{DatasetSource: config.DatasetSourceCSV, DatasetPath: filepath.Join(t.TempDir(), "absent.csv")},
			wantErr: apperrors.ErrDatasetNotFound,
		},
		{
			name:    "unknown source",
			cfg:     &config.Config{DatasetSource: "s3"},
			wantErr: apperrors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestApp(t, tt.cfg).LoadDataset(context.Background())

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestApp_RunImportRequiresDSN(t *testing.T) {
	a := newTestApp(t, &config.Config{DatasetSource: config.DatasetSourceCSV, DatasetPath: "launches.csv"})

	err := a.RunImport(context.Background())
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestDatasetReadiness(t *testing.T) {
	assert.ErrorIs(t, datasetReadiness(nil)(context.Background()), errDatasetNotLoaded)

	ds, err := dataset.Parse(strings.NewReader(launchesCSV))
	require.NoError(t, err)

	assert.NoError(t, datasetReadiness(ds)(context.Background()))
}
