package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
)

const selectLaunchesSQL = `
SELECT flight_number, launch_site, payload_mass_kg, class, booster_version, booster_version_category
FROM launches
ORDER BY id`

// LoadLaunches returns every stored launch in import order.
func (db *DB) LoadLaunches(ctx context.Context) ([]domain.Launch, error) {
	rows, err := db.Pool.Query(ctx, selectLaunchesSQL)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}

	launches, err := pgx.CollectRows(rows, scanLaunch)
	if err != nil {
		return nil, fmt.Errorf("scan launches: %w", err)
	}

	return launches, nil
}

func scanLaunch(row pgx.CollectableRow) (domain.Launch, error) {
	var (
		l        domain.Launch
		class    int16
		category *string
	)

	if err := row.Scan(&l.FlightNumber, &l.LaunchSite, &l.PayloadMassKg, &class, &l.BoosterVersion, &category); err != nil {
		return domain.Launch{}, fmt.Errorf("scan launch row: %w", err)
	}

	l.Class = int(class)
	if category != nil {
		l.BoosterVersionCategory = *category
	}

	return l, nil
}

// ReplaceLaunches atomically replaces the stored launches with the given records.
func (db *DB) ReplaceLaunches(ctx context.Context, launches []domain.Launch) (err error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				db.Logger.Error().Err(rbErr).Msg("rollback launch import failed")
			}
		}
	}()

	if _, err = tx.Exec(ctx, "TRUNCATE TABLE "+launchesTable+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncate launches: %w", err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{launchesTable}, launchColumns, pgx.CopyFromSlice(len(launches), func(i int) ([]any, error) {
		return launchRow(launches[i]), nil
	}))
	if err != nil {
		return fmt.Errorf("copy launches: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit launches: %w", err)
	}

	db.Logger.Info().Int64("rows", copied).Msg("launches imported")

	return nil
}

func launchRow(l domain.Launch) []any {
	var category *string
	if l.BoosterVersionCategory != "" {
		category = &l.BoosterVersionCategory
	}

	return []any{
		int32(l.FlightNumber), //nolint:gosec // flight numbers are parsed as 32-bit
		l.LaunchSite,
		l.PayloadMassKg,
		int16(l.Class), //nolint:gosec // class is 0 or 1
		l.BoosterVersion,
		category,
	}
}
