// Package pgio loads the enriched observation table into PostgreSQL for
// downstream analysis.
package pgio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/biodivbd/lepiobs/internal/ent/export"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgio struct {
	db  *pgxpool.Pool
	cfg config.Config
}

// New returns a new instance of Exporter connected to PostgreSQL.
func New(cfg config.Config) (export.Exporter, error) {
	db, err := pgxConn(cfg)
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	return &pgio{db: db, cfg: cfg}, nil
}

// Export recreates the observations table and bulk-loads the records.
func (e *pgio) Export(recs []record.Observation) error {
	defer e.db.Close()

	if err := e.createTable(); err != nil {
		slog.Error("Cannot create observations table", "error", err)
		return err
	}

	var total int64
	for start := 0; start < len(recs); start += e.cfg.BatchSize {
		end := start + e.cfg.BatchSize
		if end > len(recs) {
			end = len(recs)
		}
		saved, err := e.insertRows(recs[start:end])
		if err != nil {
			slog.Error("Cannot insert observations", "error", err)
			return err
		}
		total += saved
	}

	slog.Info("Exported observations", "rows", humanize.Comma(total))
	return nil
}

func (e *pgio) createTable() error {
	qs := []string{
		"DROP TABLE IF EXISTS observations",
		`CREATE TABLE observations (
  id uuid PRIMARY KEY,
  post_text text NOT NULL,
  observed_on varchar(50),
  location varchar(255),
  latitude double precision,
  longitude double precision,
  genus varchar(100),
  species varchar(100),
  common_name varchar(255)
)`,
	}
	for i := range qs {
		_, err := e.db.Exec(context.Background(), qs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *pgio) insertRows(recs []record.Observation) (int64, error) {
	columns := []string{
		"id", "post_text", "observed_on", "location",
		"latitude", "longitude", "genus", "species", "common_name",
	}
	rows := make([][]any, len(recs))
	for i, r := range recs {
		var lat, lon any
		if r.HasCoords {
			lat, lon = r.Lat, r.Lon
		}
		rows[i] = []any{
			r.ID, r.Text, nullable(r.Date), nullable(r.Location),
			lat, lon, nullable(r.Genus), nullable(r.Species),
			nullable(r.CommonName),
		}
	}

	copyCount, err := e.db.CopyFrom(
		context.Background(),
		pgx.Identifier{"observations"},
		columns,
		pgx.CopyFromRows(rows),
	)
	return copyCount, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func pgxConn(cfg config.Config) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(opts(cfg))
	if err != nil {
		slog.Error("Cannot parse pgx config", "error", err)
		return nil, err
	}
	pgxCfg.MaxConns = 15

	db, err := pgxpool.NewWithConfig(
		context.Background(),
		pgxCfg,
	)
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	return db, nil
}

func opts(cfg config.Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.PgHost, cfg.PgUser, cfg.PgPass, cfg.PgDB)
}
