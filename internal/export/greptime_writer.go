package export

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient is the subset of the ingester client used by the writer.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeWriter writes point rows to GreptimeDB via the ingester client.
// Trajectory time t (seconds) is mapped onto the time index as epoch + t.
type GreptimeWriter struct {
	client  greptimeClient
	table   string
	epoch   time.Time
	timeout time.Duration
	log     *slog.Logger
}

// NewGreptimeWriter connects to endpoint ("host" or "host:port").
func NewGreptimeWriter(endpoint, database, tableName string, epoch time.Time, log *slog.Logger) (*GreptimeWriter, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("greptime endpoint required")
	}
	host, port := endpoint, 0
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("greptime endpoint port %q: %w", p, err)
		}
		host, port = h, n
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port != 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeWriter{client: client, table: tableName, epoch: epoch, timeout: 30 * time.Second, log: log}, nil
}

func (w *GreptimeWriter) newTable() (*table.Table, error) {
	tbl, err := table.New(w.table)
	if err != nil {
		return nil, err
	}
	cols := []struct {
		add  func(string, types.ColumnType) error
		name string
		typ  types.ColumnType
	}{
		{tbl.AddTagColumn, "agent", types.STRING},
		{tbl.AddTagColumn, "kind", types.STRING},
		{tbl.AddFieldColumn, "agent_order", types.INT64},
		{tbl.AddFieldColumn, "segment", types.INT64},
		{tbl.AddFieldColumn, "point_index", types.INT64},
		{tbl.AddFieldColumn, "x", types.FLOAT64},
		{tbl.AddFieldColumn, "y", types.FLOAT64},
		{tbl.AddFieldColumn, "t", types.FLOAT64},
		{tbl.AddFieldColumn, "endpoint", types.BOOLEAN},
		{tbl.AddTimestampColumn, "ts", types.TIMESTAMP_MILLISECOND},
	}
	for _, c := range cols {
		if err := c.add(c.name, c.typ); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}
	}
	return tbl, nil
}

// WriteRows inserts rows in a single request.
func (w *GreptimeWriter) WriteRows(rows []PointRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := w.newTable()
	if err != nil {
		return err
	}
	for _, r := range rows {
		off, err := Offset(r.T)
		if err != nil {
			return fmt.Errorf("row %s/%d: %w", r.Agent, r.Index, err)
		}
		ts := w.epoch.Add(off)
		err = tbl.AddRow(r.Agent, r.Kind.String(), int64(r.Order), int64(r.Segment), int64(r.Index),
			r.X, r.Y, r.T, r.Endpoint, ts)
		if err != nil {
			return fmt.Errorf("add row %s/%d: %w", r.Agent, r.Index, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if _, err := w.client.Write(ctx, tbl); err != nil {
		w.log.Error("greptime write failed", slog.String("table", w.table), slog.Any("err", err))
		return err
	}
	w.log.Debug("greptime write", slog.String("table", w.table), slog.Int("rows", len(rows)))
	return nil
}
