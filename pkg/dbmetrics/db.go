package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/metrics"
)

// DBExecutor общий интерфейс выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx,
// поэтому репозитории не зависят от конкретного типа
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс выполнения запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обертка над *sql.DB, записывающая метрики каждого запроса
type DB struct {
	db          *sql.DB
	collector   *metrics.Metrics
	serviceName string
}

// Wrap оборачивает *sql.DB для сбора метрик запросов
func Wrap(db *sql.DB, collector *metrics.Metrics, serviceName string) *DB {
	return &DB{db: db, collector: collector, serviceName: serviceName}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// метрик connection pool; сбор останавливается закрытием stopCh
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector, serviceName)
	go wrapped.collectPoolStats(15*time.Second, stopCh)
	return wrapped
}

// collectPoolStats периодически публикует статистику connection pool
func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.DBPoolOpenConnections.WithLabelValues(d.serviceName).Set(float64(stats.OpenConnections))
			d.collector.DBPoolInUseConnections.WithLabelValues(d.serviceName).Set(float64(stats.InUse))
			d.collector.DBPoolIdleConnections.WithLabelValues(d.serviceName).Set(float64(stats.Idle))
		}
	}
}

func (d *DB) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.collector.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	d.collector.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ExecContext выполняет запрос без результата, записывая метрики
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return res, err
}

// QueryContext выполняет запрос с результатом, записывая метрики
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с одной строкой результата
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

// BeginTx начинает транзакцию; возвращаемый Tx также записывает метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

// Tx обертка над *sql.Tx с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

// ExecContext выполняет запрос внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe("tx_exec", start, err)
	return res, err
}

// QueryContext выполняет запрос с результатом внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe("tx_query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с одной строкой внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe("tx_query_row", start, nil)
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
