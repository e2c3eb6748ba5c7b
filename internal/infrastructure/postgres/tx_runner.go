package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

var _ billing.SalesTxRunner = (*TxRunner)(nil)

const txMaxAttempts = 3

// TxRunner ejecuta el registro de un documento de venta dentro de una transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales ejecuta fn con el repo de documentos atado a la tx: consecutivo, cabecera y líneas
// quedan juntos o no queda nada. Ante conflicto de serialización o deadlock reintenta
// hasta txMaxAttempts veces; fn debe poder repetirse.
func (r *TxRunner) RunSales(ctx context.Context, fn func(docRepo repository.SalesDocumentRepository) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			return fn(NewSalesDocumentRepository(tx))
		})
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 20 * time.Millisecond):
		}
	}
	return err
}

// isRetryable serialization_failure (40001) o deadlock_detected (40P01).
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
