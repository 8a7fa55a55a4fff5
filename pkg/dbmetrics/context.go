package dbmetrics

import "context"

type ctxKey struct{}

// executorKey ключ контекста для активной транзакции
var executorKey = ctxKey{}

// WithExecutor кладет транзакцию в контекст
// Используется transaction manager'ами, чтобы репозитории прозрачно
// выполняли запросы внутри активной транзакции
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, tx)
}

// GetExecutor возвращает активную транзакцию из контекста
// Если транзакции нет - возвращает переданный по умолчанию executor
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}
