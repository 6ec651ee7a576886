package tasks

import "github.com/hibiken/asynq"

// Tipos de tarea de la cola.
const (
	// TypeDailyScan barrido diario de herramientas bajo mínimo.
	TypeDailyScan = "stock:daily_scan"
)

// NewDailyScanTask crea la tarea del barrido diario. No lleva payload: el
// barrido siempre opera sobre el conjunto actual de herramientas activas.
func NewDailyScanTask() *asynq.Task {
	return asynq.NewTask(TypeDailyScan, nil)
}
