package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operación del servicio. Se exponen en /metrics (promhttp).
var (
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolstock_movements_recorded_total",
		Help: "Movimientos registrados en el libro, por dirección.",
	}, []string{"direction"})

	ReceiptsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "toolstock_po_receipts_total",
		Help: "Recepciones de líneas de OC aplicadas.",
	})

	ScansRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "toolstock_below_min_scans_total",
		Help: "Barridos diarios de stock bajo mínimo ejecutados.",
	})

	AlertsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "toolstock_alerts_dispatched_total",
		Help: "Alertas de stock bajo mínimo despachadas.",
	})

	AlertFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "toolstock_alert_failures_total",
		Help: "Fallos de entrega de alertas (no abortan la operación).",
	})
)
