package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkouts_total",
		Help: "Checkouts finalizados por resultado (committed, aborted)",
	}, []string{"result"})

	CheckoutAbortsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_aborts_total",
		Help: "Checkouts abortados por fase y motivo",
	}, []string{"phase", "reason"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_latency_seconds",
		Help:    "Duración de la transacción de checkout",
		Buckets: prometheus.DefBuckets,
	})

	OrderGrandTotalCents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_order_grand_total_cents",
		Help: "Suma de grand_total (en centavos) de las órdenes confirmadas",
	})

	StockDecrementsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_decrements_failed_total",
		Help: "Descuentos de stock rechazados (insufficient, conflict)",
	}, []string{"reason"})

	InventoryMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_inventory_movements_total",
		Help: "Movimientos de inventario registrados por motivo",
	}, []string{"reason"})

	CartLinesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cart_lines_added_total",
		Help: "Líneas agregadas a carritos",
	})

	CartLinesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_lines_rejected_total",
		Help: "Líneas rechazadas al agregar al carrito",
	}, []string{"reason"})

	EventsPublishFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_events_publish_failed_total",
		Help: "Eventos OrderCommitted que no se pudieron publicar",
	})

	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_db_query_duration_seconds",
		Help:    "Latencia de consultas a PostgreSQL por resultado (ok, conflict, error)",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
