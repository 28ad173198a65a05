package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the game's collectors. A nil *Metrics is valid and records
// nothing, so services can be built without a registry in tests.
type Metrics struct {
	itemsGenerated *prometheus.CounterVec
	inventoryOps   *prometheus.CounterVec
	worldPickups   prometheus.Gauge
	pickupsRemoved *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		itemsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameItemsGenerated,
				Help: HelpTextItemsGenerated,
			},
			[]string{LabelRarity},
		),
		inventoryOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameInventoryOperations,
				Help: HelpTextInventoryOperations,
			},
			[]string{LabelOp, LabelResult},
		),
		worldPickups: f.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricNameWorldPickups,
				Help: HelpTextWorldPickups,
			},
		),
		pickupsRemoved: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNamePickupsRemoved,
				Help: HelpTextPickupsRemoved,
			},
			[]string{LabelReason},
		),
	}
}

// ItemGenerated counts one generated item of the given rarity name.
func (m *Metrics) ItemGenerated(rarity string) {
	if m == nil {
		return
	}
	m.itemsGenerated.WithLabelValues(rarity).Inc()
}

// InventoryOp counts one inventory operation outcome.
func (m *Metrics) InventoryOp(op string, ok bool) {
	if m == nil {
		return
	}
	result := ResultOK
	if !ok {
		result = ResultFail
	}
	m.inventoryOps.WithLabelValues(op, result).Inc()
}

// PickupSpawned increments the live pickup gauge.
func (m *Metrics) PickupSpawned() {
	if m == nil {
		return
	}
	m.worldPickups.Inc()
}

// PickupRemoved decrements the live pickup gauge and records why.
func (m *Metrics) PickupRemoved(reason string) {
	if m == nil {
		return
	}
	m.worldPickups.Dec()
	m.pickupsRemoved.WithLabelValues(reason).Inc()
}
