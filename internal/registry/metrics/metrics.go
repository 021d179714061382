// Package metrics holds the Prometheus metrics for the registry module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry lifecycle metrics. A nil *Metrics is valid and
// records nothing, so services can run without metrics wired.
type Metrics struct {
	Registrations   prometheus.Counter
	Renewals        prometheus.Counter
	AddressChanges  prometheus.Counter
	RegistrationFee prometheus.Histogram
}

// New creates and registers all registry metrics with the default registerer.
// Call once per process.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cidreg_registrations_total",
			Help: "Total number of successful CID registrations",
		}),
		Renewals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cidreg_renewals_total",
			Help: "Total number of successful CID renewals",
		}),
		AddressChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cidreg_address_changes_total",
			Help: "Total number of target address bindings and unbindings",
		}),
		RegistrationFee: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cidreg_registration_fee",
			Help:    "Fee charged per registration or renewal, in the smallest currency unit",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

func (m *Metrics) IncRegistrations() {
	if m != nil {
		m.Registrations.Inc()
	}
}

func (m *Metrics) IncRenewals() {
	if m != nil {
		m.Renewals.Inc()
	}
}

func (m *Metrics) IncAddressChanges() {
	if m != nil {
		m.AddressChanges.Inc()
	}
}

func (m *Metrics) ObserveFee(fee uint64) {
	if m != nil {
		m.RegistrationFee.Observe(float64(fee))
	}
}
