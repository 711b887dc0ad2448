// Package metrics defines and registers all custom Prometheus metrics for
// the discovery API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discovery"

// AccountsProvisionedTotal counts accounts created by lazy provisioning on
// first successful identity verification.
var AccountsProvisionedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_provisioned_total",
		Help:      "Total number of accounts created on first identity resolution.",
	},
)

// ShopsCreatedTotal counts newly created shops.
// Label:
//   - category: the shop category (e.g. "Food", "General")
var ShopsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shops_created_total",
		Help:      "Total number of shops created, by category.",
	},
	[]string{"category"},
)

// ProductsCreatedTotal counts newly created products.
var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)

// SearchesTotal counts discovery queries.
// Label:
//   - kind: "shops", "nearby", or "products"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of discovery queries, by kind.",
	},
	[]string{"kind"},
)

// ProfileFlagErrorsTotal counts failures of the best-effort
// shop_profile_complete write that follows shop creation. When this fires,
// the shop exists but the owner account still reads as
// onboarding-incomplete.
var ProfileFlagErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_flag_errors_total",
		Help:      "Total number of failed shop_profile_complete writes after shop creation.",
	},
)

// GeocodeCacheTotal counts reverse-geocode cache decisions.
// Label:
//   - result: "hit" or "miss"
var GeocodeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_total",
		Help:      "Total number of reverse-geocode cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
