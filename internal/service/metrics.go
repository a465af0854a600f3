package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart store operations",
		},
		[]string{"operation"},
	)

	wishlistOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_wishlist_operations_total",
			Help: "Total number of wishlist actions dispatched",
		},
		[]string{"action"},
	)

	ordersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	storageWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_storage_write_failures_total",
			Help: "Total number of failed persistence writes",
		},
		[]string{"key"},
	)

	storageLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_storage_load_failures_total",
			Help: "Total number of persisted values that could not be loaded",
		},
		[]string{"key", "reason"},
	)
)
