package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_items_added_total",
			Help: "Units added to carts, by product category",
		},
		[]string{"category"},
	)

	cartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations that changed the cart, by operation",
		},
		[]string{"operation"},
	)
)
