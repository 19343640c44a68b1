package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_state_actions_total",
			Help: "Total number of dispatched state actions",
		},
		[]string{"action"},
	)

	cartLines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_lines",
		Help: "Number of distinct products in the local cart",
	})

	cartTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_total_quantity",
		Help: "Cart total as last reported by the server",
	})

	wishlistItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_wishlist_items",
		Help: "Number of products on the wishlist",
	})

	sessionAuthenticated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_session_authenticated",
		Help: "1 when a session is active, 0 otherwise",
	})
)

// MetricsListener keeps the state gauges in step with the store.
func MetricsListener() Listener {
	return func(a Action, st State) {
		actionsTotal.WithLabelValues(a.Kind()).Inc()
		cartLines.Set(float64(len(st.Cart.Lines)))
		cartTotal.Set(float64(st.Cart.Total))
		wishlistItems.Set(float64(st.Wishlist.Count()))
		if st.Session.IsAuthenticated {
			sessionAuthenticated.Set(1)
		} else {
			sessionAuthenticated.Set(0)
		}
	}
}
