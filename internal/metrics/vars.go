package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FeedFetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skinarb_feed_fetch_latency_seconds",
		Help:    "Time to download a marketplace price list",
		Buckets: prometheus.DefBuckets,
	}, []string{"feed"})

	FeedFetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skinarb_feed_fetch_errors_total",
		Help: "Price list fetches that failed and were replaced by an empty feed",
	}, []string{"feed"})

	FeedItems = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skinarb_feed_items",
		Help: "Entries decoded from the latest price list",
	}, []string{"feed"})

	Opportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skinarb_opportunities",
		Help: "Items priced on both marketplaces in the latest batch",
	})

	ProfitableOpportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skinarb_opportunities_profitable",
		Help: "Items with positive fee-adjusted profit in the latest batch",
	})

	BestROI = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skinarb_best_roi_percent",
		Help: "Highest best-direction ROI in the latest batch",
	})

	ProxyRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skinarb_proxy_requests_total",
		Help: "Price list proxy requests by feed and HTTP status",
	}, []string{"feed", "code"})

	AlertsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skinarb_alerts_published_total",
		Help: "Risk-approved opportunities pushed to the alert stream",
	})
)

func init() {
	prometheus.MustRegister(
		FeedFetchLatency,
		FeedFetchErrors,
		FeedItems,
		Opportunities,
		ProfitableOpportunities,
		BestROI,
		ProxyRequests,
		AlertsPublished,
	)
}
