package analytics

import "github.com/prometheus/client_golang/prometheus"

var (
	processedMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sw_analytics_processed_messages_total",
			Help: "Number of booking events processed",
		},
	)

	messageProcessingTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "sw_analytics_message_processing_seconds",
			Help: "Time taken to process one booking event",
		},
	)

	dlqMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sw_analytics_dlq_messages_total",
			Help: "Number of booking events moved to the DLQ",
		},
	)
)

// RegisterMetrics installs the worker's collectors on the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(processedMessages, messageProcessingTime, dlqMessages)
}
