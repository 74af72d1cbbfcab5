package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Telegram updates processed, by kind.",
	}, []string{"kind"})

	duplicateUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_duplicate_updates_total",
		Help: "Updates skipped because the same update id was already processed.",
	})

	repliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_replies_total",
		Help: "Outbound Telegram messages sent successfully.",
	})

	sendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_failures_total",
		Help: "Outbound Telegram calls that returned an error.",
	})
)
