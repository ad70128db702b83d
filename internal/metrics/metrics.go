package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	friendMetricsOnce sync.Once

	friendRequestsTotal = newStatusCounter("friend_requests_total", "Total number of friend request attempts")
	friendAcceptsTotal  = newStatusCounter("friend_accepts_total", "Total number of friend request accept attempts")
	friendDeclinesTotal = newStatusCounter("friend_declines_total", "Total number of friend request decline attempts")
	friendRevokesTotal  = newStatusCounter("friend_revokes_total", "Total number of friend request revoke attempts")
	friendRemovalsTotal = newStatusCounter("friend_removals_total", "Total number of unfriend attempts")
	feedRequestsTotal   = newStatusCounter("feed_requests_total", "Total number of feed page requests")
	ratingsCreatedTotal = newStatusCounter("ratings_created_total", "Total number of rating attempts")
)

func newStatusCounter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{"status"})
}

func RegisterFriendMetrics() {
	friendMetricsOnce.Do(func() {
		prometheus.MustRegister(
			friendRequestsTotal,
			friendAcceptsTotal,
			friendDeclinesTotal,
			friendRevokesTotal,
			friendRemovalsTotal,
			feedRequestsTotal,
			ratingsCreatedTotal,
		)
	})
}

// Status maps an operation result to its label value.
func Status(err error) string {
	if err != nil {
		return StatusFailed
	}
	return StatusSuccess
}

func IncFriendRequest(status string) { inc(friendRequestsTotal, status) }

func IncFriendAccept(status string) { inc(friendAcceptsTotal, status) }

func IncFriendDecline(status string) { inc(friendDeclinesTotal, status) }

func IncFriendRevoke(status string) { inc(friendRevokesTotal, status) }

func IncFriendRemoval(status string) { inc(friendRemovalsTotal, status) }

func IncFeedRequest(status string) { inc(feedRequestsTotal, status) }

func IncRatingCreated(status string) { inc(ratingsCreatedTotal, status) }

func inc(counter *prometheus.CounterVec, status string) {
	RegisterFriendMetrics()
	counter.WithLabelValues(status).Inc()
}
