package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoresSubmittedTotal 评委提交评分次数（含覆盖提交）
	ScoresSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scores_submitted_total",
			Help: "Total number of judge score submissions",
		},
		[]string{"event"},
	)

	// VotesTotal 公众投票计数，result 为 accepted / duplicate / closed
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "public_votes_total",
			Help: "Total number of public vote attempts",
		},
		[]string{"result"},
	)

	// WeightedScoreHistogram 加权总分分布
	WeightedScoreHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "submission_weighted_score",
			Help:    "Distribution of aggregated weighted scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"event"},
	)

	// APIRequestDuration 接口耗时
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
