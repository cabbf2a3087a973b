package pg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	tableKindTenant = "tenant_posts"
	tableKindLikes  = "post_likes"
)

var (
	tablesProvisioned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_tables_provisioned_total",
			Help: "Number of on-demand tables created by this process",
		},
		[]string{"kind"},
	)

	tableCreateRaces = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_table_create_races_total",
			Help: "Number of table creations that lost a race to a concurrent creator",
		},
		[]string{"kind"},
	)

	likesSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "community_likes_suppressed_total",
			Help: "Number of repeated likes ignored by the like store",
		},
	)
)
