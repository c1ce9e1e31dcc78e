package tree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tree_operations_total",
		Help: "Folder and file operations by outcome.",
	}, []string{"operation", "outcome"})

	orphanedBlobsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tree_orphaned_blobs_total",
		Help: "Blobs left behind because removal failed after their metadata was deleted.",
	})

	releasedBlobsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tree_released_blobs_total",
		Help: "Blobs removed after their file was deleted.",
	})
)

func observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}
