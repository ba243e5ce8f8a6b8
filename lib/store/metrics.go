package store

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"io"
)

// --------------------------------------------------------------------------
// Metrics (exposed through WriteMetrics)
// --------------------------------------------------------------------------

var (
	storesCreatedPlain = metrics.NewCounter(`atomstore_stores_created_total{variant="plain"}`)
	storesCreatedDev   = metrics.NewCounter(`atomstore_stores_created_total{variant="dev"}`)

	restoreTotal   = metrics.NewCounter("atomstore_restore_total")
	restoreFailed  = metrics.NewCounter("atomstore_restore_failed_total")
	restoredAtoms  = metrics.NewCounter("atomstore_restore_atoms_total")
	restoreSkipped = metrics.NewCounter("atomstore_restore_skipped_atoms_total")

	mountTotal   = metrics.NewCounter("atomstore_mount_total")
	unmountTotal = metrics.NewCounter("atomstore_unmount_total")

	defaultStoreMismatch = metrics.NewCounter("atomstore_default_store_mismatch_total")

	// pairs consumed per restore transaction
	restoreSizes = gometrics.GetOrRegisterHistogram("atomstore.restore.size", nil, gometrics.NewExpDecaySample(1028, 0.015))
)

var restoreQuantiles = []float64{0.5, 0.9, 0.99}

// WriteMetrics writes all store metrics in Prometheus text format. The restore size
// distribution is rendered as a summary.
func WriteMetrics(w io.Writer) error {
	metrics.WritePrometheus(w, false)

	h := restoreSizes.Snapshot()
	ps := h.Percentiles(restoreQuantiles)
	for i, q := range restoreQuantiles {
		if _, err := fmt.Fprintf(w, "atomstore_restore_size{quantile=\"%g\"} %g\n", q, ps[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "atomstore_restore_size_sum %d\natomstore_restore_size_count %d\n", h.Sum(), h.Count())
	return err
}
