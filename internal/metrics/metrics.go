package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_pages_fetched_total",
		Help: "Timetable pages successfully fetched",
	}, []string{"department"})
	BytesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_bytes_fetched_total",
		Help: "Total bytes downloaded",
	}, []string{"department"})
	TablesLocated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_tables_located_total",
		Help: "Labelled tables found on department pages",
	}, []string{"department"})
	TablesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_tables_skipped_total",
		Help: "Tables or index links whose label could not be resolved",
	}, []string{"department"})
	Cells = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_cells_total",
		Help: "Classified cells by shape",
	}, []string{"department", "shape"})
	GroupsPublished = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_groups_published",
		Help: "Groups in the last published document",
	}, []string{"department"})
	GroupsRegistered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_groups_registered_total",
		Help: "Group ids newly appended to a registry",
	}, []string{"department"})
	Failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_failures_total",
		Help: "Department scrapes that failed, by error kind",
	}, []string{"department", "kind"})
)

func init() {
	prometheus.MustRegister(PagesFetched, BytesFetched, TablesLocated, TablesSkipped,
		Cells, GroupsPublished, GroupsRegistered, Failures)
}
