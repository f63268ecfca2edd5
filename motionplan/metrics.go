package motionplan

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// plannerMetrics backs Planner.GetStats/GetData with prometheus counters
// scoped to a single planner instance (never globally registered, so
// independent planner instances never collide on metric names — a host
// that wants a scrapeable /metrics endpoint registers these itself). No
// direct teacher analogue; grounded on the prometheus/client_golang local-
// counter pattern used elsewhere in the retrieval pack (see DESIGN.md).
type plannerMetrics struct {
	iterationsCounter  prometheus.Counter
	milestonesGauge    prometheus.Gauge
	rejectionsCounter  prometheus.Counter
	acceptancesCounter prometheus.Counter

	rejections  int
	acceptances int
}

func newPlannerMetrics() *plannerMetrics {
	return &plannerMetrics{
		iterationsCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionplan_planner_iterations_total",
			Help: "Planning iterations executed by this planner instance.",
		}),
		milestonesGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "motionplan_planner_milestones",
			Help: "Milestones currently stored in this planner's roadmap.",
		}),
		rejectionsCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionplan_planner_milestone_rejections_total",
			Help: "Milestones rejected for infeasibility.",
		}),
		acceptancesCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionplan_planner_milestone_acceptances_total",
			Help: "Milestones accepted into the roadmap.",
		}),
	}
}

func (m *plannerMetrics) incIteration() {
	m.iterationsCounter.Inc()
}

func (m *plannerMetrics) incRejection() {
	m.rejectionsCounter.Inc()
	m.rejections++
}

func (m *plannerMetrics) incAcceptance() {
	m.acceptancesCounter.Inc()
	m.acceptances++
}

func (m *plannerMetrics) setMilestones(n int) {
	m.milestonesGauge.Set(float64(n))
}

func (m *plannerMetrics) stats(iterations, milestones, components int) map[string]string {
	return map[string]string{
		"iterations":  strconv.Itoa(iterations),
		"milestones":  strconv.Itoa(milestones),
		"components":  strconv.Itoa(components),
		"rejections":  strconv.Itoa(m.rejections),
		"acceptances": strconv.Itoa(m.acceptances),
	}
}
