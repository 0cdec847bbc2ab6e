package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages reported by the session failure counter
const (
	stageList      = "list"
	stagePurge     = "purge"
	stageNotify    = "notify"
	stageUpdate    = "update"
	stageFollowUp  = "follow_up"
	stagePersist   = "persist"
	stageReconcile = "reconcile"
	stageWithdraw  = "withdraw"
	stagePanic     = "panic"
)

// Metrics collects scheduler counters
type Metrics struct {
	ticks            prometheus.Counter
	tickDuration     prometheus.Histogram
	remindersSent    prometheus.Counter
	remindersUpdated prometheus.Counter
	followUpsSent    prometheus.Counter
	sessionsPurged   prometheus.Counter
	sessionFailures  *prometheus.CounterVec
}

// NewMetrics creates the scheduler metrics and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huddle_scheduler_ticks_total",
			Help: "Number of scheduler ticks run",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "huddle_scheduler_tick_duration_seconds",
			Help:    "Duration of a scheduler tick in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huddle_reminders_sent_total",
			Help: "Number of reminder messages posted",
		}),
		remindersUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huddle_reminders_updated_total",
			Help: "Number of reminder messages edited in place",
		}),
		followUpsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huddle_follow_ups_sent_total",
			Help: "Number of post-session follow-ups sent to creators",
		}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huddle_sessions_purged_total",
			Help: "Number of sessions removed by retention",
		}),
		sessionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_session_failures_total",
			Help: "Number of per-session failures by stage",
		}, []string{"stage"}),
	}

	reg.MustRegister(
		m.ticks,
		m.tickDuration,
		m.remindersSent,
		m.remindersUpdated,
		m.followUpsSent,
		m.sessionsPurged,
		m.sessionFailures,
	)

	return m
}

// RecordTick records a completed tick
func (m *Metrics) RecordTick(duration time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(duration.Seconds())
}

// RecordReminderSent records a newly posted reminder
func (m *Metrics) RecordReminderSent() {
	m.remindersSent.Inc()
}

// RecordReminderUpdated records an edited reminder
func (m *Metrics) RecordReminderUpdated() {
	m.remindersUpdated.Inc()
}

// RecordFollowUpSent records a follow-up sent to a creator
func (m *Metrics) RecordFollowUpSent() {
	m.followUpsSent.Inc()
}

// RecordPurged records sessions removed by retention
func (m *Metrics) RecordPurged(count int) {
	m.sessionsPurged.Add(float64(count))
}

// RecordFailure records a per-session failure at stage
func (m *Metrics) RecordFailure(stage string) {
	m.sessionFailures.WithLabelValues(stage).Inc()
}
