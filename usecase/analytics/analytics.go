package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

// Reporting periods accepted by Summarize.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const (
	insightsWindowDays = 30
	fallbackSubject    = "General"
)

// SummaryStats are the headline numbers for a reporting window. Times are in
// minutes except TotalHours.
type SummaryStats struct {
	TotalSessions      int     `json:"totalSessions"`
	TotalTime          int     `json:"totalTime"`
	TotalHours         float64 `json:"totalHours"`
	AvgSessionLength   int     `json:"avgSessionLength"`
	ProductivityScore  int     `json:"productivityScore"`
	ConsistencyScore   int     `json:"consistencyScore"`
	CompletedTasks     int     `json:"completedTasks"`
	TotalTasks         int     `json:"totalTasks"`
	TaskCompletionRate int     `json:"taskCompletionRate"`
}

// DayStat is one day of the breakdown, time in minutes.
type DayStat struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
	Time     int    `json:"time"`
}

// SessionBrief is the per-session slice of a summary response.
type SessionBrief struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Duration  int       `json:"duration"`
}

// Summary is the focus summary for one reporting period.
type Summary struct {
	Period         string         `json:"period"`
	Summary        SummaryStats   `json:"summary"`
	DailyBreakdown []DayStat      `json:"dailyBreakdown"`
	Sessions       []SessionBrief `json:"focusSessions"`
}

// Streak describes the user's consecutive-day focus habit. TotalFocusTime is
// in minutes.
type Streak struct {
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalSessions  int `json:"totalSessions"`
	TotalFocusTime int `json:"totalFocusTime"`
}

// HourStat aggregates focus by hour of day, time in minutes.
type HourStat struct {
	Hour      int `json:"hour"`
	Sessions  int `json:"sessions"`
	TotalTime int `json:"totalTime"`
}

// SubjectStat aggregates focus by the subject of the linked task, time in
// minutes.
type SubjectStat struct {
	Subject   string `json:"subject"`
	Sessions  int    `json:"sessions"`
	TotalTime int    `json:"totalTime"`
}

// Recommendation is a rule-derived suggestion.
type Recommendation struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// InsightTotals are the trailing-30-day headline numbers, times in minutes.
type InsightTotals struct {
	TotalFocusTime int `json:"totalFocusTime"`
	CompletedTasks int `json:"completedTasks"`
	TotalTasks     int `json:"totalTasks"`
	CompletionRate int `json:"completionRate"`
	AvgDailyFocus  int `json:"avgDailyFocus"`
}

// Insights bundles the productivity analysis of the trailing 30 days.
type Insights struct {
	Insights        InsightTotals    `json:"insights"`
	BestHours       []HourStat       `json:"bestHours"`
	TopSubjects     []SubjectStat    `json:"topSubjects"`
	Recommendations []Recommendation `json:"recommendations"`
}

type UseCase struct {
	sessions repository.FocusSessionRepository
	tasks    repository.TaskRepository
	logger   *zap.Logger

	now func() time.Time
}

func New(sessions repository.FocusSessionRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		tasks:    tasks,
		logger:   logger,
		now:      time.Now,
	}
}

// Summarize computes the focus summary for one of the reporting periods.
// The window covers the current calendar day for "today" and the trailing
// 7 or 30 days otherwise, always ending at the end of today.
func (uc *UseCase) Summarize(ctx context.Context, userID, period string) (*Summary, error) {
	if period == "" {
		period = PeriodWeek
	}

	now := uc.now()
	var from time.Time
	var expectedDays int
	switch period {
	case PeriodToday:
		from = startOfDay(now)
		expectedDays = 1
	case PeriodWeek:
		from = startOfDay(now.AddDate(0, 0, -7))
		expectedDays = 7
	case PeriodMonth:
		from = startOfDay(now.AddDate(0, 0, -30))
		expectedDays = 30
	default:
		return nil, domain.NewError(domain.ErrCodeInvalid, "period must be today, week or month")
	}
	to := endOfDay(now)

	sessions, err := uc.sessions.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	totalTasks, completedTasks, err := uc.tasks.CountInWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	totalSessions := len(sessions)
	totalSeconds := 0
	for _, s := range sessions {
		totalSeconds += s.DurationSeconds
	}

	avgSessionLength := 0
	if totalSessions > 0 {
		avgSessionLength = int(math.Round(float64(totalSeconds) / float64(totalSessions) / 60))
	}
	totalHours := math.Round(float64(totalSeconds)/3600*10) / 10

	taskCompletionRate := 0
	if totalTasks > 0 {
		taskCompletionRate = int(math.Round(float64(completedTasks) / float64(totalTasks) * 100))
	}

	// Sessions arrive ordered by start time, so the breakdown stays in
	// chronological order by keeping first-seen day order.
	perDay := map[string]*DayStat{}
	var dayOrder []string
	for _, s := range sessions {
		day := s.StartedAt.Format("2006-01-02")
		stat, ok := perDay[day]
		if !ok {
			stat = &DayStat{Date: day}
			perDay[day] = stat
			dayOrder = append(dayOrder, day)
		}
		stat.Sessions++
		stat.Time += s.DurationSeconds
	}
	breakdown := make([]DayStat, 0, len(dayOrder))
	for _, day := range dayOrder {
		stat := perDay[day]
		stat.Time = minutes(stat.Time)
		breakdown = append(breakdown, *stat)
	}

	consistencyScore := int(math.Round(float64(len(dayOrder)) / float64(expectedDays) * 100))
	productivityScore := clampScore(math.Round(
		float64(consistencyScore)*0.3 + totalHours*5 + float64(taskCompletionRate)*0.7))

	briefs := make([]SessionBrief, 0, len(sessions))
	for _, s := range sessions {
		briefs = append(briefs, SessionBrief{
			ID:        s.ID,
			StartedAt: s.StartedAt,
			Duration:  s.DurationSeconds,
		})
	}

	return &Summary{
		Period: period,
		Summary: SummaryStats{
			TotalSessions:      totalSessions,
			TotalTime:          minutes(totalSeconds),
			TotalHours:         totalHours,
			AvgSessionLength:   avgSessionLength,
			ProductivityScore:  productivityScore,
			ConsistencyScore:   consistencyScore,
			CompletedTasks:     completedTasks,
			TotalTasks:         totalTasks,
			TaskCompletionRate: taskCompletionRate,
		},
		DailyBreakdown: breakdown,
		Sessions:       briefs,
	}, nil
}

// Streak walks the distinct days with at least one session, newest first.
// A run is a sequence of consecutive days; the current streak is the length
// of the most recent run, but only while that run reaches today or yesterday.
func (uc *UseCase) Streak(ctx context.Context, userID string) (*Streak, error) {
	sessions, err := uc.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalSeconds := 0
	seen := map[string]bool{}
	var days []time.Time
	for _, s := range sessions {
		totalSeconds += s.DurationSeconds
		day := startOfDay(s.StartedAt)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	longest, run := 0, 0
	current := 0
	currentOpen := false
	today := startOfDay(uc.now())
	yesterday := today.AddDate(0, 0, -1)

	for i, day := range days {
		if i == 0 {
			run = 1
			currentOpen = !day.Before(yesterday)
		} else if days[i-1].AddDate(0, 0, -1).Equal(day) {
			run++
		} else {
			run = 1
			currentOpen = false
		}
		if currentOpen {
			current = run
		}
		if run > longest {
			longest = run
		}
	}

	return &Streak{
		CurrentStreak:  current,
		LongestStreak:  longest,
		TotalSessions:  len(sessions),
		TotalFocusTime: minutes(totalSeconds),
	}, nil
}

// Insights analyses the trailing 30 days: peak hours, subjects with the most
// focus time and rule-based recommendations.
func (uc *UseCase) Insights(ctx context.Context, userID string) (*Insights, error) {
	now := uc.now()
	from := startOfDay(now.AddDate(0, 0, -insightsWindowDays))
	to := endOfDay(now)

	sessions, err := uc.sessions.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	totalTasks, completedTasks, err := uc.tasks.CountInWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	totalSeconds := 0
	perHour := map[int]*HourStat{}
	perSubject := map[string]*SubjectStat{}
	subjects := uc.subjectResolver(ctx)
	for _, s := range sessions {
		totalSeconds += s.DurationSeconds

		hour := s.StartedAt.Hour()
		hs, ok := perHour[hour]
		if !ok {
			hs = &HourStat{Hour: hour}
			perHour[hour] = hs
		}
		hs.Sessions++
		hs.TotalTime += s.DurationSeconds

		subject := subjects(s.TaskID)
		ss, ok := perSubject[subject]
		if !ok {
			ss = &SubjectStat{Subject: subject}
			perSubject[subject] = ss
		}
		ss.Sessions++
		ss.TotalTime += s.DurationSeconds
	}

	bestHours := make([]HourStat, 0, len(perHour))
	for _, hs := range perHour {
		hs.TotalTime = minutes(hs.TotalTime)
		bestHours = append(bestHours, *hs)
	}
	sort.Slice(bestHours, func(i, j int) bool {
		if bestHours[i].TotalTime != bestHours[j].TotalTime {
			return bestHours[i].TotalTime > bestHours[j].TotalTime
		}
		return bestHours[i].Hour < bestHours[j].Hour
	})
	if len(bestHours) > 3 {
		bestHours = bestHours[:3]
	}

	topSubjects := make([]SubjectStat, 0, len(perSubject))
	for _, ss := range perSubject {
		ss.TotalTime = minutes(ss.TotalTime)
		topSubjects = append(topSubjects, *ss)
	}
	sort.Slice(topSubjects, func(i, j int) bool {
		if topSubjects[i].TotalTime != topSubjects[j].TotalTime {
			return topSubjects[i].TotalTime > topSubjects[j].TotalTime
		}
		return topSubjects[i].Subject < topSubjects[j].Subject
	})
	if len(topSubjects) > 5 {
		topSubjects = topSubjects[:5]
	}

	completionRate := 0
	if totalTasks > 0 {
		completionRate = int(math.Round(float64(completedTasks) / float64(totalTasks) * 100))
	}

	var recommendations []Recommendation
	if totalSeconds < 3600 {
		recommendations = append(recommendations, Recommendation{
			Type:     "focus_time",
			Title:    "Increase Focus Time",
			Message:  "Try to dedicate at least 30 minutes daily to focused work sessions.",
			Priority: "high",
		})
	}
	if completionRate < 70 {
		recommendations = append(recommendations, Recommendation{
			Type:     "completion_rate",
			Title:    "Improve Task Completion",
			Message:  "Focus on completing tasks rather than starting new ones.",
			Priority: "medium",
		})
	}
	if len(bestHours) > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:     "optimal_time",
			Title:    "Use Your Peak Hours",
			Message:  fmt.Sprintf("Your most productive hours are %d:00. Schedule important tasks during these times.", bestHours[0].Hour),
			Priority: "low",
		})
	}

	return &Insights{
		Insights: InsightTotals{
			TotalFocusTime: minutes(totalSeconds),
			CompletedTasks: completedTasks,
			TotalTasks:     totalTasks,
			CompletionRate: completionRate,
			AvgDailyFocus:  int(math.Round(float64(totalSeconds) / insightsWindowDays / 60)),
		},
		BestHours:       bestHours,
		TopSubjects:     topSubjects,
		Recommendations: recommendations,
	}, nil
}

// subjectResolver maps a session's task id to the task's subject, caching
// lookups for the duration of one analysis. Sessions without a task, or
// whose task was deleted, fall back to a generic bucket.
func (uc *UseCase) subjectResolver(ctx context.Context) func(taskID string) string {
	cache := map[string]string{}
	return func(taskID string) string {
		if taskID == "" {
			return fallbackSubject
		}
		if subject, ok := cache[taskID]; ok {
			return subject
		}
		subject := fallbackSubject
		task, err := uc.tasks.GetByID(ctx, taskID)
		if err == nil {
			subject = task.Subject
		} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Warn("subject lookup failed", zap.String("task_id", taskID), zap.Error(err))
		}
		cache[taskID] = subject
		return subject
	}
}

// minutes converts seconds to minutes, rounding to nearest.
func minutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
