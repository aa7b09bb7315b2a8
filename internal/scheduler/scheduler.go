// Package scheduler assigns patients to doctors and days of the week.
package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

const dateLayout = "2006-01-02"

var (
	// ErrNotScheduled is returned by Reschedule for a patient with no entry.
	ErrNotScheduled = errors.New("patient is not on the schedule")
	// ErrInvalidDay is returned for a weekday label or value outside Days.
	ErrInvalidDay = errors.New("unknown weekday")
)

// Days holds the weekday labels in schedule order, Sunday first.
var Days = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DefaultDoctors seeds the doctor collection of a new scheduler.
var DefaultDoctors = []string{"Dr. A", "Dr. B", "Dr. C"}

// Clock supplies "today" for date arithmetic.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Rand picks doctors. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Option configures a Scheduler built by New.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithRand replaces the time-seeded random source.
func WithRand(r Rand) Option {
	return func(s *Scheduler) { s.rng = r }
}

// Scheduler holds the patient, doctor and schedule collections of one
// session. It is not safe for concurrent use.
type Scheduler struct {
	patients []string
	doctors  []string
	schedule []models.ScheduleEntry

	clock Clock
	rng   Rand
}

// New returns a scheduler whose doctor collection is seeded with doctors.
// Empty and duplicate names in doctors are skipped.
func New(doctors []string, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock: ClockFunc(time.Now),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, d := range doctors {
		s.AddDoctor(d)
	}
	return s
}

// AddPatient appends name unless it is empty or already present.
func (s *Scheduler) AddPatient(name string) bool {
	return addName(&s.patients, name)
}

// RemovePatient removes name if present. Existing schedule entries are left
// untouched.
func (s *Scheduler) RemovePatient(name string) bool {
	return removeName(&s.patients, name)
}

// AddDoctor appends name unless it is empty or already present.
func (s *Scheduler) AddDoctor(name string) bool {
	return addName(&s.doctors, name)
}

// RemoveDoctor removes name if present.
func (s *Scheduler) RemoveDoctor(name string) bool {
	return removeName(&s.doctors, name)
}

// Patients returns a copy of the patient collection in insertion order.
func (s *Scheduler) Patients() []string { return append([]string{}, s.patients...) }

// Doctors returns a copy of the doctor collection in insertion order.
func (s *Scheduler) Doctors() []string { return append([]string{}, s.doctors...) }

// Schedule returns a copy of the current schedule. It is never nil.
func (s *Scheduler) Schedule() []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(s.schedule))
	copy(out, s.schedule)
	return out
}

// Generate replaces the schedule with one entry per patient. Patient i is
// placed on Days[i%7], dated today plus i%7 days, and visited by a doctor
// drawn uniformly at random. With no patients or no doctors the schedule
// becomes empty.
func (s *Scheduler) Generate() []models.ScheduleEntry {
	if len(s.patients) == 0 || len(s.doctors) == 0 {
		s.schedule = nil
		return s.Schedule()
	}

	today := s.clock.Now()
	schedule := make([]models.ScheduleEntry, 0, len(s.patients))
	for i, patient := range s.patients {
		offset := i % len(Days)
		schedule = append(schedule, models.ScheduleEntry{
			Patient: patient,
			Doctor:  s.doctors[s.rng.Intn(len(s.doctors))],
			Day:     Days[offset],
			Date:    today.AddDate(0, 0, offset).Format(dateLayout),
		})
	}
	s.schedule = schedule
	return s.Schedule()
}

// Reschedule moves the first entry for patient to day, dated today plus the
// day's index. The doctor is kept.
func (s *Scheduler) Reschedule(patient string, day time.Weekday) (models.ScheduleEntry, error) {
	if day < time.Sunday || day > time.Saturday {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %d", ErrInvalidDay, int(day))
	}
	idx := slices.IndexFunc(s.schedule, func(e models.ScheduleEntry) bool {
		return e.Patient == patient
	})
	if idx < 0 {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %q", ErrNotScheduled, patient)
	}

	entry := &s.schedule[idx]
	entry.Day = Days[day]
	entry.Date = s.clock.Now().AddDate(0, 0, int(day)).Format(dateLayout)
	return *entry, nil
}

// ParseDay resolves a weekday label such as "Friday". Matching ignores case
// and surrounding whitespace.
func ParseDay(label string) (time.Weekday, error) {
	label = strings.TrimSpace(label)
	for i, d := range Days {
		if strings.EqualFold(d, label) {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, label)
}

func addName(list *[]string, name string) bool {
	if name == "" || slices.Contains(*list, name) {
		return false
	}
	*list = append(*list, name)
	return true
}

func removeName(list *[]string, name string) bool {
	i := slices.Index(*list, name)
	if i < 0 {
		return false
	}
	*list = slices.Delete(*list, i, i+1)
	return true
}
