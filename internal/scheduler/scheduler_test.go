package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

// fixedClock pins "today" to Wednesday 2024-06-05.
var fixedClock = ClockFunc(func() time.Time {
	return time.Date(2024, time.June, 5, 9, 30, 0, 0, time.UTC)
})

// seqRand returns the values of seq in turn, wrapped into [0, n).
type seqRand struct {
	seq []int
	pos int
}

func (r *seqRand) Intn(n int) int {
	v := r.seq[r.pos%len(r.seq)]
	r.pos++
	return v % n
}

func newTestScheduler(doctors []string, seq ...int) *Scheduler {
	if len(seq) == 0 {
		seq = []int{0}
	}
	return New(doctors, WithClock(fixedClock), WithRand(&seqRand{seq: seq}))
}

func TestNew_SeedsDoctors(t *testing.T) {
	s := New(DefaultDoctors)
	assert.Equal(t, []string{"Dr. A", "Dr. B", "Dr. C"}, s.Doctors())
	assert.Empty(t, s.Patients())
	assert.Empty(t, s.Schedule())

	s = New([]string{"Dr. A", "", "Dr. A", "Dr. Z"})
	assert.Equal(t, []string{"Dr. A", "Dr. Z"}, s.Doctors())
}

func TestAddPatient_KeepsFirstAddedOrder(t *testing.T) {
	s := newTestScheduler(nil)
	names := []string{"Carol", "Alice", "Bob"}
	for _, n := range names {
		assert.True(t, s.AddPatient(n))
	}
	assert.Equal(t, names, s.Patients())
}

func TestAddPatient_IgnoresEmptyAndDuplicates(t *testing.T) {
	s := newTestScheduler(nil)
	assert.True(t, s.AddPatient("Alice"))
	assert.False(t, s.AddPatient("Alice"))
	assert.False(t, s.AddPatient(""))
	assert.Equal(t, []string{"Alice"}, s.Patients())

	// Matching is exact.
	assert.True(t, s.AddPatient("alice"))
	assert.Len(t, s.Patients(), 2)
}

func TestRemovePatient(t *testing.T) {
	s := newTestScheduler(nil)
	s.AddPatient("Alice")
	s.AddPatient("Bob")

	assert.False(t, s.RemovePatient("Nobody"))
	assert.True(t, s.RemovePatient("Alice"))
	assert.False(t, s.RemovePatient("Alice"))
	assert.Equal(t, []string{"Bob"}, s.Patients())
}

func TestDoctors_AddRemove(t *testing.T) {
	s := newTestScheduler(DefaultDoctors)
	assert.False(t, s.AddDoctor("Dr. B"))
	assert.True(t, s.AddDoctor("Dr. D"))
	assert.True(t, s.RemoveDoctor("Dr. A"))
	assert.False(t, s.RemoveDoctor("Dr. A"))
	assert.Equal(t, []string{"Dr. B", "Dr. C", "Dr. D"}, s.Doctors())
}

func TestCollectionsAreCopies(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")
	s.Patients()[0] = "Mallory"
	s.Doctors()[0] = "Dr. Evil"
	s.Generate()
	s.Schedule()[0].Doctor = "Dr. Evil"

	assert.Equal(t, []string{"Alice"}, s.Patients())
	assert.Equal(t, []string{"Dr. A"}, s.Doctors())
	assert.Equal(t, "Dr. A", s.Schedule()[0].Doctor)
}

func TestGenerate_EmptyCollections(t *testing.T) {
	noPatients := newTestScheduler(DefaultDoctors)
	assert.Empty(t, noPatients.Generate())

	noDoctors := newTestScheduler(nil)
	noDoctors.AddPatient("Alice")
	assert.Empty(t, noDoctors.Generate())

	// A populated schedule goes back to empty once the doctors are gone.
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")
	require.Len(t, s.Generate(), 1)
	s.RemoveDoctor("Dr. A")
	schedule := s.Generate()
	assert.NotNil(t, schedule)
	assert.Empty(t, schedule)
	assert.Empty(t, s.Schedule())
}

func TestGenerate_CyclesWeekdays(t *testing.T) {
	s := newTestScheduler(DefaultDoctors)
	for i := 0; i < 8; i++ {
		s.AddPatient(fmt.Sprintf("P%d", i))
	}

	schedule := s.Generate()
	require.Len(t, schedule, 8)

	wantDays := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	wantDates := []string{"2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08", "2024-06-09", "2024-06-10", "2024-06-11", "2024-06-05"}
	for i, e := range schedule {
		assert.Equal(t, fmt.Sprintf("P%d", i), e.Patient)
		assert.Equal(t, wantDays[i], e.Day, "entry %d", i)
		assert.Equal(t, wantDates[i], e.Date, "entry %d", i)
	}
}

func TestGenerate_DoctorsComeFromCollection(t *testing.T) {
	doctors := []string{"Dr. A", "Dr. B", "Dr. C"}
	s := New(doctors, WithClock(fixedClock), WithRand(rand.New(rand.NewSource(42))))
	for i := 0; i < 50; i++ {
		s.AddPatient(fmt.Sprintf("P%d", i))
	}
	for _, e := range s.Generate() {
		assert.Contains(t, doctors, e.Doctor)
	}
}

func TestGenerate_UsesRandomSource(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A", "Dr. B", "Dr. C"}, 2, 0, 1)
	s.AddPatient("Alice")
	s.AddPatient("Bob")
	s.AddPatient("Carol")

	schedule := s.Generate()
	assert.Equal(t, "Dr. C", schedule[0].Doctor)
	assert.Equal(t, "Dr. A", schedule[1].Doctor)
	assert.Equal(t, "Dr. B", schedule[2].Doctor)
}

func TestGenerate_ReplacesPriorSchedule(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")
	s.AddPatient("Bob")
	s.Generate()
	_, err := s.Reschedule("Bob", time.Friday)
	require.NoError(t, err)

	s.RemovePatient("Alice")
	schedule := s.Generate()
	assert.Equal(t, []models.ScheduleEntry{
		{Patient: "Bob", Doctor: "Dr. A", Day: "Sunday", Date: "2024-06-05"},
	}, schedule)
}

func TestSchedule_NotTiedToCollections(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")
	s.Generate()

	s.RemovePatient("Alice")
	s.RemoveDoctor("Dr. A")

	assert.Equal(t, []models.ScheduleEntry{
		{Patient: "Alice", Doctor: "Dr. A", Day: "Sunday", Date: "2024-06-05"},
	}, s.Schedule())
}

func TestReschedule_UpdatesOnlyTarget(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A", "Dr. B"}, 0, 1, 0)
	s.AddPatient("Alice")
	s.AddPatient("Bob")
	s.AddPatient("Carol")
	before := s.Generate()

	entry, err := s.Reschedule("Bob", time.Saturday)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleEntry{Patient: "Bob", Doctor: "Dr. B", Day: "Saturday", Date: "2024-06-11"}, entry)

	after := s.Schedule()
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, entry, after[1])
}

func TestReschedule_FirstMatchOnly(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.schedule = []models.ScheduleEntry{
		{Patient: "Alice", Doctor: "Dr. A", Day: "Sunday", Date: "2024-06-05"},
		{Patient: "Alice", Doctor: "Dr. A", Day: "Monday", Date: "2024-06-06"},
	}

	_, err := s.Reschedule("Alice", time.Thursday)
	require.NoError(t, err)
	schedule := s.Schedule()
	assert.Equal(t, "Thursday", schedule[0].Day)
	assert.Equal(t, "2024-06-09", schedule[0].Date)
	assert.Equal(t, "Monday", schedule[1].Day)
}

func TestReschedule_NotScheduled(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	_, err := s.Reschedule("Alice", time.Monday)
	assert.True(t, errors.Is(err, ErrNotScheduled))

	s.AddPatient("Alice")
	s.Generate()
	_, err = s.Reschedule("Bob", time.Monday)
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestReschedule_InvalidDay(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")
	s.Generate()

	_, err := s.Reschedule("Alice", time.Weekday(7))
	assert.ErrorIs(t, err, ErrInvalidDay)
	assert.Equal(t, "Sunday", s.Schedule()[0].Day)
}

func TestEndToEnd(t *testing.T) {
	s := newTestScheduler([]string{"Dr. A"})
	s.AddPatient("Alice")

	schedule := s.Generate()
	assert.Equal(t, []models.ScheduleEntry{
		{Patient: "Alice", Doctor: "Dr. A", Day: "Sunday", Date: "2024-06-05"},
	}, schedule)

	entry, err := s.Reschedule("Alice", time.Friday)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleEntry{Patient: "Alice", Doctor: "Dr. A", Day: "Friday", Date: "2024-06-10"}, entry)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "Sunday", want: time.Sunday},
		{in: "friday", want: time.Friday},
		{in: "  SATURDAY ", want: time.Saturday},
		{in: "Fri", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Days[got], got.String())
		})
	}
}
