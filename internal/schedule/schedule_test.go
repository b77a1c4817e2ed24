package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/surge/internal/shape"
)

func TestParseQPSProfile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []shape.QPSSegment
	}{
		{
			name:  "commas and semicolons",
			input: "0,10,5;10,20,5",
			want: []shape.QPSSegment{
				{StartQPS: 0, EndQPS: 10, Duration: 5},
				{StartQPS: 10, EndQPS: 20, Duration: 5},
			},
		},
		{
			name:  "mixed separators and blanks",
			input: " 1:2_3 | 4 5\t6 ,, ",
			want: []shape.QPSSegment{
				{StartQPS: 1, EndQPS: 2, Duration: 3},
				{StartQPS: 4, EndQPS: 5, Duration: 6},
			},
		},
		{
			name:  "fractional and negative rates",
			input: "0.5,-1,10",
			want:  []shape.QPSSegment{{StartQPS: 0.5, EndQPS: -1, Duration: 10}},
		},
		{
			name:  "empty",
			input: "",
			want:  []shape.QPSSegment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQPSProfile(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQPSProfile_Errors(t *testing.T) {
	_, err := ParseQPSProfile("0,10,5,10")
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = ParseQPSProfile("0,ten,5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile[2] = 'ten'")

	_, err = ParseQPSProfile("0,10,5s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration at profile[3]")
}

func TestParseThreadsProfile(t *testing.T) {
	got, err := ParseThreadsProfile("10,0,5,30,5 5;10;0;20;0")
	require.NoError(t, err)
	assert.Equal(t, []shape.ConcurrencySegment{
		{ThreadCount: 10, InitialDelay: 0, RampupTime: 5, Duration: 30, ShutdownTime: 5},
		{ThreadCount: 5, InitialDelay: 10, RampupTime: 0, Duration: 20, ShutdownTime: 0},
	}, got)

	_, err = ParseThreadsProfile("1,2,3,4")
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = ParseThreadsProfile("1,2,x,4,5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads[3]")
}

func TestParse(t *testing.T) {
	segs, err := Parse(shape.ModeQPS, "0,10,5")
	require.NoError(t, err)
	assert.Equal(t, []shape.Segment{shape.QPSSegment{StartQPS: 0, EndQPS: 10, Duration: 5}}, segs)

	segs, err = Parse(shape.ModeConcurrency, "4,0,2,1,2")
	require.NoError(t, err)
	assert.Equal(t, []shape.Segment{shape.ConcurrencySegment{ThreadCount: 4, RampupTime: 2, Duration: 1, ShutdownTime: 2}}, segs)

	_, err = Parse("rps", "1,2,3")
	assert.ErrorIs(t, err, shape.ErrMalformedList)
}

func TestLoadProfile(t *testing.T) {
	segs, err := ParseQPSProfile("0,10,5;10,20,5")
	require.NoError(t, err)

	plan, err := LoadProfile(segs, time.Second)
	require.NoError(t, err)

	// the leading 0 is raised to 1
	assert.Equal(t, "line(1,10,5s) line(10,20,5s) line(20,0,1s)", plan.LoadProfile)
	assert.Equal(t, 11, plan.Duration)
	// 20 qps * 1000ms / 1000 = 20 threads, times 50
	assert.Equal(t, 1000, plan.Threads)
	assert.Equal(t, "spawn(1000,0s,0s,11s,1s)", plan.ThreadsSchedule)
}

func TestLoadProfile_EndingAtZero(t *testing.T) {
	plan, err := LoadProfile([]shape.QPSSegment{
		{StartQPS: 2.5, EndQPS: 0, Duration: 4},
	}, 200*time.Millisecond)
	require.NoError(t, err)

	// a zero end rate is raised to 1, so the drop line is still added
	assert.Equal(t, "line(2.5,1,4s) line(1,0,1s)", plan.LoadProfile)
	assert.Equal(t, 5, plan.Duration)
	// 2.5 * 200 / 1000 rounds down to 0, floor is one thread
	assert.Equal(t, 50, plan.Threads)
}

func TestLoadProfile_Errors(t *testing.T) {
	_, err := LoadProfile(nil, time.Second)
	assert.ErrorIs(t, err, ErrNoSegments)

	_, err = LoadProfile([]shape.QPSSegment{
		{StartQPS: 1, EndQPS: 2, Duration: 3},
		{StartQPS: 1, EndQPS: 2, Duration: 0},
	}, time.Second)
	var segErr *shape.SegmentError
	require.ErrorAs(t, err, &segErr)
	assert.Equal(t, 1, segErr.Index)
	assert.Equal(t, "duration", segErr.Field)
}

func TestThreadsSchedule(t *testing.T) {
	segs, err := ParseThreadsProfile("10,0,5,30,5 5,10,0,20,0")
	require.NoError(t, err)

	plan, err := ThreadsSchedule(segs)
	require.NoError(t, err)
	assert.Equal(t, "spawn(10,0s,5s,30s,5s) spawn(5,10s,0s,20s,0s)", plan.ThreadsSchedule)
	assert.Equal(t, 60, plan.Duration)
	assert.Equal(t, 15, plan.Threads)
	assert.Empty(t, plan.LoadProfile)
}

func TestThreadsSchedule_Idle(t *testing.T) {
	plan, err := ThreadsSchedule(nil)
	require.NoError(t, err)
	assert.Equal(t, IdleSchedule, plan.ThreadsSchedule)
	assert.Zero(t, plan.Duration)
}

func TestThreadsSchedule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		segs  []shape.ConcurrencySegment
		index int
		field string
	}{
		{"zero threads", []shape.ConcurrencySegment{{ThreadCount: 1, Duration: 1}, {ThreadCount: 0, Duration: 1}}, 1, "threadCount"},
		{"negative delay", []shape.ConcurrencySegment{{ThreadCount: 1, InitialDelay: -1, Duration: 1}}, 0, "initialDelay"},
		{"no running time", []shape.ConcurrencySegment{{ThreadCount: 3, InitialDelay: 5}}, 0, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ThreadsSchedule(tt.segs)
			var segErr *shape.SegmentError
			require.ErrorAs(t, err, &segErr)
			assert.Equal(t, tt.index, segErr.Index)
			assert.Equal(t, tt.field, segErr.Field)
			assert.True(t, errors.Is(err, shape.ErrInvalidSegment))
		})
	}
}

func TestBuild(t *testing.T) {
	plan, err := Build(shape.ModeQPS, []shape.Segment{
		shape.QPSSegment{StartQPS: 5, EndQPS: 5, Duration: 2},
		nil,
		&shape.QPSSegment{StartQPS: 5, EndQPS: 10, Duration: 2},
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "line(5,5,2s) line(5,10,2s) line(10,0,1s)", plan.LoadProfile)

	plan, err = Build(shape.ModeConcurrency, []shape.Segment{
		&shape.ConcurrencySegment{ThreadCount: 2, Duration: 3},
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "spawn(2,0s,0s,3s,0s)", plan.ThreadsSchedule)

	_, err = Build(shape.ModeQPS, []shape.Segment{shape.ConcurrencySegment{ThreadCount: 1}}, time.Second)
	assert.ErrorIs(t, err, shape.ErrMalformedList)

	_, err = Build(shape.ModeConcurrency, []shape.Segment{nil}, time.Second)
	assert.ErrorIs(t, err, shape.ErrMalformedList)

	_, err = Build(shape.ModeConcurrency, []shape.Segment{(*shape.QPSSegment)(nil)}, time.Second)
	assert.ErrorIs(t, err, shape.ErrMalformedList)
}

func TestPlan_Properties(t *testing.T) {
	plan := Plan{LoadProfile: "line(1,2,3s)", ThreadsSchedule: "spawn(50,0s,0s,3s,1s)"}

	props := plan.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "-Jthreads_schedule=spawn(50,0s,0s,3s,1s)", props[0].Flag())
	assert.Equal(t, "-Jload_profile=line(1,2,3s)", props[1].Flag())

	only := Plan{ThreadsSchedule: IdleSchedule}.Properties()
	assert.Equal(t, []Property{{Name: PropThreadsSchedule, Value: IdleSchedule}}, only)
}
