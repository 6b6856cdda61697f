package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fixedCodes hands out the given codes in order, then repeats the last one.
func fixedCodes(codes ...string) CodeSource {
	i := 0
	return func() (string, error) {
		c := codes[min(i, len(codes)-1)]
		i++
		return c, nil
	}
}

func fullRoom(t *testing.T) (*Registry, string) {
	t.Helper()
	r := NewRegistry(WithCodeSource(fixedCodes("AB3C")))
	code, _, err := r.Create("p1")
	require.NoError(t, err)
	_, err = r.Join(code, "p2")
	require.NoError(t, err)
	return r, code
}

func TestRegistry_CreateAndJoin(t *testing.T) {
	r := NewRegistry(WithCodeSource(fixedCodes("AB3C")))

	code, slot, err := r.Create("p1")
	require.NoError(t, err)
	assert.Equal(t, "AB3C", code)
	assert.Equal(t, 1, slot)

	s, ok := r.Get(code)
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, s.Participants)
	assert.False(t, s.State.IsPlaying)
	assert.Equal(t, 100.0, s.State.WaterLevel)
	assert.Equal(t, 10.0, s.State.Position)

	slot, err = r.Join("AB3C", "p2")
	require.NoError(t, err)
	assert.Equal(t, 2, slot)
	assert.Equal(t, []string{"p1", "p2"}, s.Participants)
	assert.Equal(t, 1, s.Slot("p1"))
	assert.Equal(t, 2, s.Slot("p2"))
	assert.Zero(t, s.Slot("p3"))
}

func TestRegistry_JoinNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Join("ZZZZ", "p1")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Zero(t, r.Len())
}

func TestRegistry_JoinFull(t *testing.T) {
	r, code := fullRoom(t)

	_, err := r.Join(code, "p3")
	assert.ErrorIs(t, err, ErrRoomFull)

	s, _ := r.Get(code)
	assert.Equal(t, []string{"p1", "p2"}, s.Participants)
}

func TestRegistry_CreateSkipsTakenCodes(t *testing.T) {
	r := NewRegistry(WithCodeSource(fixedCodes("AB3C", "AB3C", "XY7Z")))

	first, _, err := r.Create("p1")
	require.NoError(t, err)
	second, _, err := r.Create("p2")
	require.NoError(t, err)

	assert.Equal(t, "AB3C", first)
	assert.Equal(t, "XY7Z", second)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_CreateExhausted(t *testing.T) {
	r := NewRegistry(WithCodeSource(fixedCodes("AB3C")), WithCodeAttempts(3))
	_, _, err := r.Create("p1")
	require.NoError(t, err)

	_, _, err = r.Create("p2")
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)

	s, _ := r.Get("AB3C")
	assert.Equal(t, []string{"p1"}, s.Participants)
}

func TestRegistry_CreateSourceError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry(WithCodeSource(func() (string, error) { return "", boom }))
	_, _, err := r.Create("p1")
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_StartNeedsTwoPlayers(t *testing.T) {
	r := NewRegistry(WithCodeSource(fixedCodes("AB3C")))
	code, _, err := r.Create("p1")
	require.NoError(t, err)

	s, ok := r.Start(code)
	assert.False(t, ok)
	assert.Nil(t, s)

	s, _ = r.Get(code)
	assert.False(t, s.State.IsPlaying)

	_, ok = r.Start("NOPE")
	assert.False(t, ok)
}

func TestRegistry_StartResets(t *testing.T) {
	r, code := fullRoom(t)
	s, _ := r.Get(code)
	s.State.WaterLevel = 12
	s.State.Position = 70
	s.State.ObstaclesDodged = 6
	s.State.LastObstacleCheck = 7

	started, ok := r.Start(code)
	require.True(t, ok)
	assert.Same(t, s, started)
	assert.True(t, s.State.IsPlaying)
	assert.Equal(t, 100.0, s.State.WaterLevel)
	assert.Equal(t, 10.0, s.State.Position)
	assert.Zero(t, s.State.ObstaclesDodged)
	assert.Zero(t, s.State.LastObstacleCheck)
}

func TestRegistry_RemoveByParticipant(t *testing.T) {
	r, code := fullRoom(t)

	removed, ok := r.RemoveByParticipant("p2")
	require.True(t, ok)
	assert.Equal(t, code, removed)

	_, ok = r.Get(code)
	assert.False(t, ok)

	_, ok = r.RemoveByParticipant("p1")
	assert.False(t, ok)
}

func TestRegistry_RemoveOnlyOneSession(t *testing.T) {
	r := NewRegistry(WithCodeSource(fixedCodes("AAAA", "BBBB")))
	_, _, err := r.Create("p1")
	require.NoError(t, err)
	_, _, err = r.Create("p1")
	require.NoError(t, err)

	_, ok := r.RemoveByParticipant("p1")
	require.True(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestPropertyNeverMoreThanTwoParticipants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()
		code, _, err := r.Create("host")
		if err != nil {
			t.Fatal(err)
		}

		joins := rapid.IntRange(0, 10).Draw(t, "joins")
		for i := 0; i < joins; i++ {
			slot, err := r.Join(code, "guest")
			switch {
			case i == 0 && (err != nil || slot != 2):
				t.Fatalf("first join: slot %d, err %v", slot, err)
			case i > 0 && !errors.Is(err, ErrRoomFull):
				t.Fatalf("join %d: expected full, got %v", i, err)
			}
		}

		s, _ := r.Get(code)
		if len(s.Participants) > MaxParticipants {
			t.Fatalf("%d participants", len(s.Participants))
		}
	})
}
