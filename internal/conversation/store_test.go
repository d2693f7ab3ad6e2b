package conversation

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/hfchat/internal/models"
)

func fill(s *Store, n int) {
	for i := range n {
		if i%2 == 0 {
			s.Append(models.UserTurn(fmt.Sprintf("u%v", i)))
		} else {
			s.Append(models.BotTurn(fmt.Sprintf("b%v", i)))
		}
	}
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	s := New()
	fill(s, 4)
	got := s.Snapshot()
	want := []models.Turn{
		models.UserTurn("u0"),
		models.BotTurn("b1"),
		models.UserTurn("u2"),
		models.BotTurn("b3"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected: %v, got: %v", want, got)
	}
	testboil.FailTestIfDiff(t, s.Len(), 4)
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := New()
	fill(s, 2)
	snap := s.Snapshot()
	snap[0] = models.BotTurn("mutated")
	_ = append(snap, models.UserTurn("extra"))

	got := s.Snapshot()
	testboil.FailTestIfDiff(t, len(got), 2)
	testboil.FailTestIfDiff(t, got[0], models.UserTurn("u0"))
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Clear()
	testboil.FailTestIfDiff(t, len(s.Snapshot()), 0)

	fill(s, 7)
	s.Clear()
	testboil.FailTestIfDiff(t, len(s.Snapshot()), 0)
	testboil.FailTestIfDiff(t, s.Context(), "")
}

func TestStore_Context(t *testing.T) {
	for _, tc := range []struct {
		stored int
		want   []string
	}{
		{stored: 0, want: nil},
		{stored: 3, want: []string{"User: u0", "Bot: b1", "User: u2"}},
		{stored: 5, want: []string{"User: u0", "Bot: b1", "User: u2", "Bot: b3", "User: u4"}},
		{stored: 8, want: []string{"Bot: b3", "User: u4", "Bot: b5", "User: u6", "Bot: b7"}},
	} {
		t.Run(fmt.Sprintf("%v turns", tc.stored), func(t *testing.T) {
			s := New()
			fill(s, tc.stored)
			testboil.FailTestIfDiff(t, s.Context(), strings.Join(tc.want, "\n"))
			testboil.FailTestIfDiff(t, s.Len(), tc.stored)
		})
	}
}

func TestStore_Recent(t *testing.T) {
	s := New()
	fill(s, 3)
	testboil.FailTestIfDiff(t, len(s.Recent(0)), 0)
	testboil.FailTestIfDiff(t, len(s.Recent(10)), 3)

	recent := s.Recent(2)
	testboil.FailTestIfDiff(t, recent[0], models.BotTurn("b1"))
	testboil.FailTestIfDiff(t, recent[1], models.UserTurn("u2"))

	recent[0] = models.UserTurn("changed")
	testboil.FailTestIfDiff(t, s.Snapshot()[1], models.BotTurn("b1"))
}
