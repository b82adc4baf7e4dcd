package booking

import (
	"testing"
	"time"

	"github.com/barberflow/booking-api/internal/schedule"
)

const generatorCatalog = `{
	"A": {"days": [0], "start": "12:00", "end": "13:00"},
	"B": {"days": [0, 1, 2, 3, 4, 5, 6], "start": "12:00", "end": "21:00"},
	"C": {"days": [3], "start": "10:00", "end": "10:45"}
}`

func testGenerator(t *testing.T, now time.Time) *Generator {
	t.Helper()

	reg, err := schedule.Load(generatorCatalog)
	if err != nil {
		t.Fatalf("schedule.Load: %v", err)
	}
	return NewGenerator(reg, 30*time.Minute, func() time.Time { return now })
}

// Fixed reference days, all in June 2025: the 2nd is a Monday.
var (
	genMonday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	genTuesday = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

func TestSlotsFor_HalfOpenWindow(t *testing.T) {
	gen := testGenerator(t, genTuesday)

	got := gen.SlotsFor("A", genMonday.AddDate(0, 0, 7))
	want := []string{"12:00", "12:30"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSlotsFor_GridAlignment(t *testing.T) {
	gen := testGenerator(t, genTuesday)

	start, _ := time.Parse("15:04", "12:00")
	end, _ := time.Parse("15:04", "21:00")

	slots := gen.SlotsFor("B", genMonday.AddDate(0, 0, 7))
	if len(slots) == 0 {
		t.Fatal("no slots generated")
	}

	prev := ""
	for _, s := range slots {
		tod, err := time.Parse("15:04", s)
		if err != nil {
			t.Fatalf("slot %q is not HH:MM", s)
		}
		if tod.Before(start) || !tod.Before(end) {
			t.Errorf("slot %s outside [12:00, 21:00)", s)
		}
		if tod.Sub(start)%(30*time.Minute) != 0 {
			t.Errorf("slot %s not aligned to the 30m grid", s)
		}
		if prev != "" && s <= prev {
			t.Errorf("slots not strictly increasing: %s after %s", s, prev)
		}
		prev = s
	}
}

func TestSlotsFor_InactiveWeekdayAndUnknownMaster(t *testing.T) {
	gen := testGenerator(t, genTuesday)

	if got := gen.SlotsFor("A", genTuesday); got != nil {
		t.Errorf("inactive weekday: got %v, want nil", got)
	}
	if got := gen.SlotsFor("Nobody", genMonday); got != nil {
		t.Errorf("unknown master: got %v, want nil", got)
	}
}

func TestSlotsFor_DropsElapsedSlotsToday(t *testing.T) {
	// Tuesday 14:00: the 14:00 slot itself counts as elapsed.
	now := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	gen := testGenerator(t, now)

	slots := gen.SlotsFor("B", genTuesday)
	if len(slots) == 0 {
		t.Fatal("no slots generated")
	}
	if slots[0] != "14:30" {
		t.Errorf("first slot = %s, want 14:30", slots[0])
	}
	for _, s := range slots {
		if s <= "14:00" {
			t.Errorf("elapsed slot %s returned", s)
		}
	}
}

func TestSlotsFor_FutureDateKeepsFullGrid(t *testing.T) {
	// Late in the day today must not affect other dates.
	now := time.Date(2025, 6, 3, 20, 59, 0, 0, time.UTC)
	gen := testGenerator(t, now)

	slots := gen.SlotsFor("B", genTuesday.AddDate(0, 0, 1))
	if len(slots) != 18 {
		t.Errorf("got %d slots, want 18", len(slots))
	}
}

func TestSlotsFor_ShortWindowKeepsOverhangingStart(t *testing.T) {
	// "C" works Thursdays 10:00-10:45 on a 30m grid: starts are 10:00 and
	// 10:30 — every start strictly before the window end is offered.
	gen := testGenerator(t, genTuesday)

	thursday := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	got := gen.SlotsFor("C", thursday)
	want := []string{"10:00", "10:30"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIsValidSlot(t *testing.T) {
	gen := testGenerator(t, genTuesday)
	monday := genMonday.AddDate(0, 0, 7)

	if !gen.IsValidSlot("A", monday, "12:30") {
		t.Error("12:30 should be valid for A on Monday")
	}
	if gen.IsValidSlot("A", monday, "13:00") {
		t.Error("window end must not be a valid start")
	}
	if gen.IsValidSlot("A", genTuesday, "12:00") {
		t.Error("inactive weekday must not validate")
	}
}
