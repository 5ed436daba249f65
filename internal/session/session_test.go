package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/geo"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/storage"
	"github.com/julianstephens/miaomotion/internal/weather"
)

type fakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (m *fakeScheduler) AfterFunc(d time.Duration, f func()) animation.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &fakeTimer{at: m.now + d, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (m *fakeScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		sort.SliceStable(m.pending, func(i, j int) bool { return m.pending[i].at < m.pending[j].at })
		if len(m.pending) == 0 || m.pending[0].at > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := m.pending[0]
		m.pending = m.pending[1:]
		m.now = t.at
		m.mu.Unlock()
		if !t.stopped {
			t.f()
		}
	}
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, store storage.Provider) (*Session, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	s, err := New(context.Background(), Options{
		Store:     store,
		Scheduler: sched,
		Locator:   geo.StaticLocator{Granted: true},
		Weather:   weather.StaticProvider{Temp: 20, Condition: models.ConditionSunny},
		Location:  time.UTC,
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, sched
}

// adoptedStore returns a store holding an adopted cat with the given food.
func adoptedStore(t *testing.T, mutate func(*models.UserData)) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	data := models.DefaultUserData()
	data.Cat.Name = "Mochi"
	if mutate != nil {
		mutate(&data)
	}
	if err := store.Commit(data); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestFirstRunAndAdoption(t *testing.T) {
	store := storage.NewMemoryStore()
	s, _ := newTestSession(t, store)

	snap := s.Snapshot()
	if !snap.FirstRun || snap.Screen != ScreenWelcome {
		t.Fatalf("fresh session = first_run %v screen %s", snap.FirstRun, snap.Screen)
	}
	if snap.LocationLabel != constants.LocationLabelGranted || snap.Weather.Temp != 20 {
		t.Errorf("location %q weather %+v", snap.LocationLabel, snap.Weather)
	}
	if err := s.Navigate(ScreenHome); !errors.Is(err, ErrNeedsAdoption) {
		t.Errorf("Navigate before adoption err = %v", err)
	}
	if _, err := s.SubmitCheckIn(models.SportWalk); !errors.Is(err, ErrNeedsAdoption) {
		t.Errorf("check-in before adoption err = %v", err)
	}

	if err := s.Adopt("Mochi", "lion"); !engine.IsRejection(err) {
		t.Errorf("Adopt bad breed err = %v", err)
	}
	if store.Commits != 0 {
		t.Errorf("rejected adopt committed %d times", store.Commits)
	}

	if err := s.Adopt("  Mochi ", "calico"); err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	snap = s.Snapshot()
	if snap.FirstRun || snap.Screen != ScreenHome {
		t.Errorf("after adopt first_run %v screen %s", snap.FirstRun, snap.Screen)
	}
	if snap.Data.Cat.Name != "Mochi" || snap.Data.Cat.Breed != models.BreedCalico {
		t.Errorf("cat = %+v", snap.Data.Cat)
	}
	if snap.Data.Cat.FoodCount != 0 || snap.Data.Cat.Weight != constants.DefaultCatWeight {
		t.Errorf("adoption touched counters: %+v", snap.Data.Cat)
	}
	if err := s.Adopt("Other", "orange"); !errors.Is(err, ErrNotFirstRun) {
		t.Errorf("second Adopt err = %v", err)
	}

	reopened, _ := newTestSession(t, store)
	if reopened.FirstRun() || reopened.Data().Cat.Name != "Mochi" {
		t.Errorf("reopened session lost adoption: %+v", reopened.Data().Cat)
	}
}

func TestLogin(t *testing.T) {
	s, _ := newTestSession(t, storage.NewMemoryStore())
	tests := []struct {
		phone, code string
		ok          bool
	}{
		{"13800138000", "1234", true},
		{"13800138000", "", true},
		{"1380013800", "1234", false},
		{"1380013800a", "1234", false},
		{"13800138000", "12345", false},
	}
	for _, tt := range tests {
		err := s.Login(tt.phone, tt.code)
		if tt.ok != (err == nil) {
			t.Errorf("Login(%q, %q) err = %v", tt.phone, tt.code, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("Login err %v should wrap ErrInvalidLogin", err)
		}
	}
	if !s.Snapshot().LoggedIn {
		t.Error("LoggedIn = false after a valid login")
	}
}

func TestNavigate(t *testing.T) {
	s, _ := newTestSession(t, adoptedStore(t, nil))
	for _, sc := range Screens {
		if err := s.Navigate(sc); err != nil || s.Screen() != sc {
			t.Errorf("Navigate(%s) = %v, screen %s", sc, err, s.Screen())
		}
	}
	if err := s.Navigate(ScreenWelcome); err != nil || s.Screen() != ScreenHome {
		t.Errorf("welcome after adoption = %v, screen %s", err, s.Screen())
	}
	if err := s.Navigate("settings"); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("unknown screen err = %v", err)
	}
}

func TestCheckInPlaysOneCycle(t *testing.T) {
	store := adoptedStore(t, nil)
	s, sched := newTestSession(t, store)

	var phases []animation.Phase
	s.Animation().OnPhase(func(p animation.Phase) { phases = append(phases, p) })

	res, err := s.SubmitCheckIn(models.SportWalk)
	if err != nil {
		t.Fatalf("SubmitCheckIn: %v", err)
	}
	if res.Streak != 1 {
		t.Errorf("streak = %d", res.Streak)
	}
	data := s.Data()
	if data.Cat.FoodCount != 1 || data.Cat.TotalCheckIns != 1 || !data.HasCheckedIn("2024-05-10") {
		t.Errorf("check-in not applied at trigger: %+v", data.Cat)
	}
	if !s.Snapshot().CheckedInToday {
		t.Error("CheckedInToday = false")
	}

	if _, err := s.SubmitCheckInOn("2024-05-11", models.SportWalk); !errors.Is(err, ErrBusy) {
		t.Errorf("check-in during animation err = %v", err)
	}

	sched.Advance(animation.CycleDuration)
	want := []animation.Phase{animation.Dropping, animation.Chewing, animation.Swallowing, animation.Happy, animation.Idle}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}

	commits := store.Commits
	if _, err := s.SubmitCheckIn(models.SportRunning); !errors.Is(err, engine.ErrAlreadyCheckedIn) {
		t.Errorf("duplicate check-in err = %v", err)
	}
	if store.Commits != commits || s.Data().Cat.TotalCheckIns != 1 {
		t.Error("duplicate check-in changed state")
	}
	if s.Animation().Busy() {
		t.Error("rejected check-in started an animation")
	}
}

func TestCheckInMilestoneNotifies(t *testing.T) {
	store := adoptedStore(t, func(d *models.UserData) {
		y := "2024-05-09"
		d.Cat.StreakDays = 4
		d.Cat.LastCheckInDate = &y
	})
	n := &fakeNotifier{}
	s, _ := newTestSession(t, store)
	s.notifier = n

	res, err := s.SubmitCheckIn(models.SportHiking)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if res.Streak != 5 || res.Milestone != 5 {
		t.Errorf("res = %+v", res)
	}
	cat := s.Data().Cat
	if cat.CanCount != 1 || cat.FoodCount != 1 || cat.TotalCheckIns != 1 {
		t.Errorf("cat = %+v", cat)
	}
	if len(n.messages) != 1 || n.messages[0] != "5-day streak! +1 can, +1 food" {
		t.Errorf("notifications = %q", n.messages)
	}
}

func TestFeedAppliesAtSwallow(t *testing.T) {
	store := adoptedStore(t, func(d *models.UserData) { d.Cat.FoodCount = 2 })
	s, sched := newTestSession(t, store)

	f, err := s.Feed()
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, err := s.Feed(); !errors.Is(err, ErrBusy) {
		t.Errorf("Feed during animation err = %v", err)
	}

	sched.Advance(1799 * time.Millisecond)
	if got := s.Data().Cat.FoodCount; got != 2 {
		t.Errorf("food before swallowing = %d, want 2", got)
	}

	sched.Advance(time.Millisecond)
	select {
	case <-f.Done():
	default:
		t.Fatal("feed not resolved at swallowing")
	}
	if err := f.Wait(context.Background()); err != nil {
		t.Errorf("Wait = %v", err)
	}
	cat := s.Data().Cat
	if cat.FoodCount != 1 || cat.Weight != 4.02 || cat.LastFeedingDate == nil || *cat.LastFeedingDate != "2024-05-10" {
		t.Errorf("cat after feed = %+v", cat)
	}

	sched.Advance(animation.CycleDuration)
	if s.Animation().Busy() {
		t.Error("animation still running after a full cycle")
	}
}

func TestFeedWithoutFood(t *testing.T) {
	store := adoptedStore(t, nil)
	s, _ := newTestSession(t, store)
	commits := store.Commits

	if _, err := s.Feed(); !errors.Is(err, engine.ErrInsufficientFood) {
		t.Errorf("err = %v, want ErrInsufficientFood", err)
	}
	if s.Animation().Busy() || store.Commits != commits {
		t.Error("rejected feed had side effects")
	}
}

func TestCommitFailureKeepsSnapshot(t *testing.T) {
	store := adoptedStore(t, func(d *models.UserData) { d.Cat.FoodCount = 1 })
	s, sched := newTestSession(t, store)
	before := s.Data()
	store.CommitErr = errors.New("disk full")

	if _, err := s.AddSchedule("2024-05-10", "09:00", "10:00", "class"); !errors.Is(err, storage.ErrCommitFailed) {
		t.Errorf("AddSchedule err = %v", err)
	}
	if _, err := s.SubmitCheckIn(models.SportWalk); !errors.Is(err, storage.ErrCommitFailed) {
		t.Errorf("SubmitCheckIn err = %v", err)
	}
	if s.Animation().Busy() {
		t.Error("failed check-in started an animation")
	}

	f, err := s.Feed()
	if err != nil {
		t.Fatal(err)
	}
	sched.Advance(animation.CycleDuration)
	if err := f.Wait(context.Background()); !errors.Is(err, storage.ErrCommitFailed) {
		t.Errorf("feed Wait = %v", err)
	}

	if !reflect.DeepEqual(s.Data(), before) {
		t.Errorf("snapshot changed after failed commits:\n got %+v\nwant %+v", s.Data(), before)
	}
}

func TestSchedules(t *testing.T) {
	store := adoptedStore(t, nil)
	s, _ := newTestSession(t, store)

	if _, err := s.AddSchedule("2024-05-10", "09:00", "10:00", "   "); !errors.Is(err, engine.ErrEmptyTask) {
		t.Errorf("empty task err = %v", err)
	}
	class, err := s.AddSchedule("2024-05-10", "09:00", "11:00", "class")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSchedule("2024-05-10", "10:00", "12:00", "gym"); err != nil {
		t.Fatalf("overlapping item rejected: %v", err)
	}

	got := s.FreeTimeToday().Labels()
	want := []string{"06:00-09:00", "12:00-22:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("free time = %v, want %v", got, want)
	}
	if items := s.Schedules("2024-05-10"); len(items) != 2 || items[0].Task != "class" {
		t.Errorf("schedules = %+v", items)
	}

	commits := store.Commits
	if removed, err := s.DeleteSchedule("missing"); removed || err != nil {
		t.Errorf("delete unknown = %v, %v", removed, err)
	}
	if store.Commits != commits {
		t.Error("deleting an unknown id committed")
	}
	if removed, err := s.DeleteSchedule(class.ID); !removed || err != nil {
		t.Errorf("delete = %v, %v", removed, err)
	}
	if got := s.FreeTimeToday().Labels(); !reflect.DeepEqual(got, []string{"06:00-10:00", "12:00-22:00"}) {
		t.Errorf("free time after delete = %v", got)
	}
}

func TestRenameAndQueries(t *testing.T) {
	s, _ := newTestSession(t, adoptedStore(t, nil))

	if err := s.RenameCat("  "); err != nil {
		t.Fatal(err)
	}
	if got := s.Data().Cat.Name; got != constants.DefaultCatName {
		t.Errorf("empty rename = %q", got)
	}
	if err := s.RenameCat("Tofu"); err != nil || s.Stats().CatName != "Tofu" {
		t.Errorf("rename = %v, %q", err, s.Stats().CatName)
	}

	want := []models.SportType{models.SportRunning, models.SportHiking, models.SportYoga}
	if got := s.Recommendations(); !reflect.DeepEqual(got, want) {
		t.Errorf("Recommendations() = %v, want %v", got, want)
	}
	if m := s.CurrentMonth(); m.Year != 2024 || m.Month != time.May {
		t.Errorf("CurrentMonth() = %d-%d", m.Year, m.Month)
	}
	if r := s.Validate(); r.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", r.FormatReport())
	}
}

func TestResetBacksUpAndClears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	s, sched := newTestSession(t, store)

	if err := s.Adopt("Mochi", "tuxedo"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitCheckIn(models.SportWalk); err != nil {
		t.Fatal(err)
	}
	sched.Advance(animation.CycleDuration)

	f, err := s.Feed()
	if err != nil {
		t.Fatal(err)
	}

	backupPath, err := s.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := f.Wait(context.Background()); !errors.Is(err, ErrFeedCancelled) {
		t.Errorf("pending feed = %v, want ErrFeedCancelled", err)
	}
	sched.Advance(animation.CycleDuration)

	if backupPath == "" {
		t.Fatal("no backup taken")
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Errorf("backup missing: %v", err)
	}
	snap := s.Snapshot()
	if !snap.FirstRun || snap.Screen != ScreenWelcome || snap.LoggedIn {
		t.Errorf("after reset = %+v", snap)
	}
	if !reflect.DeepEqual(snap.Data, models.DefaultUserData()) {
		t.Errorf("data after reset = %+v", snap.Data)
	}
	if _, firstRun := store.Load(models.DefaultUserData()); !firstRun {
		t.Error("store still holds state after reset")
	}
}

func TestResetWithoutStateSkipsBackup(t *testing.T) {
	s, _ := newTestSession(t, storage.NewMemoryStore())
	path, err := s.Reset()
	if err != nil || path != "" {
		t.Errorf("Reset() = %q, %v", path, err)
	}
}

func TestCheckInDateBounds(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		date    string
		wantErr error
	}{
		{"tomorrow", "2024-05-08", "2024-05-11", ErrFutureDate},
		{"next year", "2024-05-08", "2025-01-01", ErrFutureDate},
		{"before last check-in", "2024-05-08", "2024-05-07", engine.ErrOutOfOrderDate},
		{"missed yesterday", "2024-05-08", "2024-05-09", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := adoptedStore(t, func(d *models.UserData) {
				last := tt.last
				d.Cat.LastCheckInDate = &last
				d.Cat.StreakDays = 3
				d.CheckIns = []models.CheckIn{{Date: last, Type: models.SportWalk}}
			})
			s, _ := newTestSession(t, store)
			before := s.Data()
			commits := store.Commits

			_, err := s.SubmitCheckInOn(tt.date, models.SportWalk)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitCheckInOn(%s) err = %v, want %v", tt.date, err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if got := s.Data().Cat.StreakDays; got != 4 {
					t.Errorf("StreakDays = %d, want 4", got)
				}
				return
			}
			if !engine.IsRejection(err) {
				t.Errorf("err %v is not a rejection", err)
			}
			if store.Commits != commits || !reflect.DeepEqual(s.Data(), before) {
				t.Error("rejected check-in changed state")
			}
			if s.Animation().Busy() {
				t.Error("rejected check-in started an animation")
			}
		})
	}
}

// busyAtCommitStore records whether the animation was already running each
// time the aggregate was committed.
type busyAtCommitStore struct {
	*storage.MemoryStore
	seq    *animation.Sequence
	busyAt []bool
}

func (b *busyAtCommitStore) Commit(data models.UserData) error {
	if b.seq != nil {
		b.busyAt = append(b.busyAt, b.seq.Busy())
	}
	return b.MemoryStore.Commit(data)
}

func TestCheckInReservesAnimationBeforeCommit(t *testing.T) {
	store := &busyAtCommitStore{MemoryStore: adoptedStore(t, func(d *models.UserData) { d.Cat.FoodCount = 1 })}
	s, sched := newTestSession(t, store)
	store.seq = s.Animation()

	if _, err := s.SubmitCheckIn(models.SportWalk); err != nil {
		t.Fatalf("SubmitCheckIn: %v", err)
	}
	if len(store.busyAt) != 1 || !store.busyAt[0] {
		t.Fatalf("animation running at commit = %v, want [true]", store.busyAt)
	}
	if _, err := s.Feed(); !errors.Is(err, ErrBusy) {
		t.Errorf("feed during check-in cycle err = %v, want ErrBusy", err)
	}

	sched.Advance(animation.CycleDuration)
	if s.Animation().Busy() {
		t.Error("cycle did not finish")
	}
}

func TestAdoptRefusedAfterUnreadableLoad(t *testing.T) {
	store := adoptedStore(t, nil)
	store.LoadErr = errors.New("connection refused")
	s, _ := newTestSession(t, store)

	snap := s.Snapshot()
	if !snap.FirstRun || !snap.LoadFailed {
		t.Fatalf("first_run %v load_failed %v, want both set", snap.FirstRun, snap.LoadFailed)
	}
	commits := store.Commits
	if err := s.Adopt("Tofu", "calico"); !errors.Is(err, ErrStateUnreadable) || !engine.IsRejection(err) {
		t.Errorf("Adopt err = %v, want ErrStateUnreadable", err)
	}
	if store.Commits != commits {
		t.Error("adopt overwrote the unreadable state")
	}

	store.LoadErr = nil
	s2, _ := newTestSession(t, store)
	if s2.FirstRun() || s2.Data().Cat.Name != "Mochi" {
		t.Errorf("stored cat lost: first_run %v name %q", s2.FirstRun(), s2.Data().Cat.Name)
	}
}
