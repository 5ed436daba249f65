// Package session is the controller between the front-ends and the rules
// engine. It holds the non-persisted UI state, runs every transition against
// the current snapshot, commits the result and drives the feeding animation.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/backup"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/geo"
	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/storage"
	"github.com/julianstephens/miaomotion/internal/utils"
	"github.com/julianstephens/miaomotion/internal/validation"
	"github.com/julianstephens/miaomotion/internal/weather"
)

var (
	ErrNotFirstRun   = fmt.Errorf("%w: cat already adopted", engine.ErrRejected)
	ErrNeedsAdoption = fmt.Errorf("%w: adopt a cat first", engine.ErrRejected)
	ErrBusy          = fmt.Errorf("%w: animation in progress", engine.ErrRejected)
	ErrInvalidLogin  = fmt.Errorf("%w: invalid login", engine.ErrRejected)
	ErrUnknownScreen = fmt.Errorf("%w: unknown screen", engine.ErrRejected)
	ErrFutureDate    = fmt.Errorf("%w: date is in the future", engine.ErrRejected)

	// ErrStateUnreadable blocks adoption when stored state exists but could
	// not be read, so defaults are never written over it.
	ErrStateUnreadable = fmt.Errorf("%w: stored data could not be read", engine.ErrRejected)
	// ErrFeedCancelled is reported by a Feeding whose cycle was cancelled
	// before the cat swallowed.
	ErrFeedCancelled = errors.New("feeding cancelled")
)

// Screen identifies the active view.
type Screen string

const (
	ScreenWelcome  Screen = "welcome"
	ScreenHome     Screen = "home"
	ScreenCalendar Screen = "calendar"
	ScreenGrowth   Screen = "growth"
	ScreenSchedule Screen = "schedule"
	ScreenProfile  Screen = "profile"
)

// Screens lists the navigable screens in tab order.
var Screens = []Screen{ScreenHome, ScreenCalendar, ScreenGrowth, ScreenSchedule, ScreenProfile}

// Notifier delivers reward messages. Failures are logged and otherwise ignored.
type Notifier interface {
	Notify(text string) error
}

// Options configures a Session. Store is required.
type Options struct {
	Store     storage.Provider
	Scheduler animation.Scheduler
	Locator   geo.Locator
	Weather   weather.Provider
	Notifier  Notifier
	Location  *time.Location
	Now       func() time.Time
}

// Session is safe for concurrent use. The feeding animation calls back into
// it from timer goroutines.
type Session struct {
	store    storage.Provider
	anim     *animation.Sequence
	locator  geo.Locator
	provider weather.Provider
	notifier Notifier
	loc      *time.Location
	now      func() time.Time

	mu            sync.Mutex
	data          models.UserData
	firstRun      bool
	loggedIn      bool
	screen        Screen
	locationLabel string
	weather       models.WeatherData
	feeding       *Feeding
	loadErr       error
	notifyWG      sync.WaitGroup
}

// Snapshot is a consistent copy of everything a front-end renders.
type Snapshot struct {
	Data           models.UserData
	FirstRun       bool
	LoggedIn       bool
	Screen         Screen
	LocationLabel  string
	Weather        models.WeatherData
	Phase          animation.Phase
	Today          string
	CheckedInToday bool
	// LoadFailed is set when stored data exists but could not be read.
	LoadFailed     bool
}

// New loads the persisted aggregate and resolves location and weather.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if opts.Scheduler == nil {
		opts.Scheduler = animation.RealScheduler{Speed: 1}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	data, firstRun := opts.Store.Load(models.DefaultUserData())
	s := &Session{
		store:         opts.Store,
		anim:          animation.NewSequence(opts.Scheduler),
		locator:       opts.Locator,
		provider:      opts.Weather,
		notifier:      opts.Notifier,
		loc:           opts.Location,
		now:           opts.Now,
		data:          data,
		firstRun:      firstRun,
		loadErr:       storage.LoadError(opts.Store),
		screen:        ScreenHome,
		locationLabel: constants.LocationLabelPending,
	}
	if s.loadErr != nil {
		logger.Warn("Stored data unreadable, adoption disabled until it loads", "error", s.loadErr)
	}
	if firstRun {
		s.screen = ScreenWelcome
	}
	logger.Debug("Session started", "store", opts.Store.GetConfigPath(), "first_run", firstRun)

	s.RefreshLocation(ctx)
	return s, nil
}

// RefreshLocation resolves the location label and then the weather for it.
// A failed weather lookup keeps the previous reading.
func (s *Session) RefreshLocation(ctx context.Context) {
	label := geo.Resolve(ctx, s.locator)

	var (
		w   models.WeatherData
		err error
	)
	if s.provider != nil {
		w, err = s.provider.Current(ctx, label)
		if err != nil {
			logger.Warn("Weather lookup failed", "location", label, "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.locationLabel = label
	if s.provider != nil && err == nil {
		s.weather = w
	}
}

// Animation exposes the feeding animation for front-ends that render it.
// Phase listeners may run while the session lock is held and must not call
// back into the Session.
func (s *Session) Animation() *animation.Sequence {
	return s.anim
}

// Today is the current calendar date in the session's timezone.
func (s *Session) Today() string {
	return utils.FormatDate(s.now().In(s.loc))
}

func (s *Session) Snapshot() Snapshot {
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Data:           s.data.Clone(),
		FirstRun:       s.firstRun,
		LoggedIn:       s.loggedIn,
		Screen:         s.screen,
		LocationLabel:  s.locationLabel,
		Weather:        s.weather,
		Phase:          s.anim.Phase(),
		Today:          today,
		CheckedInToday: s.data.HasCheckedIn(today),
		LoadFailed:     s.loadErr != nil,
	}
}

// Data returns a copy of the current aggregate.
func (s *Session) Data() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

func (s *Session) FirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRun
}

// commit persists next and makes it current. On failure the previous
// snapshot stays current. Caller holds mu.
func (s *Session) commit(next models.UserData, action string, keyvals ...interface{}) error {
	if err := s.store.Commit(next); err != nil {
		logger.Error("Commit failed", append([]interface{}{"action", action, "error", err}, keyvals...)...)
		return err
	}
	s.data = next
	logger.Info("Committed", append([]interface{}{"action", action}, keyvals...)...)
	return nil
}

func reject(action string, err error) error {
	logger.Debug("Rejected", "action", action, "reason", err)
	return err
}

// requireAdopted is called with mu held.
func (s *Session) requireAdopted(action string) error {
	if s.firstRun {
		return reject(action, ErrNeedsAdoption)
	}
	return nil
}

// Login checks the cosmetic phone/code form.
func (s *Session) Login(phone, code string) error {
	if err := validation.Struct(validation.LoginForm{Phone: phone, Code: code}); err != nil {
		return reject("login", fmt.Errorf("%w: %v", ErrInvalidLogin, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	logger.Debug("Logged in")
	return nil
}

// Adopt names the cat and ends first-run mode. Only allowed once per
// lifetime of the stored data.
func (s *Session) Adopt(name, breed string) error {
	if err := validation.Struct(validation.AdoptForm{Name: name, Breed: breed}); err != nil {
		return reject("adopt", fmt.Errorf("%w: %v", engine.ErrRejected, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.firstRun {
		return reject("adopt", ErrNotFirstRun)
	}
	if s.loadErr != nil {
		return reject("adopt", fmt.Errorf("%w: %v", ErrStateUnreadable, s.loadErr))
	}
	next, err := engine.Adopt(s.data, name, models.Breed(breed))
	if err != nil {
		return reject("adopt", err)
	}
	if err := s.commit(next, "adopt", "name", next.Cat.Name, "breed", next.Cat.Breed); err != nil {
		return err
	}
	s.firstRun = false
	s.screen = ScreenHome
	return nil
}

// SubmitCheckIn records today's check-in.
func (s *Session) SubmitCheckIn(sport models.SportType) (engine.CheckInResult, error) {
	return s.SubmitCheckInOn(s.Today(), sport)
}

// SubmitCheckInOn records a check-in for date, commits it and plays one
// animation cycle. Milestone rewards are pushed to the notifier. Dates after
// today are rejected.
func (s *Session) SubmitCheckInOn(date string, sport models.SportType) (engine.CheckInResult, error) {
	today := s.Today()

	s.mu.Lock()
	if err := s.requireAdopted("checkin"); err != nil {
		s.mu.Unlock()
		return engine.CheckInResult{}, err
	}
	if s.anim.Busy() {
		s.mu.Unlock()
		return engine.CheckInResult{}, reject("checkin", ErrBusy)
	}
	if utils.ValidateDateFormat(date) && date > today {
		s.mu.Unlock()
		return engine.CheckInResult{}, reject("checkin", fmt.Errorf("%w: %s is after %s", ErrFutureDate, date, today))
	}
	next, res, err := engine.SubmitCheckIn(s.data, date, sport)
	if err != nil {
		s.mu.Unlock()
		return engine.CheckInResult{}, reject("checkin", err)
	}
	// Reserve the cycle before committing so a concurrent feed cannot take it.
	if err := s.anim.Start(nil); err != nil {
		s.mu.Unlock()
		return engine.CheckInResult{}, reject("checkin", ErrBusy)
	}
	err = s.commit(next, "checkin", "date", date, "type", sport, "streak", res.Streak, "milestone", res.Milestone)
	s.mu.Unlock()
	if err != nil {
		s.anim.Cancel()
		return engine.CheckInResult{}, err
	}

	if res.Milestone > 0 {
		s.notify(RewardMessage(res))
	}
	return res, nil
}

// Feeding is an accepted feed. The mutation lands when the animation reaches
// the swallowing step.
type Feeding struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newFeeding() *Feeding {
	return &Feeding{done: make(chan struct{})}
}

func (f *Feeding) finish(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the feed has been committed, failed or been cancelled.
func (f *Feeding) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the feed resolves and returns its commit error.
func (f *Feeding) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Feed starts one feeding cycle. Food is checked now, but consumed and
// committed only at the swallowing step.
func (s *Session) Feed() (*Feeding, error) {
	s.mu.Lock()
	if err := s.requireAdopted("feed"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !engine.CanFeed(s.data) {
		s.mu.Unlock()
		return nil, reject("feed", engine.ErrInsufficientFood)
	}
	if s.anim.Busy() {
		s.mu.Unlock()
		return nil, reject("feed", ErrBusy)
	}
	f := newFeeding()
	s.feeding = f
	s.mu.Unlock()

	if err := s.anim.Start(func() { s.swallow(f) }); err != nil {
		s.mu.Lock()
		if s.feeding == f {
			s.feeding = nil
		}
		s.mu.Unlock()
		return nil, reject("feed", ErrBusy)
	}
	return f, nil
}

func (s *Session) swallow(f *Feeding) {
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feeding == f {
		s.feeding = nil
	}
	next, err := engine.Feed(s.data, today)
	if err != nil {
		f.finish(reject("feed", err))
		return
	}
	f.finish(s.commit(next, "feed", "food", next.Cat.FoodCount, "weight", next.Cat.Weight))
}

// AddSchedule adds a busy block. Overlaps and inverted ranges are accepted.
func (s *Session) AddSchedule(date, start, end, task string) (models.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdopted("schedule_add"); err != nil {
		return models.ScheduleItem{}, err
	}
	next, item, err := engine.AddSchedule(s.data, date, start, end, task)
	if err != nil {
		return models.ScheduleItem{}, reject("schedule_add", err)
	}
	if err := s.commit(next, "schedule_add", "id", item.ID, "date", date, "range", start+"-"+end); err != nil {
		return models.ScheduleItem{}, err
	}
	return item, nil
}

// DeleteSchedule removes an item. Unknown ids are a no-op and commit nothing.
func (s *Session) DeleteSchedule(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdopted("schedule_delete"); err != nil {
		return false, err
	}
	next, removed := engine.DeleteSchedule(s.data, id)
	if !removed {
		return false, nil
	}
	if err := s.commit(next, "schedule_delete", "id", id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) RenameCat(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdopted("rename"); err != nil {
		return err
	}
	next := engine.RenameCat(s.data, name)
	return s.commit(next, "rename", "name", next.Cat.Name)
}

// Screen returns the active screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Navigate switches the active screen. Before adoption only the welcome
// screen is reachable.
func (s *Session) Navigate(to Screen) error {
	if to != ScreenWelcome && !isScreen(to) {
		return reject("navigate", fmt.Errorf("%w %q", ErrUnknownScreen, to))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.firstRun && to != ScreenWelcome {
		return reject("navigate", ErrNeedsAdoption)
	}
	if !s.firstRun && to == ScreenWelcome {
		to = ScreenHome
	}
	s.screen = to
	return nil
}

func isScreen(sc Screen) bool {
	for _, known := range Screens {
		if known == sc {
			return true
		}
	}
	return false
}

// Reset cancels any running animation, backs up file-backed stores, clears
// the stored aggregate and returns to first-run. The backup path is empty
// when nothing was backed up.
func (s *Session) Reset() (string, error) {
	s.anim.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if f := s.feeding; f != nil {
		s.feeding = nil
		f.finish(ErrFeedCancelled)
	}

	var backupPath string
	if storage.IsFileBacked(s.store) {
		path := s.store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			backupPath, err = backup.NewManager(path).CreateBackup()
			if err != nil {
				return "", fmt.Errorf("backup before reset failed: %w", err)
			}
		}
	}

	if err := s.store.Clear(); err != nil {
		logger.Error("Clear failed", "error", err)
		return "", err
	}
	s.data = models.DefaultUserData()
	s.firstRun = true
	s.loadErr = nil
	s.loggedIn = false
	s.screen = ScreenWelcome
	logger.Info("Reset all data", "backup", backupPath)
	return backupPath, nil
}

// Close waits for in-flight notifications.
func (s *Session) Close() {
	s.notifyWG.Wait()
}

func (s *Session) notify(text string) {
	if s.notifier == nil {
		return
	}
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		if err := s.notifier.Notify(text); err != nil {
			logger.Debug("Reward notification not delivered", "error", err)
		}
	}()
}
