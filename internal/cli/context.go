package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/backup"
	"github.com/julianstephens/miaomotion/internal/config"
	"github.com/julianstephens/miaomotion/internal/geo"
	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/notifier"
	"github.com/julianstephens/miaomotion/internal/session"
	"github.com/julianstephens/miaomotion/internal/storage"
	"github.com/julianstephens/miaomotion/internal/utils"
	"github.com/julianstephens/miaomotion/internal/weather"
)

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config config.Config

	// Scheduler and Now override the animation clock and wall clock; nil
	// means real time.
	Scheduler animation.Scheduler
	Now       func() time.Time

	session    *session.Session
	animHooked bool
}

// Session lazily builds the controller over Store.
func (c *Context) Session() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	opts, err := c.sessionOptions()
	if err != nil {
		return nil, err
	}
	s, err := session.New(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

func (c *Context) sessionOptions() (session.Options, error) {
	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		return session.Options{}, fmt.Errorf("invalid timezone: %w", err)
	}
	sched := c.Scheduler
	if sched == nil {
		sched = animation.RealScheduler{Speed: c.Config.AnimationSpeed}
	}
	opts := session.Options{
		Store:     c.Store,
		Scheduler: sched,
		Locator:   geo.StaticLocator{Granted: c.Config.LocationGranted},
		Weather: weather.StaticProvider{
			Temp:      c.Config.WeatherTemp,
			Condition: models.WeatherCondition(c.Config.WeatherCondition),
			Wind:      c.Config.WeatherWind,
		},
		Location: loc,
		Now:      c.Now,
	}
	if c.Config.Notify {
		opts.Notifier = notifier.New()
	}
	return opts, nil
}

// Close waits for background work and releases the store.
func (c *Context) Close() error {
	if c.session != nil {
		c.session.Close()
	}
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// PerformAutomaticBackup backs up file-backed stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsFileBacked(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
