package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
	"github.com/adamdince/ShopifyAuditor/internal/core/policy"
	"github.com/adamdince/ShopifyAuditor/internal/core/store"
	"github.com/adamdince/ShopifyAuditor/internal/utils/logger"
)

const ExecutionTest = "Monitor Execution"

// Runner performs one monitoring pass: launch, run every checker in order
// on a single session, close the session, persist.
type Runner struct {
	Service  string
	Launcher browser.Launcher
	Checkers []check.Checker

	// Local is the durable record; its error fails the run.
	Local store.Store
	// Remote stores are best effort.
	Remote []store.Store

	Notifiers []notify.Notifier
	Policy    policy.Policy

	Log      *logger.Logger
	Now      func() time.Time
	OnResult func(check.Result)
}

// Report is what a finished run produced.
type Report struct {
	Date    string
	Results []check.Result
}

func (r *Runner) Run(ctx context.Context) (*Report, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	log := r.Log
	if log == nil {
		log = logger.Discard()
	}

	stamp := check.NewStamp(now(), now)
	buf := check.NewBuffer(r.OnResult)

	log.Infof("monitor run started: date=%s checks=%d", stamp.Date, len(r.Checkers))
	if err := r.execute(ctx, stamp, buf, log); err != nil {
		log.Errorf("monitor execution: %v", err)
		buf.Add(stamp.Fail(ExecutionTest, "Monitor failed: "+err.Error()))
	}

	report := &Report{Date: stamp.Date, Results: buf.Results()}
	if err := r.persist(ctx, report, log); err != nil {
		return report, err
	}
	r.notify(ctx, report, now(), log)
	log.Infof("monitor run finished: %d results, highest status %s", buf.Len(), buf.Highest())
	return report, nil
}

// execute owns the session; it is closed before execute returns.
func (r *Runner) execute(ctx context.Context, stamp check.Stamp, buf *check.Buffer, log *logger.Logger) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	if r.Launcher == nil {
		return errors.New("no browser launcher configured")
	}
	sess, err := r.Launcher.Launch(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warnf("close browser: %v", cerr)
		}
	}()

	for _, c := range r.Checkers {
		log.Debugf("running check %q", c.Name())
		results, err := runChecker(ctx, c, sess, stamp)
		buf.Add(results...)
		if err != nil {
			log.Errorf("check %q: %v", c.Name(), err)
			buf.Add(stamp.Fail(c.Name(), "Unexpected error: "+err.Error()))
		}
	}
	return nil
}

func runChecker(ctx context.Context, c check.Checker, sess browser.Session, stamp check.Stamp) (results []check.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return c.Check(ctx, sess, stamp)
}

func (r *Runner) persist(ctx context.Context, report *Report, log *logger.Logger) error {
	// Persistence still runs after the run context was canceled.
	saveCtx := context.WithoutCancel(ctx)

	if r.Local != nil {
		if err := r.Local.Save(saveCtx, report.Date, report.Results); err != nil {
			return fmt.Errorf("save %s: %w", r.Local.Name(), err)
		}
		log.Infof("results saved: %s", r.Local.Name())
	}
	for _, s := range r.Remote {
		if err := s.Save(saveCtx, report.Date, report.Results); err != nil {
			log.Errorf("upload %s: %v", s.Name(), err)
			continue
		}
		log.Infof("results uploaded: %s (%d rows)", s.Name(), len(report.Results))
	}
	return nil
}

func (r *Runner) notify(ctx context.Context, report *Report, at time.Time, log *logger.Logger) {
	if len(r.Notifiers) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	event := notify.Summarize(r.Service, report.Date, report.Results, at)
	if r.Policy != nil {
		ev, err := r.Policy.Evaluate(ctx, event)
		if err != nil {
			log.Errorf("notify policy: %v", err)
			return
		}
		if ev == nil {
			log.Debugf("notify skipped: status %s below threshold", event.Status)
			return
		}
		event = *ev
	}
	for _, n := range r.Notifiers {
		if err := n.Send(ctx, event); err != nil {
			log.Errorf("notify %s: %v", n.Name(), err)
			continue
		}
		log.Infof("notify %s: %s %s", n.Name(), event.Service, event.Status)
	}
}
