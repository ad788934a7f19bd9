package ppap

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rindrics/ppap-cli/internal/delay"
)

// maxDecoyDraws bounds how often a decoy equal to the real password is redrawn.
const maxDecoyDraws = 8

// MaxDelayHours is the longest password delay a DeliveryPlan can express
// as a time.Duration.
const MaxDelayHours = uint(math.MaxInt64 / int64(time.Hour))

// DeliveryPlan describes how the password is disclosed.
type DeliveryPlan struct {
	// SecureMode sends a random decoy of the same length instead of the
	// real password.
	SecureMode bool
	// DelayHours postpones the password message. Zero sends it right away.
	DelayHours uint
}

// Delay returns the wait before the password message. It is only
// meaningful when DelayHours is at most MaxDelayHours.
func (p DeliveryPlan) Delay() time.Duration {
	return time.Duration(p.DelayHours) * time.Hour
}

// Event is emitted on every state transition and on every delay tick.
type Event struct {
	RunID string
	State State
	Time  time.Time

	// Delay progress, set while State is StateDelaying. Tick is zero on
	// the event that enters the state.
	Tick      int
	Ticks     int
	Elapsed   time.Duration
	Remaining time.Duration
}

// Report describes a delivery run.
type Report struct {
	RunID       string
	State       State
	SourcePath  string
	Recipient   string
	ArchivePath string
	// RealPassword opens the archive. It is kept for the operator and is
	// never sent in secure mode.
	RealPassword string
	// Decoy is true when a decoy was sent instead of RealPassword.
	Decoy bool
	// CleanupErr is set when both messages were sent but the archive could
	// not be removed. The delivery itself still counts as successful.
	CleanupErr error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Orchestrator runs the split-channel delivery: encrypted archive first,
// password second.
type Orchestrator struct {
	transport Transport
	cfg       orchestratorConfig
}

// New creates an Orchestrator that sends through transport.
func New(transport Transport, opts ...Option) (*Orchestrator, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	cfg := orchestratorConfig{
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.clock == nil {
		cfg.clock = delay.RealClock()
	}
	if cfg.archiver == nil {
		cfg.archiver = DefaultArchiver()
	}
	if cfg.tickInterval <= 0 {
		cfg.tickInterval = DefaultTickInterval
	}

	return &Orchestrator{transport: transport, cfg: cfg}, nil
}

// run carries the per-call state of Deliver.
type run struct {
	o      *Orchestrator
	report *Report
	log    *zap.Logger
}

// Deliver compresses sourcePath, sends the archive to recipient, optionally
// waits, sends the password and removes the archive.
//
// On failure the returned error is a *DeliveryError and the report's State
// is StateFailed. An archive created before the failure is left on disk.
// Cancelling ctx aborts sends and the delay; it does not remove the archive.
func (o *Orchestrator) Deliver(ctx context.Context, sourcePath, recipient string, plan DeliveryPlan) (*Report, error) {
	r := &run{
		o: o,
		report: &Report{
			RunID:      uuid.NewString(),
			State:      StateCreated,
			SourcePath: sourcePath,
			Recipient:  recipient,
			StartedAt:  time.Now(),
		},
	}
	r.log = o.cfg.logger.With(zap.String("run_id", r.report.RunID))
	r.emit(Event{State: StateCreated})

	if strings.TrimSpace(recipient) == "" {
		return r.fail(ErrMissingRecipient)
	}
	if plan.DelayHours > MaxDelayHours {
		return r.fail(fmt.Errorf("%w: %d hours, max %d", ErrDelayTooLong, plan.DelayHours, MaxDelayHours))
	}
	if err := ctx.Err(); err != nil {
		return r.fail(err)
	}

	r.log.Info("compressing", zap.String("source", sourcePath))
	archive, err := o.cfg.archiver.Compress(sourcePath)
	if err != nil {
		return r.fail(err)
	}
	r.report.ArchivePath = archive.Path
	r.report.RealPassword = archive.Password
	r.transition(StateCompressed, zap.String("archive", archive.Path))

	err = o.transport.SendMessageWithAttachment(ctx, attachmentMessage(recipient, archive, o.cfg.sender))
	if err != nil {
		return r.fail(err)
	}
	r.transition(StateAttachmentSent)

	disclosed := archive.Password
	if plan.SecureMode {
		disclosed, err = decoyFor(archive.Password)
		if err != nil {
			return r.fail(err)
		}
		r.report.Decoy = true
	}
	r.transition(StatePasswordComputed, zap.Bool("decoy", plan.SecureMode))

	if wait := plan.Delay(); wait > 0 {
		r.report.State = StateDelaying
		r.log.Info(StateDelaying.String(), zap.Duration("delay", wait))
		r.emit(Event{
			State:     StateDelaying,
			Ticks:     delay.Ticks(wait, o.cfg.tickInterval),
			Remaining: wait,
		})
		if err := r.wait(ctx, wait); err != nil {
			return r.fail(err)
		}
	}

	if err := o.transport.SendMessage(ctx, passwordMessage(recipient, archive, disclosed, o.cfg.sender)); err != nil {
		return r.fail(err)
	}
	r.transition(StatePasswordSent)

	if err := o.cfg.archiver.Cleanup(archive.Path); err != nil {
		r.report.CleanupErr = err
		r.report.FinishedAt = time.Now()
		r.log.Warn("archive cleanup failed", zap.String("archive", archive.Path), zap.Error(err))
		return r.report, nil
	}
	r.report.FinishedAt = time.Now()
	r.transition(StateCleanedUp)

	return r.report, nil
}

func (r *run) wait(ctx context.Context, total time.Duration) error {
	w := &delay.Waiter{
		Tick:  r.o.cfg.tickInterval,
		Clock: r.o.cfg.clock,
		OnTick: func(p delay.Progress) {
			r.log.Debug("waiting",
				zap.Int("tick", p.Tick),
				zap.Int("ticks", p.Ticks),
				zap.Duration("remaining", p.Remaining),
			)
			r.emit(Event{
				State:     StateDelaying,
				Tick:      p.Tick,
				Ticks:     p.Ticks,
				Elapsed:   p.Elapsed,
				Remaining: p.Remaining,
			})
		},
	}
	return w.Wait(ctx, total)
}

func (r *run) transition(s State, fields ...zap.Field) {
	r.report.State = s
	r.log.Info(s.String(), fields...)
	r.emit(Event{State: s})
}

func (r *run) fail(err error) (*Report, error) {
	step := r.report.State
	r.report.State = StateFailed
	r.report.FinishedAt = time.Now()

	r.log.Error("delivery failed",
		zap.String("step", step.String()),
		zap.String("archive", r.report.ArchivePath),
		zap.Error(err),
	)
	r.emit(Event{State: StateFailed})

	return r.report, &DeliveryError{
		Step:        step,
		ArchivePath: r.report.ArchivePath,
		Err:         err,
	}
}

func (r *run) emit(e Event) {
	if r.o.cfg.observer == nil {
		return
	}
	e.RunID = r.report.RunID
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	r.o.cfg.observer(e)
}

// decoyFor draws a decoy of the real password's length. The decoy is
// generated independently; it is only redrawn if it happens to match.
func decoyFor(real string) (string, error) {
	for i := 0; i < maxDecoyDraws; i++ {
		decoy, err := GenerateDecoy(len(real))
		if err != nil {
			return "", fmt.Errorf("generate decoy: %w", err)
		}
		if decoy != real {
			return decoy, nil
		}
	}
	return "", fmt.Errorf("generate decoy: %d draws matched the real password", maxDecoyDraws)
}

func attachmentMessage(to string, a *Archive, sender string) EmailMessage {
	body := fmt.Sprintf("Please find the attached encrypted file (%s).\n"+
		"The password will be sent in a separate email.\n", a.SourceFileName)
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("[PPAP] Encrypted file: %s", a.SourceFileName),
		Body:    body + signature(sender),
		Attachment: &Attachment{
			Path:     a.Path,
			Filename: a.SourceFileName + ".zip",
		},
	}
}

func passwordMessage(to string, a *Archive, password, sender string) EmailMessage {
	body := fmt.Sprintf("The password for the encrypted file %s is:\n\n%s\n", a.SourceFileName, password)
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("[PPAP] Password for %s", a.SourceFileName),
		Body:    body + signature(sender),
	}
}

func signature(sender string) string {
	if sender == "" {
		return ""
	}
	return "\n--\n" + sender + "\n"
}
