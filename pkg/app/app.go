package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/logging"
	"tableflip.dev/contentcal/pkg/metrics"
	"tableflip.dev/contentcal/pkg/store"
	"tableflip.dev/contentcal/pkg/timeutil"
)

// Service is the mutation gateway over the entry store. It writes through to
// Persistence when one is configured so UIs, the CLI and the MCP server share
// one set of rules. Mutations are serialised per service.
type Service struct {
	Store       *store.Store
	Persistence store.Persistence

	// Validate defaults to NewValidator().
	Validate *validator.Validate
	// DefaultPlatform is used when a new entry names no platforms.
	DefaultPlatform string
	// SuccessWindow bounds the success-rate metric of views. Zero is all time.
	SuccessWindow time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	Log     *logrus.Entry
	Metrics *metrics.Recorder

	mu   sync.Mutex
	once sync.Once
}

func (s *Service) init() {
	s.once.Do(func() {
		if s.Store == nil {
			s.Store = store.NewStore()
		}
		if s.Validate == nil {
			s.Validate = NewValidator()
		}
		if s.Now == nil {
			s.Now = time.Now
		}
		if s.Log == nil {
			s.Log = logging.For("app")
		}
		if strings.TrimSpace(s.DefaultPlatform) == "" {
			s.DefaultPlatform = store.DefaultPlatform
		}
	})
}

// Reload replaces the in-memory snapshot with what Persistence holds. It
// excludes mutations so a slow scan cannot restore a stale snapshot.
func (s *Service) Reload(ctx context.Context) error {
	s.init()
	if s.Persistence == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Persistence.ListAll(ctx)
	if err != nil {
		return err
	}
	s.Store.Replace(all)
	s.Metrics.StoreSize(s.Store.Len())
	s.Log.WithField("entries", len(all)).Debug("reloaded snapshot")
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Entries returns the entries matching f.
func (s *Service) Entries(_ context.Context, f store.Filter) []*entry.Entry {
	s.init()
	return s.Store.Filter(f)
}

// Get returns the entry with the given id.
func (s *Service) Get(_ context.Context, id string) (*entry.Entry, error) {
	s.init()
	e, ok := s.Store.Get(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return e, nil
}

// View runs the calendar pipeline over the current snapshot.
func (s *Service) View(_ context.Context, req calendar.ViewRequest, opts ...calendar.Option) (calendar.View, error) {
	s.init()
	opts = append([]calendar.Option{calendar.WithSuccessWindow(s.SuccessWindow)}, opts...)
	view, err := calendar.Build(req, s.Store.GetAll(), s.Now(), opts...)
	if err != nil {
		return calendar.View{}, err
	}
	s.Metrics.ViewBuilt(string(view.Request.Mode), view.Conflicts)
	return view, nil
}

// Create validates and stores a new entry. Only the calendar date is
// required; unset fields take the defaults: an untitled planned post at 09:00
// with medium priority on the default platform.
func (s *Service) Create(ctx context.Context, in NewEntry) (_ *entry.Entry, err error) {
	s.init()
	defer s.observe("create", time.Now(), &err)

	if in.CalendarDate.IsZero() {
		return nil, &ValidationError{Field: "calendar_date", Reason: "required"}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = entry.DefaultTitle
	}
	e := entry.New(title, in.CalendarDate, in.TargetPlatforms...)
	if len(e.TargetPlatforms) == 0 {
		e.TargetPlatforms = []string{s.DefaultPlatform}
	}
	if in.TimeSlot != "" {
		slot, _, err := timeutil.ParseSlot(in.TimeSlot)
		if err != nil {
			return nil, &ValidationError{Field: "time_slot", Reason: "must be HH:MM"}
		}
		e.TimeSlot = slot
	}
	if in.ContentType != "" {
		if e.ContentType, err = entry.ParseContentType(in.ContentType); err != nil {
			return nil, &ValidationError{Field: "content_type", Reason: err.Error()}
		}
	}
	if in.Status != "" {
		if e.Status, err = entry.ParseStatus(in.Status); err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
	}
	if in.Priority != "" {
		if e.Priority, err = entry.ParsePriority(in.Priority); err != nil {
			return nil, &ValidationError{Field: "priority", Reason: err.Error()}
		}
	}
	e.Description = in.Description
	e.ContentPreview = in.ContentPreview
	e.AutoGenerated = in.AutoGenerated
	e.IsRecurring = in.IsRecurring
	e.RecurringPattern = in.RecurringPattern
	e.ParentCalendarID = in.ParentCalendarID
	e.ExpectedEngagement = in.ExpectedEngagement

	if err := s.Validate.Struct(e); err != nil {
		return nil, toValidationError(err)
	}

	now := s.Now()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.Touch(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(e); err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"op": "create", "entry_id": e.ID, "date": e.CalendarDate.String()}).Info("entry created")
	return e.Clone(), nil
}

// Move reschedules an entry. Moving to the day it is already on changes
// nothing. Conflicts never block a move; they show up on the next view.
func (s *Service) Move(ctx context.Context, id string, date entry.Date) (*entry.Entry, error) {
	return s.Dispatch(ctx, MoveCommand{EntryID: id, TargetDate: date})
}

// Dispatch applies a MoveCommand.
func (s *Service) Dispatch(_ context.Context, cmd MoveCommand) (_ *entry.Entry, err error) {
	s.init()
	defer s.observe("move", time.Now(), &err)

	if cmd.TargetDate.IsZero() {
		return nil, &ValidationError{Field: "target_date", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(cmd.EntryID, cmd.Version)
	if err != nil {
		return nil, err
	}
	if e.CalendarDate.Equal(cmd.TargetDate) {
		return e, nil
	}
	from := e.CalendarDate
	e.CalendarDate = entry.DateOf(cmd.TargetDate.Time)
	e.Touch(s.Now())
	if err := s.commit(e); err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{
		"op":       "move",
		"entry_id": e.ID,
		"from":     from.String(),
		"to":       e.CalendarDate.String(),
	}).Info("entry moved")
	return e.Clone(), nil
}

// BulkUpdateStatus sets status on every known id. Unknown ids are skipped
// rather than failing the batch, and the lifecycle is not enforced so an
// operator can correct any entry.
func (s *Service) BulkUpdateStatus(_ context.Context, ids []string, status string) (_ BulkResult, err error) {
	s.init()
	defer s.observe("bulk_status", time.Now(), &err)

	next, err := entry.ParseStatus(status)
	if err != nil {
		return BulkResult{}, &ValidationError{Field: "status", Reason: err.Error()}
	}

	result := BulkResult{Updated: []*entry.Entry{}, Skipped: []string{}}
	seen := make(map[string]struct{}, len(ids))

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		e, ok := s.Store.Get(id)
		if !ok {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if e.Status != next {
			e.Status = next
			e.Touch(now)
			if err := s.commit(e); err != nil {
				s.Log.WithError(err).WithField("entry_id", id).Warn("bulk status update failed")
				if result.Errors == nil {
					result.Errors = make(map[string]string)
				}
				result.Errors[id] = err.Error()
				result.Skipped = append(result.Skipped, id)
				continue
			}
		}
		result.Updated = append(result.Updated, e.Clone())
	}
	s.Log.WithFields(logrus.Fields{
		"op":      "bulk_status",
		"status":  next,
		"updated": len(result.Updated),
		"skipped": len(result.Skipped),
	}).Info("bulk status update")
	return result, nil
}

// Transition changes the status of a single entry, following the lifecycle.
// A non-zero version must match the entry's current version.
func (s *Service) Transition(_ context.Context, id string, status string, version int) (_ *entry.Entry, err error) {
	s.init()
	defer s.observe("transition", time.Now(), &err)

	next, err := entry.ParseStatus(status)
	if err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(id, version)
	if err != nil {
		return nil, err
	}
	if e.Status == next {
		return e, nil
	}
	if !e.Status.CanTransition(next) {
		return nil, &TransitionError{ID: id, From: e.Status, To: next}
	}
	from := e.Status
	e.Status = next
	e.Touch(s.Now())
	if err := s.commit(e); err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"op": "transition", "entry_id": id, "from": from, "to": next}).Info("entry transitioned")
	return e.Clone(), nil
}

// Delete removes an entry permanently.
func (s *Service) Delete(_ context.Context, id string) (err error) {
	s.init()
	defer s.observe("delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(id, 0)
	if err != nil {
		return err
	}
	if s.Persistence != nil {
		if err := s.Persistence.Delete(e); err != nil {
			return err
		}
	}
	s.Store.Remove(id)
	s.Metrics.StoreSize(s.Store.Len())
	s.Log.WithFields(logrus.Fields{"op": "delete", "entry_id": id}).Info("entry deleted")
	return nil
}

// CheckSlot returns the existing entries that would conflict with an entry
// placed on date at slot for any of platforms.
func (s *Service) CheckSlot(_ context.Context, date entry.Date, slot string, platforms []string) ([]*entry.Entry, error) {
	s.init()
	if date.IsZero() {
		return nil, &ValidationError{Field: "calendar_date", Reason: "required"}
	}
	canonical, _, err := timeutil.ParseSlot(slot)
	if err != nil {
		return nil, &ValidationError{Field: "time_slot", Reason: "must be HH:MM"}
	}
	platforms = entry.NormalizePlatforms(platforms)
	if len(platforms) == 0 {
		platforms = []string{s.DefaultPlatform}
	}

	const probeID = "\x00probe"
	probe := entry.New("", date, platforms...)
	probe.ID = probeID
	probe.TimeSlot = canonical

	sameDay := []*entry.Entry{probe}
	byID := make(map[string]*entry.Entry)
	for _, e := range s.Store.GetAll() {
		if e.CalendarDate.Equal(date) {
			sameDay = append(sameDay, e)
			byID[e.ID] = e
		}
	}
	ids := calendar.DetectConflicts(sameDay)[probeID]
	out := make([]*entry.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out, nil
}

// lookup returns a copy of the entry, checking the expected version when one
// is given. Callers hold s.mu.
func (s *Service) lookup(id string, version int) (*entry.Entry, error) {
	e, ok := s.Store.Get(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if version > 0 && e.Version != version {
		return nil, &VersionConflictError{ID: id, Expected: version, Actual: e.Version}
	}
	return e, nil
}

// commit writes through to persistence first so the store never holds an
// entry that failed to save. Callers hold s.mu.
func (s *Service) commit(e *entry.Entry) error {
	if s.Persistence != nil {
		if err := s.Persistence.Store(e); err != nil {
			return err
		}
	}
	if err := s.Store.Upsert(e); err != nil {
		return err
	}
	s.Metrics.StoreSize(s.Store.Len())
	return nil
}

func (s *Service) observe(op string, started time.Time, err *error) {
	s.Metrics.Mutation(op, started, *err)
	if *err != nil {
		s.Log.WithError(*err).WithField("op", op).Debug("mutation rejected")
	}
}
