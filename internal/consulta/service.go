// Package consulta runs the lookup pipeline behind the webhook: extract the
// process number, resolve its tribunal, query DataJud and format the reply.
package consulta

import (
	"context"
	"time"

	"github.com/JustJay7/datajud-bridge/internal/cache"
	"github.com/JustJay7/datajud-bridge/internal/cnj"
	"github.com/JustJay7/datajud-bridge/internal/database"
	"github.com/JustJay7/datajud-bridge/internal/datajud"
	"github.com/JustJay7/datajud-bridge/internal/reply"
	"github.com/JustJay7/datajud-bridge/pkg/logger"
)

// User-facing guidance for input that cannot be looked up.
const (
	MessageNoNumber   = "❌ Número de processo não identificado. Por favor, envie apenas o número do processo (ex: 1234567-89.2023.4.01.1234)."
	MessageNoTribunal = "❌ Não foi possível identificar o tribunal. Verifique o número do processo."
)

// Searcher queries a tribunal index for a process.
type Searcher interface {
	Search(ctx context.Context, number, alias string) datajud.Result
}

// Recorder persists one outcome row per lookup.
type Recorder interface {
	Record(ctx context.Context, entry *database.QueryLog) error
}

// Outcome is what a lookup produced. ProcessNumber and Tribunal are empty
// unless Success is true.
type Outcome struct {
	Success       bool
	Message       string
	ProcessNumber string
	Tribunal      string
	Kind          database.Outcome
	FromCache     bool
}

// Service wires the pipeline stages together.
type Service struct {
	searcher  Searcher
	cache     cache.Cache
	formatter *reply.Formatter
	recorder  Recorder
	timeout   time.Duration
	logger    *logger.Logger
}

// NewService builds a lookup service. cache and recorder may be nil.
func NewService(searcher Searcher, c cache.Cache, formatter *reply.Formatter, recorder Recorder, timeout time.Duration, log *logger.Logger) *Service {
	if c == nil {
		c = cache.NewCache(0, 0)
	}
	if timeout <= 0 {
		timeout = datajud.DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		searcher:  searcher,
		cache:     c,
		formatter: formatter,
		recorder:  recorder,
		timeout:   timeout,
		logger:    log,
	}
}

// Lookup runs the pipeline for one message. clientIP is only stored in the
// audit log.
func (s *Service) Lookup(ctx context.Context, text, clientIP string) Outcome {
	start := time.Now()
	entry := &database.QueryLog{QueryTime: start, IPAddress: clientIP}

	out, res := s.lookup(ctx, text)

	entry.Outcome = out.Kind
	entry.Success = out.Success
	entry.Tribunal = out.Tribunal
	entry.FromCache = out.FromCache
	entry.DurationMS = time.Since(start).Milliseconds()
	if res != nil {
		entry.FailReason = string(res.Reason)
		entry.StatusCode = res.StatusCode
		if res.Err != nil {
			entry.ErrorMessage = res.Err.Error()
		}
	}
	s.record(ctx, entry)

	return out
}

func (s *Service) lookup(ctx context.Context, text string) (Outcome, *datajud.Result) {
	number, ok := cnj.Extract(text)
	if !ok {
		s.logger.Debug("No process number in message")
		return Outcome{Message: MessageNoNumber, Kind: database.OutcomeNoNumber}, nil
	}

	alias, err := cnj.ResolveTribunal(number)
	if err != nil {
		s.logger.Info("Could not resolve tribunal", "digits", len(number), "error", err)
		return Outcome{Message: MessageNoTribunal, Kind: database.OutcomeNoTribunal}, nil
	}

	out := Outcome{Success: true, ProcessNumber: number, Tribunal: alias}

	key := cache.GenerateCacheKey(alias, number)
	if cached, found := s.cache.Get(key); found {
		s.logger.Info("Cache hit", "tribunal", alias)
		res := datajud.Success(cached)
		out.FromCache = true
		out.Kind = kindOf(res)
		out.Message = s.formatter.Format(res)
		return out, &res
	}

	// The remote call outlives a disconnected caller; only the timeout stops it.
	searchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	res := s.searcher.Search(searchCtx, number, alias)
	if res.OK() {
		if err := s.cache.Set(key, res.Response); err != nil {
			s.logger.Warn("Failed to cache response", "error", err)
		}
	}

	out.Kind = kindOf(res)
	out.Message = s.formatter.Format(res)
	return out, &res
}

func (s *Service) record(ctx context.Context, entry *database.QueryLog) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("Failed to record query", "error", err)
	}
}

func kindOf(res datajud.Result) database.Outcome {
	if !res.OK() {
		return database.OutcomeUnavailable
	}
	if _, ok := res.Response.First(); !ok {
		return database.OutcomeNotFound
	}
	return database.OutcomeFound
}
