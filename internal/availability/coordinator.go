package availability

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

const (
	// DefaultDebounce окно, в течение которого учитывается только последний запрос
	DefaultDebounce = 300 * time.Millisecond

	// DefaultCheckTimeout таймаут одной фоновой проверки
	DefaultCheckTimeout = 5 * time.Second
)

// Option настройка координатора
type Option func(*Coordinator)

// WithDebounce задаёт окно debounce
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithPolicy задаёт ограничения длительности, по которым отсеиваются кандидаты
func WithPolicy(p domain.IntervalPolicy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithCheckTimeout задаёт таймаут фоновой проверки
func WithCheckTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithAfterFunc подменяет таймер (для тестов)
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Coordinator) { c.afterFunc = f }
}

// WithLogger задаёт логгер
func WithLogger(l Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

type request struct {
	candidate Candidate
	result    chan Outcome
}

func (r *request) resolve(o Outcome) {
	r.result <- o
	close(r.result)
}

// Coordinator даёт пользователю живую обратную связь о занятости слота.
// Запросы объединяются окном debounce, каждой отправленной проверке присваивается
// возрастающий номер, и на видимое состояние влияет только ответ на последнюю отправленную проверку.
type Coordinator struct {
	checker   Checker
	debounce  time.Duration
	timeout   time.Duration
	policy    domain.IntervalPolicy
	afterFunc AfterFunc
	logger    Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	pending        *request
	timer          Timer
	lastDispatched uint64
	view           View
	subscribers    []func(View)
	closed         bool
	version        uint64

	notifyMu  sync.Mutex
	delivered uint64 // под notifyMu
}

// NewCoordinator создает координатор поверх checker
func NewCoordinator(checker Checker, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		checker:   checker,
		debounce:  DefaultDebounce,
		timeout:   DefaultCheckTimeout,
		policy:    domain.DefaultIntervalPolicy(),
		afterFunc: realAfterFunc,
		logger:    nopLogger{},
		ctx:       ctx,
		cancel:    cancel,
		view:      View{Status: StatusUnknown},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestCheck ставит кандидата в очередь на проверку с debounce.
// Канал получает ровно один Outcome и закрывается.
// Неполный или некорректный кандидат не отправляется, видимое состояние не меняется.
func (c *Coordinator) RequestCheck(candidate Candidate) <-chan Outcome {
	req := &request{candidate: candidate, result: make(chan Outcome, 1)}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		req.resolve(Outcome{Kind: OutcomeClosed, Err: ErrClosed})
		return req.result
	}

	c.dropPendingLocked()

	if err := candidate.Slot().Validate(c.policy); err != nil {
		req.resolve(Outcome{Kind: OutcomeSkipped, Err: err})
		return req.result
	}

	c.pending = req
	c.timer = c.afterFunc(c.debounce, func() { c.fire(req) })
	return req.result
}

// SubmitCheck выполняет авторитетную проверку без debounce (перед сохранением брони).
// Отложенная живая проверка отменяется, а ранее отправленные становятся устаревшими.
func (c *Coordinator) SubmitCheck(ctx context.Context, candidate Candidate) (Verdict, error) {
	if err := candidate.Slot().Validate(c.policy); err != nil {
		return Verdict{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Verdict{}, ErrClosed
	}
	c.dropPendingLocked()
	seq := c.dispatchLocked(candidate)
	c.notifyAndUnlock()

	verdict, err := c.checker.Check(ctx, candidate)

	c.mu.Lock()
	if seq == c.lastDispatched && !c.closed {
		c.applyLocked(seq, candidate, verdict, err)
		c.notifyAndUnlock()
	} else {
		c.mu.Unlock()
	}

	return verdict, err
}

// State возвращает текущее видимое состояние
func (c *Coordinator) State() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Subscribe регистрирует обработчик изменений видимого состояния.
// Обработчик не должен вызывать SubmitCheck и Clear.
func (c *Coordinator) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Clear сбрасывает баннер, ответы на уже отправленные проверки отбрасываются
func (c *Coordinator) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.dropPendingLocked()
	c.lastDispatched++
	c.view = View{Status: StatusUnknown, Seq: c.lastDispatched}
	c.notifyAndUnlock()
}

// Close останавливает таймер и прерывает фоновые проверки
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pending != nil {
		c.pending.resolve(Outcome{Kind: OutcomeClosed, Err: ErrClosed})
		c.pending = nil
	}
	c.cancel()
}

func (c *Coordinator) fire(req *request) {
	c.mu.Lock()
	if c.pending != req {
		// таймер сработал одновременно с отменой
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.timer = nil
	seq := c.dispatchLocked(req.candidate)
	c.notifyAndUnlock()

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	verdict, err := c.checker.Check(ctx, req.candidate)
	cancel()

	c.mu.Lock()
	if seq != c.lastDispatched || c.closed {
		c.mu.Unlock()
		req.resolve(Outcome{Kind: OutcomeStale, Seq: seq, Verdict: verdict, Err: err})
		return
	}

	if err != nil {
		c.logger.Warn("availability: check seq=%d room=%d failed: %v", seq, req.candidate.RoomID, err)
	}
	c.applyLocked(seq, req.candidate, verdict, err)
	c.notifyAndUnlock()

	req.resolve(Outcome{Kind: OutcomeApplied, Seq: seq, Verdict: verdict, Err: err})
}

func (c *Coordinator) dropPendingLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pending != nil {
		c.pending.resolve(Outcome{Kind: OutcomeSuperseded})
		c.pending = nil
	}
}

func (c *Coordinator) dispatchLocked(candidate Candidate) uint64 {
	c.lastDispatched++
	c.view = View{Status: StatusChecking, Seq: c.lastDispatched, Candidate: &candidate}
	return c.lastDispatched
}

func (c *Coordinator) applyLocked(seq uint64, candidate Candidate, verdict Verdict, err error) {
	view := View{Seq: seq, Candidate: &candidate}
	switch {
	case err != nil:
		view.Status = StatusError
		view.Err = err
	case verdict.Available:
		view.Status = StatusAvailable
	default:
		view.Status = StatusConflict
		view.Conflict = verdict.Conflict
	}
	c.view = view
}

// notifyAndUnlock отпускает mu и уведомляет подписчиков снимком состояния.
// Вызывается с захваченным mu. Подписчики видят только всё более новые снимки,
// промежуточный снимок может быть пропущен, если более новый доставлен раньше.
func (c *Coordinator) notifyAndUnlock() {
	c.version++
	version := c.version
	view := c.view
	subs := make([]func(View), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if version <= c.delivered {
		return
	}
	c.delivered = version
	for _, fn := range subs {
		fn(view)
	}
}
