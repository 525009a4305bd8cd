package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const (
	DefaultJoinTimeout = 90 * time.Second

	// ThemeCancel closes the theme picker without changing anything.
	ThemeCancel = "cancel"

	sinkTimeout = 5 * time.Second
)

type ThemeContext string

const (
	ThemeContextPreGame ThemeContext = "pre-game"
	ThemeContextInGame  ThemeContext = "in-game"
)

type sessionRepo interface {
	Get(chatID string) (*entity.Session, bool)
	HasActive(chatID string) bool
	Put(chatID string, session *entity.Session)
	Remove(chatID string)
}

type preferenceRepo interface {
	GetTheme(userID string) (string, bool)
	SetTheme(userID, themeID string)
}

type themeRegistry interface {
	Lookup(id string) entity.Theme
	All() []entity.Theme
}

type renderer interface {
	// Send posts a new board message and returns its reference.
	Send(ctx context.Context, view *entity.View) (string, error)
	Update(ctx context.Context, view *entity.View) error
}

type notifier interface {
	Notify(ctx context.Context, userID, text string, urgency entity.Urgency) error
}

type moderator interface {
	IsBlocked(ctx context.Context, userID string) (bool, error)
}

type statsRecorder interface {
	Record(ctx context.Context, record entity.GameRecord) error
}

type timeoutScheduler interface {
	Schedule(name string, delay time.Duration, callback func()) entity.Cancelable
}

type NewGameRequest struct {
	ChatID string
	Player entity.Player
	// MessageRef is set when the request comes from a finished board's
	// button; that message is reused instead of sending a new one.
	MessageRef string
}

type MoveRequest struct {
	ChatID     string
	MessageRef string
	Player     entity.Player
	Cell       int
}

type ThemeRequest struct {
	ChatID     string
	MessageRef string
	Player     entity.Player
	ThemeID    string
	Context    ThemeContext
}

type Option func(*GameManager)

// WithModerator gates new games and moves on the actor's moderation status.
func WithModerator(moderator moderator) Option {
	return func(that *GameManager) {
		that.moderator = moderator
	}
}

// WithStats records every win and draw.
func WithStats(stats statsRecorder) Option {
	return func(that *GameManager) {
		that.stats = stats
	}
}

func WithJoinTimeout(timeout time.Duration) Option {
	return func(that *GameManager) {
		that.joinTimeout = timeout
	}
}

// WithFirstMark replaces the coin flip deciding the creator's mark.
func WithFirstMark(firstMark func() entity.Mark) Option {
	return func(that *GameManager) {
		that.firstMark = firstMark
	}
}

// GameManager arbitrates every action on chat sessions. Actions on the same
// chat run one at a time; different chats never wait on each other.
type GameManager struct {
	logger *slog.Logger

	sessions    sessionRepo
	preferences preferenceRepo
	themes      themeRegistry
	renderer    renderer
	notifier    notifier
	scheduler   timeoutScheduler
	moderator   moderator
	stats       statsRecorder

	joinTimeout time.Duration
	firstMark   func() entity.Mark

	locks *xsync.MapOf[string, *chatLock]
}

// chatLock serializes one chat. holders counts goroutines holding or waiting
// for it and is only touched inside locks.Compute; the entry is dropped when
// it reaches zero.
type chatLock struct {
	mu      sync.Mutex
	holders int
}

func NewGameManager(
	logger *slog.Logger,
	sessions sessionRepo,
	preferences preferenceRepo,
	themes themeRegistry,
	renderer renderer,
	notifier notifier,
	scheduler timeoutScheduler,
	opts ...Option,
) *GameManager {
	manager := &GameManager{
		logger: logger.With("component", "game_manager"),

		sessions:    sessions,
		preferences: preferences,
		themes:      themes,
		renderer:    renderer,
		notifier:    notifier,
		scheduler:   scheduler,

		joinTimeout: DefaultJoinTimeout,
		firstMark:   randomMark,

		locks: xsync.NewMapOf[string, *chatLock](),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func randomMark() entity.Mark {
	if rand.Intn(2) == 0 { //nolint:gosec // a coin flip for who starts
		return entity.MarkX
	}

	return entity.MarkO
}

// RequestNewGame opens a session in the chat with the requester as the only
// player. An existing active session is returned together with
// apperror.ErrGameAlreadyActive. Returned sessions are snapshots.
func (that *GameManager) RequestNewGame(ctx context.Context, req NewGameRequest) (*entity.Session, error) {
	log := that.logger.With("method", "RequestNewGame", "chatID", req.ChatID, "userID", req.Player.ID)

	var (
		snapshot *entity.Session
		reply    notice
	)

	err := that.withChat(req.ChatID, func() (err error) {
		defer func() {
			if err != nil {
				reply = rejection(err, snapshot)
			}
		}()

		if err = that.checkBlocked(ctx, req.Player.ID); err != nil {
			return err
		}

		if that.sessions.HasActive(req.ChatID) {
			existing, _ := that.sessions.Get(req.ChatID)
			snapshot = existing.Snapshot()
			return apperror.ErrGameAlreadyActive
		}

		previous, replacing := that.sessions.Get(req.ChatID)

		creator := req.Player
		session := entity.NewSession(req.ChatID, &creator, that.firstMark(), that.preferredTheme(req.Player.ID))
		that.sessions.Put(req.ChatID, session)

		committed := false
		defer func() {
			switch {
			case committed:
			case replacing:
				that.sessions.Put(req.ChatID, previous)
			default:
				that.sessions.Remove(req.ChatID)
			}
		}()

		view := boardView(session, that.joinTimeout)

		if req.MessageRef != "" {
			view.MessageRef = req.MessageRef
			if err = that.renderer.Update(ctx, view); err != nil {
				return fmt.Errorf("%w: failed to render new game: %w", apperror.ErrInternal, err)
			}
			session.MessageRef = req.MessageRef
		} else {
			ref, sendErr := that.renderer.Send(ctx, view)
			if sendErr != nil {
				return fmt.Errorf("%w: failed to render new game: %w", apperror.ErrInternal, sendErr)
			}
			session.MessageRef = ref
		}

		session.Status = entity.StatusWaiting
		session.Timeout = that.scheduleTimeout(session.ChatID, session.ID)
		committed = true

		snapshot = session.Snapshot()
		reply = toast("🎲 You started a new game and play " + session.Theme.Glyph(creator.Mark) + ".")

		return nil
	})
	if err != nil {
		that.reject(ctx, log, req.Player.ID, err, reply)
		return snapshot, err
	}

	log.Info("game created", "sessionID", snapshot.ID, "mark", snapshot.MarkOf(req.Player.ID))
	that.notify(ctx, req.Player.ID, reply)

	return snapshot, nil
}

// SubmitMove handles a press on a board cell. A press by someone who is not
// yet a player joins them to a waiting session first.
func (that *GameManager) SubmitMove(ctx context.Context, req MoveRequest) (*entity.Session, error) {
	log := that.logger.With("method", "SubmitMove", "chatID", req.ChatID, "userID", req.Player.ID, "cell", req.Cell)

	var (
		snapshot *entity.Session
		reply    notice
	)

	err := that.withChat(req.ChatID, func() (err error) {
		var session *entity.Session
		defer func() {
			snapshot = session.Snapshot()
			if err != nil {
				reply = rejection(err, session)
			}
		}()

		if err = that.checkBlocked(ctx, req.Player.ID); err != nil {
			return err
		}

		current, ok := that.sessions.Get(req.ChatID)
		if !ok || current.MessageRef == "" || current.MessageRef != req.MessageRef {
			return apperror.ErrStaleOrUnknownSession
		}
		session = current

		if session.IsFinished() {
			return apperror.ErrGameAlreadyOver
		}

		if req.Cell < 0 || req.Cell >= entity.BoardSize {
			return fmt.Errorf("%w: cell %d", apperror.ErrInvalidInput, req.Cell)
		}

		mark := session.MarkOf(req.Player.ID)
		joined := false

		if mark == entity.NoMark {
			player := req.Player

			if mark, err = session.Join(&player); err != nil {
				if errors.Is(err, entity.ErrSessionFull) {
					return apperror.ErrGameFull
				}
				return fmt.Errorf("%w: failed to join: %w", apperror.ErrInternal, err)
			}

			joined = true
			session.CancelTimeout()
			log.Info("player joined", "sessionID", session.ID, "mark", mark)

			if mark != session.Turn {
				that.render(ctx, session)
				reply = toast("✅ You joined as " + session.Theme.Glyph(mark) + ". It's your opponent's turn!")
				return nil
			}
		}

		if mark != session.Turn {
			return apperror.ErrNotYourTurn
		}

		if !session.Board[req.Cell].IsEmpty() {
			if joined {
				that.render(ctx, session)
			}
			return apperror.ErrCellOccupied
		}

		result, err := session.Play(mark, req.Cell)
		if err != nil {
			return fmt.Errorf("%w: failed to play: %w", apperror.ErrInternal, err)
		}

		that.render(ctx, session)

		switch {
		case result.Outcome == entity.OutcomeWin:
			that.record(ctx, session)
			reply = toast("🏆 You won!")
		case result.Outcome == entity.OutcomeDraw:
			that.record(ctx, session)
			reply = toast("🤝 It's a draw!")
		case joined:
			reply = toast("✅ You joined as " + session.Theme.Glyph(mark) + " and made your move.")
		default:
			reply = toast("✅ Move accepted.")
		}

		return nil
	})
	if err != nil {
		that.reject(ctx, log, req.Player.ID, err, reply)
		return snapshot, err
	}

	log.Info("move handled", "sessionID", snapshot.ID, "status", snapshot.Status)
	that.notify(ctx, req.Player.ID, reply)

	return snapshot, nil
}

// PressInert handles a press on a cell that carries no move. It only tells
// the actor when the board belongs to a finished game.
func (that *GameManager) PressInert(ctx context.Context, chatID, messageRef, userID string) {
	var finished bool

	_ = that.withChat(chatID, func() error {
		session, ok := that.sessions.Get(chatID)
		finished = !ok || session.MessageRef != messageRef || session.IsFinished()
		return nil
	})

	if finished {
		that.notify(ctx, userID, rejection(apperror.ErrGameAlreadyOver, nil))
	}
}

// OpenThemePicker replaces the board controls of the chat's running session
// with the list of themes.
func (that *GameManager) OpenThemePicker(ctx context.Context, chatID, messageRef string, player entity.Player) (*entity.Session, error) {
	log := that.logger.With("method", "OpenThemePicker", "chatID", chatID, "userID", player.ID)

	var (
		snapshot *entity.Session
		reply    notice
	)

	err := that.withChat(chatID, func() (err error) {
		var session *entity.Session
		defer func() {
			snapshot = session.Snapshot()
			if err != nil {
				reply = rejection(err, session)
			}
		}()

		if session, err = that.runningSession(chatID, messageRef, player.ID); err != nil {
			return err
		}

		if renderErr := that.renderer.Update(ctx, themePickerView(session, that.themes.All(), that.joinTimeout)); renderErr != nil {
			log.Warn("failed to render theme picker", "sessionID", session.ID, "error", renderErr)
		}

		return nil
	})
	if err != nil {
		that.reject(ctx, log, player.ID, err, reply)
		return snapshot, err
	}

	return snapshot, nil
}

// ChangeTheme stores the actor's theme preference. In game it also restyles
// the running session, and ThemeCancel just restores the board. Unknown
// identifiers resolve to the default theme.
func (that *GameManager) ChangeTheme(ctx context.Context, req ThemeRequest) (*entity.Session, error) {
	log := that.logger.With("method", "ChangeTheme", "chatID", req.ChatID, "userID", req.Player.ID, "theme", req.ThemeID)

	if req.Context == ThemeContextPreGame {
		theme := that.themes.Lookup(req.ThemeID)
		that.preferences.SetTheme(req.Player.ID, theme.ID)
		log.Info("theme preference saved")
		that.notify(ctx, req.Player.ID, toast("🎨 Your next games will use the "+theme.Name+" theme."))

		return nil, nil
	}

	var (
		snapshot *entity.Session
		reply    notice
	)

	err := that.withChat(req.ChatID, func() (err error) {
		var session *entity.Session
		defer func() {
			snapshot = session.Snapshot()
			if err != nil {
				reply = rejection(err, session)
			}
		}()

		if session, err = that.runningSession(req.ChatID, req.MessageRef, req.Player.ID); err != nil {
			return err
		}

		if req.ThemeID != ThemeCancel {
			theme := that.themes.Lookup(req.ThemeID)
			session.Theme = theme
			that.preferences.SetTheme(req.Player.ID, theme.ID)
			reply = toast("🎨 Theme changed to " + theme.Name + ".")
		}

		that.render(ctx, session)

		return nil
	})
	if err != nil {
		that.reject(ctx, log, req.Player.ID, err, reply)
		return snapshot, err
	}

	if reply.text != "" {
		log.Info("session theme changed", "sessionID", snapshot.ID)
		that.notify(ctx, req.Player.ID, reply)
	}

	return snapshot, nil
}

// TimeoutFired finishes the session sessionID if nobody has joined it yet.
// It is a no-op for any other session or state.
func (that *GameManager) TimeoutFired(ctx context.Context, chatID, sessionID string) error {
	log := that.logger.With("method", "TimeoutFired", "chatID", chatID, "sessionID", sessionID)

	return that.withChat(chatID, func() error {
		session, ok := that.sessions.Get(chatID)
		if !ok || session.ID != sessionID || !session.IsWaiting() {
			log.Debug("stale timeout ignored")
			return nil
		}

		session.Finish(entity.Result{Outcome: entity.OutcomeTimeout})
		that.render(ctx, session)

		log.Info("game cancelled, nobody joined")

		return nil
	})
}

// CurrentView renders the chat's session as it stands, for late subscribers.
func (that *GameManager) CurrentView(chatID string) (*entity.View, bool) {
	var view *entity.View

	_ = that.withChat(chatID, func() error {
		if session, ok := that.sessions.Get(chatID); ok && session.MessageRef != "" {
			view = boardView(session, that.joinTimeout)
		}
		return nil
	})

	return view, view != nil
}

// withChat runs fn under the chat's lock. A panic in fn becomes ErrInternal.
func (that *GameManager) withChat(chatID string, fn func() error) (err error) {
	lock := that.acquire(chatID)
	defer that.release(chatID, lock)

	defer func() {
		if recovered := recover(); recovered != nil {
			that.logger.Error("recovered from panic", "chatID", chatID, "panic", recovered)
			err = fmt.Errorf("%w: %v", apperror.ErrInternal, recovered)
		}
	}()

	return fn()
}

func (that *GameManager) acquire(chatID string) *chatLock {
	lock, _ := that.locks.Compute(chatID, func(lock *chatLock, loaded bool) (*chatLock, bool) {
		if !loaded {
			lock = &chatLock{}
		}
		lock.holders++

		return lock, false
	})

	lock.mu.Lock()

	return lock
}

func (that *GameManager) release(chatID string, lock *chatLock) {
	lock.mu.Unlock()

	that.locks.Compute(chatID, func(current *chatLock, _ bool) (*chatLock, bool) {
		current.holders--

		return current, current.holders == 0
	})
}

func (that *GameManager) runningSession(chatID, messageRef, userID string) (*entity.Session, error) {
	session, ok := that.sessions.Get(chatID)
	if !ok || session.MessageRef == "" || (messageRef != "" && session.MessageRef != messageRef) {
		return nil, apperror.ErrStaleOrUnknownSession
	}

	if session.IsFinished() {
		return session, apperror.ErrGameAlreadyOver
	}

	if session.MarkOf(userID) == entity.NoMark {
		return session, apperror.ErrNotAPlayer
	}

	return session, nil
}

func (that *GameManager) checkBlocked(ctx context.Context, userID string) error {
	if that.moderator == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	blocked, err := that.moderator.IsBlocked(ctx, userID)
	if err != nil {
		that.logger.Warn("moderation check failed, letting the action through", "userID", userID, "error", err)
		return nil
	}

	if blocked {
		return apperror.ErrActorBlocked
	}

	return nil
}

func (that *GameManager) preferredTheme(userID string) entity.Theme {
	id, _ := that.preferences.GetTheme(userID)
	return that.themes.Lookup(id)
}

func (that *GameManager) scheduleTimeout(chatID, sessionID string) entity.Cancelable {
	return that.scheduler.Schedule("join-timeout:"+chatID, that.joinTimeout, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()

		if err := that.TimeoutFired(ctx, chatID, sessionID); err != nil {
			that.logger.Error("failed to handle join timeout", "chatID", chatID, "sessionID", sessionID, "error", err)
		}
	})
}

// render shows the committed session state. Failures are logged only.
func (that *GameManager) render(ctx context.Context, session *entity.Session) {
	if err := that.renderer.Update(ctx, boardView(session, that.joinTimeout)); err != nil {
		that.logger.Warn("failed to render board", "chatID", session.ChatID, "sessionID", session.ID, "error", err)
	}
}

func (that *GameManager) record(ctx context.Context, session *entity.Session) {
	if that.stats == nil {
		return
	}

	record := entity.GameRecord{
		ChatID:  session.ChatID,
		Outcome: session.Result.Outcome,
	}
	if session.Result.Outcome == entity.OutcomeWin {
		record.Winner = playerName(session.Player(session.Result.Winner))
	}

	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	if err := that.stats.Record(ctx, record); err != nil {
		that.logger.Warn("failed to record game", "chatID", session.ChatID, "sessionID", session.ID, "error", err)
	}
}

func (that *GameManager) notify(ctx context.Context, userID string, reply notice) {
	if err := that.notifier.Notify(ctx, userID, reply.text, reply.urgency); err != nil {
		that.logger.Warn("failed to notify player", "userID", userID, "error", err)
	}
}

// reject logs err and sends reply, which was prepared under the chat's lock.
// A panic leaves reply empty and falls back to the generic text.
func (that *GameManager) reject(ctx context.Context, log *slog.Logger, userID string, err error, reply notice) {
	if errors.Is(err, apperror.ErrInternal) {
		log.Error("action failed", "error", err)
	} else {
		log.Info("action rejected", "error", err)
	}

	if reply.text == "" {
		reply = rejection(err, nil)
	}

	that.notify(ctx, userID, reply)
}

// ParseCell converts a cell's callback data into an index.
func ParseCell(data string) (int, error) {
	cell, err := strconv.Atoi(data)
	if err != nil || cell < 0 || cell >= entity.BoardSize {
		return 0, fmt.Errorf("%w: cell %q", apperror.ErrInvalidInput, data)
	}

	return cell, nil
}
