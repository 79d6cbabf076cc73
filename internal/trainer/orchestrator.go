// internal/trainer/orchestrator.go
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go_4_vocab_trainer/internal/leitner"
)

// Mode はセッション履歴に記録するモード
type Mode string

const (
	ModeLeitner Mode = "LEITNER"
	ModeDrill   Mode = "DRILL"
)

// Source は出題カードの取得元
type Source string

const (
	SourceDue        Source = "due"         // 復習日が来たカード (スケジュールを更新する)
	SourceAll        Source = "all"         // 全カード (ドリル、スケジュールは触らない)
	SourceLastMissed Source = "last_missed" // 直近で間違えたカード
)

// Mode は取得元に対応する履歴上のモード
func (s Source) Mode() Mode {
	if s == SourceDue {
		return ModeLeitner
	}
	return ModeDrill
}

// DefaultRepeatCap はセッション内で同じカードを積み直す上限
const DefaultRepeatCap = 2

// GradeInput は採点結果の保存リクエスト
type GradeInput struct {
	CardID       string
	Correct      bool
	CurrentLevel int
}

// Summary はセッション終了時に一度だけ保存する記録
type Summary struct {
	Mode         Mode     `json:"mode"`
	TotalCount   int      `json:"total_count"`
	CorrectCount int      `json:"correct_count"`
	WrongCardIDs []string `json:"wrong_card_ids"`
}

// Store はオーケストレータが使う保存先。所有者は実装側で固定されている。
type Store interface {
	FetchDueCards(ctx context.Context, cardType string) ([]Card, error)
	FetchAllCards(ctx context.Context, cardType string) ([]Card, error)
	FetchLastMissed(ctx context.Context, cardType string) ([]Card, error)
	UpsertGrade(ctx context.Context, in GradeInput) error
	AddLastMissed(ctx context.Context, cardID string) error
	RemoveLastMissed(ctx context.Context, cardID string) error
	AppendSessionSummary(ctx context.Context, summary Summary) error
}

var (
	ErrNotInSession = errors.New("trainer: no active session")
	ErrNoCurrent    = errors.New("trainer: current card has no id")
)

// Orchestrator は純粋なセッション状態と Store をつなぎます。
// 1つの UI 操作フローから使う前提で、ロックは持たない。
type Orchestrator struct {
	store     Store
	logger    *slog.Logger
	repeatCap int

	source        Source
	state         State
	answered      AnsweredSet
	repeats       RepeatCounter
	order         []string        // 初回出題順のカードID
	wrong         map[string]bool // 一度でも間違えたカード
	summaryPosted bool
}

type Option func(*Orchestrator)

// WithRepeatCap は積み直し上限を変更します (0 で積み直ししない)
func WithRepeatCap(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.repeatCap = n
		}
	}
}

func NewOrchestrator(store Store, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		store:     store,
		logger:    logger,
		repeatCap: DefaultRepeatCap,
		state:     State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State は現在の状態のコピー
func (o *Orchestrator) State() State {
	return o.state
}

// Source は現在のセッションの取得元
func (o *Orchestrator) Source() Source {
	return o.source
}

// Start はカードを取得してセッションを初期化します。
// 取得に失敗した場合は error 状態にしてエラーを返す。
func (o *Orchestrator) Start(ctx context.Context, source Source, cardType string) error {
	logger := o.logger.With("source", string(source), "card_type", cardType)
	o.state = BeginLoading(o.state)

	var (
		items []Card
		err   error
	)
	switch source {
	case SourceDue:
		items, err = o.store.FetchDueCards(ctx, cardType)
	case SourceAll:
		items, err = o.store.FetchAllCards(ctx, cardType)
	case SourceLastMissed:
		items, err = o.store.FetchLastMissed(ctx, cardType)
	default:
		err = fmt.Errorf("trainer: unknown source %q", source)
	}
	if err != nil {
		logger.Error("Failed to load session cards", "error", err)
		o.state = Fail(o.state, "カードの取得に失敗しました。")
		return err
	}

	o.source = source
	o.answered = NewAnsweredSet()
	o.repeats = RepeatCounter{}
	o.wrong = map[string]bool{}
	o.summaryPosted = false
	o.order = o.order[:0]
	seen := map[string]bool{}
	for _, c := range items {
		if c.ID != "" && !seen[c.ID] {
			seen[c.ID] = true
			o.order = append(o.order, c.ID)
		}
	}

	o.state = InitSession(items)
	logger.Info("Session started", "count", len(items))
	if o.state.Status == StatusFinished {
		// 空のキューは記録しない
		o.summaryPosted = true
	}
	return nil
}

// Reveal は答えを表示します
func (o *Orchestrator) Reveal() State {
	o.state = Reveal(o.state)
	return o.state
}

// Grade は現在のカードを採点し、保存が成功してから次へ進みます。
// 保存に失敗した場合は同じカードのまま in_session を維持して、エラーを返す。
func (o *Orchestrator) Grade(ctx context.Context, correct bool) error {
	if o.state.Status != StatusInSession {
		return ErrNotInSession
	}

	// a. 記録 (純粋)
	if correct {
		o.state = GradeSuccess(o.state)
	} else {
		o.state = GradeFail(o.state)
	}

	// b. 現在のカードID
	card, ok := o.state.Current()
	if !ok || card.ID == "" {
		return ErrNoCurrent
	}
	logger := o.logger.With("card_id", card.ID, "correct", correct)

	// c. 不正解なら直近ミスに追加
	if !correct {
		if err := o.store.AddLastMissed(ctx, card.ID); err != nil {
			logger.Error("Failed to add card to last missed", "error", err)
			o.state.Message = "間違えたカードの記録に失敗しました。もう一度採点してください。"
			return fmt.Errorf("add last missed: %w", err)
		}
	}

	// d. 採点結果を保存 (ドリル系はスケジュールを触らない)
	switch o.source {
	case SourceDue:
		in := GradeInput{CardID: card.ID, Correct: correct, CurrentLevel: card.Level}
		if err := o.store.UpsertGrade(ctx, in); err != nil {
			logger.Error("Failed to persist grade", "error", err)
			o.state.Message = "採点結果の保存に失敗しました。もう一度採点してください。"
			return fmt.Errorf("upsert grade: %w", err)
		}
	case SourceLastMissed:
		if correct {
			if err := o.store.RemoveLastMissed(ctx, card.ID); err != nil {
				logger.Error("Failed to remove card from last missed", "error", err)
				o.state.Message = "直近ミスの更新に失敗しました。もう一度採点してください。"
				return fmt.Errorf("remove last missed: %w", err)
			}
		}
	}
	o.state.Message = ""

	// e. セッション内の積み直しと回答済み管理
	if correct {
		o.answered.Add(card.ID)
	} else {
		o.wrong[card.ID] = true
		var requeued bool
		o.state, requeued = Requeue(o.state, o.repeats, o.repeatCap)
		if !requeued {
			o.answered.Add(card.ID)
		} else if o.source == SourceDue {
			// 保存済みのレベルに合わせる。再出題で正解したら 0 から昇格する。
			last := len(o.state.Items) - 1
			o.state.Items[last].Level = leitner.NextLevelOnWrong(card.Level)
		}
	}

	o.state = Next(o.state, o.answered)
	logger.Debug("Card graded", "status", string(o.state.Status), "index", o.state.Index)

	if o.state.Status == StatusFinished {
		o.finish(ctx)
	}
	return nil
}

// Summary は現時点の集計。カードの正誤は初回の回答で決まる。
func (o *Orchestrator) Summary() Summary {
	wrongIDs := make([]string, 0, len(o.wrong))
	for _, id := range o.order {
		if o.wrong[id] {
			wrongIDs = append(wrongIDs, id)
		}
	}
	return Summary{
		Mode:         o.source.Mode(),
		TotalCount:   len(o.order),
		CorrectCount: len(o.order) - len(wrongIDs),
		WrongCardIDs: wrongIDs,
	}
}

// finish は履歴を一度だけ保存します。失敗してもセッションは終了扱い。
func (o *Orchestrator) finish(ctx context.Context) {
	if o.summaryPosted {
		return
	}
	o.summaryPosted = true
	summary := o.Summary()
	if err := o.store.AppendSessionSummary(ctx, summary); err != nil {
		o.logger.Warn("Failed to record session summary", "error", err,
			"total", summary.TotalCount, "correct", summary.CorrectCount)
		return
	}
	o.logger.Info("Session finished", "total", summary.TotalCount, "correct", summary.CorrectCount)
}
