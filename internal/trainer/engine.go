// internal/trainer/engine.go
package trainer

// Status はセッションの状態
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusInSession Status = "in_session"
	StatusFinished  Status = "finished"
	StatusError     Status = "error"
)

// Card はセッション開始時点のカードのスナップショット (正規化済み)
type Card struct {
	ID       string            `json:"card_id"`
	Level    int               `json:"level"`
	Front    string            `json:"front"`
	Back     string            `json:"back"`
	CardType string            `json:"card_type,omitempty"`
	Media    map[string]string `json:"media,omitempty"` // 中身は解釈しない
}

// Result は直近の採点結果 (UI 表示用)
type Result struct {
	Correct bool   `json:"correct"`
	CardID  string `json:"card_id"`
}

// State はセッションの状態。遷移関数は新しい State を返し、引数は変更しない。
type State struct {
	Items      []Card  `json:"items"`
	Index      int     `json:"index"`
	Reveal     bool    `json:"reveal"`
	Status     Status  `json:"status"`
	LastResult *Result `json:"last_result,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// Current は現在のカード。範囲外なら false。
func (s State) Current() (Card, bool) {
	if s.Index < 0 || s.Index >= len(s.Items) {
		return Card{}, false
	}
	return s.Items[s.Index], true
}

// AnsweredSet は回答済みカードIDの集合
type AnsweredSet map[string]struct{}

func NewAnsweredSet(ids ...string) AnsweredSet {
	s := make(AnsweredSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (a AnsweredSet) Add(id string) { a[id] = struct{}{} }

func (a AnsweredSet) Has(id string) bool {
	_, ok := a[id]
	return ok
}

func (a AnsweredSet) Len() int { return len(a) }

// BeginLoading は取得開始 (idle/finished/error -> loading)
func BeginLoading(s State) State {
	return State{Status: StatusLoading}
}

// Fail は取得失敗。items は一切セットしない。
func Fail(s State, message string) State {
	return State{Status: StatusError, Message: message}
}

// InitSession は初期状態を作ります。空のキューは即 finished (エラーではない)。
func InitSession(items []Card) State {
	if len(items) == 0 {
		return State{Items: []Card{}, Status: StatusFinished}
	}
	cp := make([]Card, len(items))
	copy(cp, items)
	return State{Items: cp, Status: StatusInSession}
}

// Reveal は答えを表示します (冪等)
func Reveal(s State) State {
	s.Reveal = true
	return s
}

// GradeSuccess は現在のカードを正解として記録します。index は進めない。
func GradeSuccess(s State) State {
	return grade(s, true)
}

// GradeFail は現在のカードを不正解として記録します。index は進めない。
func GradeFail(s State) State {
	return grade(s, false)
}

func grade(s State, correct bool) State {
	card, ok := s.Current()
	if !ok || card.ID == "" {
		s.LastResult = nil
		return s
	}
	s.LastResult = &Result{Correct: correct, CardID: card.ID}
	return s
}

// Next は answered に含まれない次のカードへ進みます。
// index+1 から末尾まで探し、なければ先頭から元の位置の手前まで探す。
// どちらにもなければ finished。
func Next(s State, answered AnsweredSet) State {
	n := len(s.Items)
	for i := s.Index + 1; i < n; i++ {
		if !answered.Has(s.Items[i].ID) {
			return advance(s, i)
		}
	}
	for i := 0; i < s.Index && i < n; i++ {
		if !answered.Has(s.Items[i].ID) {
			return advance(s, i)
		}
	}
	s.Items = []Card{}
	s.Index = 0
	s.Reveal = false
	s.Status = StatusFinished
	return s
}

func advance(s State, i int) State {
	s.Index = i
	s.Reveal = false
	s.Status = StatusInSession
	return s
}

// RepeatCounter はセッション内で再出題した回数 (カードIDごと)
type RepeatCounter map[string]int

// Requeue は現在のカードを末尾に積み直します。
// すでに capacity 回積み直したカードは積まず false を返す。
func Requeue(s State, repeats RepeatCounter, capacity int) (State, bool) {
	card, ok := s.Current()
	if !ok || card.ID == "" {
		return s, false
	}
	if repeats[card.ID] >= capacity {
		return s, false
	}
	repeats[card.ID]++
	items := make([]Card, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	s.Items = append(items, card)
	return s, true
}
