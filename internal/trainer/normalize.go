package trainer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go_4_vocab_trainer/internal/leitner"
)

// RawCard は外部から受け取ったままのカード (キー名が揃っていない)
type RawCard map[string]any

// ErrMissingCardID はどのキーからもIDを取り出せなかった場合
var ErrMissingCardID = errors.New("trainer: card snapshot has no resolvable id")

var (
	idKeys    = []string{"card_id", "cardId", "id", "word_id", "wordId"}
	frontKeys = []string{"front", "german", "term"}
	backKeys  = []string{"back", "swahili", "definition"}
	typeKeys  = []string{"card_type", "cardType", "type"}
	mediaKeys = []string{"image_url", "imageUrl", "audio_url", "audioUrl"}
)

// Normalize は外部のカード表現を Card に変換します。
// キー名の揺れを吸収するのはこの関数だけ。
func Normalize(raw RawCard) (Card, error) {
	id := firstString(raw, idKeys)
	if id == "" {
		return Card{}, ErrMissingCardID
	}
	card := Card{
		ID:       id,
		Level:    level(raw["level"]),
		Front:    firstString(raw, frontKeys),
		Back:     firstString(raw, backKeys),
		CardType: firstString(raw, typeKeys),
	}
	for _, k := range mediaKeys {
		if v := asString(raw[k]); v != "" {
			if card.Media == nil {
				card.Media = map[string]string{}
			}
			card.Media[k] = v
		}
	}
	return card, nil
}

// NormalizeAll は ID を解決できないものを捨てて変換します。捨てた件数も返す。
func NormalizeAll(raws []RawCard) ([]Card, int) {
	cards := make([]Card, 0, len(raws))
	skipped := 0
	for _, r := range raws {
		c, err := Normalize(r)
		if err != nil {
			skipped++
			continue
		}
		cards = append(cards, c)
	}
	return cards, skipped
}

func firstString(raw RawCard, keys []string) string {
	for _, k := range keys {
		if v := asString(raw[k]); v != "" {
			return v
		}
	}
	return ""
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

// level はレベルが無い・読めない場合 0
func level(v any) int {
	switch t := v.(type) {
	case float64:
		return leitner.ClampLevelFloat(t)
	case int:
		return leitner.ClampLevel(t)
	case int64:
		return leitner.ClampLevel(int(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return leitner.ClampLevelFloat(f)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return leitner.ClampLevelFloat(f)
		}
	}
	return 0
}
