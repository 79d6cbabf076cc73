package trainer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_IDAliases(t *testing.T) {
	for _, key := range []string{"card_id", "cardId", "id", "word_id", "wordId"} {
		t.Run(key, func(t *testing.T) {
			got, err := Normalize(RawCard{key: "c-1", "front": "Haus", "back": "nyumba"})
			require.NoError(t, err)
			assert.Equal(t, "c-1", got.ID)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawCard
		want    Card
		wantErr error
	}{
		{
			name: "正常系: 標準の形",
			raw:  RawCard{"card_id": "a", "level": float64(3), "front": "Hund", "back": "mbwa", "card_type": "vocab"},
			want: Card{ID: "a", Level: 3, Front: "Hund", Back: "mbwa", CardType: "vocab"},
		},
		{
			name: "正常系: 別名のフィールド",
			raw:  RawCard{"id": float64(42), "german": "Katze", "swahili": "paka", "type": "sentence"},
			want: Card{ID: "42", Level: 0, Front: "Katze", Back: "paka", CardType: "sentence"},
		},
		{
			name: "正常系: レベルが文字列",
			raw:  RawCard{"cardId": "b", "level": "4"},
			want: Card{ID: "b", Level: 4},
		},
		{
			name: "正常系: レベルが範囲外なら丸める",
			raw:  RawCard{"card_id": "c", "level": float64(12)},
			want: Card{ID: "c", Level: 5},
		},
		{
			name: "正常系: メディアはそのまま渡す",
			raw:  RawCard{"card_id": "d", "image_url": "https://img/x.png", "audio_url": "s3://a.mp3"},
			want: Card{ID: "d", Media: map[string]string{"image_url": "https://img/x.png", "audio_url": "s3://a.mp3"}},
		},
		{
			name:    "異常系: IDがない",
			raw:     RawCard{"front": "Baum"},
			wantErr: ErrMissingCardID,
		},
		{
			name:    "異常系: IDが空文字",
			raw:     RawCard{"card_id": "  ", "id": ""},
			wantErr: ErrMissingCardID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_JSONNumber(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`[{"word_id": 7, "level": 2, "term": "Buch", "definition": "kitabu"}, {"front": "x"}]`))
	dec.UseNumber()
	var raws []RawCard
	require.NoError(t, dec.Decode(&raws))

	got, skipped := NormalizeAll(raws)
	assert.Equal(t, 1, skipped)
	require.Len(t, got, 1)
	assert.Equal(t, Card{ID: "7", Level: 2, Front: "Buch", Back: "kitabu"}, got[0])
}
