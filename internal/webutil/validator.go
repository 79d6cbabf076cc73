package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"front":          "表面",
	"back":           "裏面",
	"card_type":      "カード種別",
	"image_url":      "画像URL",
	"audio_url":      "音声URL",
	"is_correct":     "回答の正誤",
	"current_level":  "現在のレベル",
	"mode":           "モード",
	"total_count":    "出題数",
	"correct_count":  "正解数",
	"wrong_card_ids": "不正解カード",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得する
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// {0} = 日本語フィールド名, {1} = タグのパラメータ
	override := map[string]string{
		"required": "{0}は必須項目です。",
		"url":      "{0}は有効なURLではありません。",
		"uuid":     "{0}は有効なIDではありません。",
		"oneof":    "{0}は[{1}]のいずれかを指定してください。",
		"min":      "{0}は{1}以上で入力してください。",
		"max":      "{0}は{1}以下で入力してください。",
	}
	for tag, msg := range override {
		tag, msg := tag, msg
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe), fe.Param())
			return t
		})
	}
}
