package language

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hay-kot/criterio"
)

// Strings is the set of display strings for one language.
type Strings struct {
	Title            string
	Subtitle         string
	InputPlaceholder string
	SubmitButton     string
	LoadingText      string
	HistoryTitle     string
	HistoryEmpty     string
	SuggestedRecipes string
	ErrorMessage     string
	RemoveConfirm    string
	LanguageLabel    string
}

// fields returns the strings keyed by name. Blank values are omitted so a
// missing translation shows up as a missing key.
func (s Strings) fields() map[string]string {
	all := map[string]string{
		"title":             s.Title,
		"subtitle":          s.Subtitle,
		"input_placeholder": s.InputPlaceholder,
		"submit_button":     s.SubmitButton,
		"loading_text":      s.LoadingText,
		"history_title":     s.HistoryTitle,
		"history_empty":     s.HistoryEmpty,
		"suggested_recipes": s.SuggestedRecipes,
		"error_message":     s.ErrorMessage,
		"remove_confirm":    s.RemoveConfirm,
		"language_label":    s.LanguageLabel,
	}
	for k, v := range all {
		if v == "" {
			delete(all, k)
		}
	}
	return all
}

// Table maps each language to its display strings.
type Table map[Code]Strings

// Translations is the built-in translations table.
var Translations = Table{
	English: {
		Title:            "What Should I Cook?",
		Subtitle:         "Enter your ingredients, and I'll suggest recipes for you!",
		InputPlaceholder: "E.g., tomatoes, cheese, eggs",
		SubmitButton:     "Suggest Recipes",
		LoadingText:      "Preparing Recipes...",
		HistoryTitle:     "Search History",
		HistoryEmpty:     "No searches yet",
		SuggestedRecipes: "Suggested Recipes",
		ErrorMessage:     "Sorry, an error occurred. Please try again later.",
		RemoveConfirm:    "Remove this search from history?",
		LanguageLabel:    "Language",
	},
	Turkish: {
		Title:            "Ne Yemek Yapsam?",
		Subtitle:         "Malzemelerinizi girin, size özel tarifler önereceğim!",
		InputPlaceholder: "Örn: domates, peynir, yumurta",
		SubmitButton:     "Tarif Öner",
		LoadingText:      "Tarifler Hazırlanıyor...",
		HistoryTitle:     "Geçmiş Aramalar",
		HistoryEmpty:     "Henüz arama yok",
		SuggestedRecipes: "Önerilen Tarifler",
		ErrorMessage:     "Üzgünüm, bir hata oluştu. Lütfen daha sonra tekrar deneyin.",
		RemoveConfirm:    "Bu arama geçmişten silinsin mi?",
		LanguageLabel:    "Dil",
	},
}

// For returns the strings for code, falling back to the default language.
func (t Table) For(code Code) Strings {
	if s, ok := t[code]; ok {
		return s
	}
	return t[Default]
}

// ValidateTable checks that every supported language has an entry and that
// all entries define the same set of keys as the default language.
func ValidateTable(t Table) error {
	var errs criterio.FieldErrors

	base, ok := t[Default]
	if !ok {
		return fieldError(string(Default), errors.New("missing translations for default language"))
	}
	baseKeys := base.fields()

	for _, code := range All {
		s, ok := t[code]
		if !ok {
			errs = append(errs, fieldError(string(code), errors.New("missing translations"))...)
			continue
		}

		keys := s.fields()
		for _, k := range sortedKeys(baseKeys) {
			if _, ok := keys[k]; !ok {
				errs = append(errs, fieldError(string(code)+"."+k, errors.New("missing translation"))...)
			}
		}
		for _, k := range sortedKeys(keys) {
			if _, ok := baseKeys[k]; !ok {
				errs = append(errs, fieldError(string(code)+"."+k, fmt.Errorf("not defined for %s", Default))...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldError(field string, err error) criterio.FieldErrors {
	return criterio.FieldErrors{{Field: field, Err: err}}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
