package utils

import (
	"strings"
	"unicode"
)

// Символы, которым не место в имени файла вложения.
const unsafeFileChars = `/\:*?"<>|`

// SanitizeFileName приводит произвольное название клуба к безопасному
// фрагменту имени файла: небезопасные символы и пробельные последовательности
// заменяются подчёркиванием, повторные подчёркивания схлопываются.
// Идемпотентна: повторный вызов возвращает ту же строку.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case strings.ContainsRune(unsafeFileChars, r), r < 0x20:
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// JoinNonEmpty склеивает непустые части через разделитель.
// Используется для строки «судья, категория» в документе и письме.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
