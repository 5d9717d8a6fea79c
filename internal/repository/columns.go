package repository

import "strings"

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// prefixColumns добавляет алиас таблицы к колонкам для запросов с JOIN.
func prefixColumns(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
