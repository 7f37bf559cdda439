package extension

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortByName 按英文排序规则对名字做稳定排序。
// collate.Collator 不是并发安全的，每次调用新建一个。
func sortByName[T any](items []T, name func(T) string) {
	c := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}
