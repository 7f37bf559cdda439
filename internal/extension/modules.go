package extension

import (
	"errors"
	"fmt"

	"github.com/d60-Lab/blog-admin/internal/model"
)

var (
	ErrUnknownEntry  = errors.New("unknown extension entry")
	ErrUnknownBucket = errors.New("unknown bucket")
)

// Bucket 模块所在分组
type Bucket string

const (
	BucketEnabled  Bucket = "enabled"
	BucketDisabled Bucket = "disabled"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketEnabled, BucketDisabled:
		return Bucket(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBucket, s)
}

// Other 返回另一个分组
func (b Bucket) Other() Bucket {
	if b == BucketEnabled {
		return BucketDisabled
	}
	return BucketEnabled
}

// Modules 启用/禁用两个分组
type Modules struct {
	Enabled  []model.Module `json:"enabled"`
	Disabled []model.Module `json:"disabled"`
}

func (m Modules) bucket(b Bucket) []model.Module {
	if b == BucketEnabled {
		return m.Enabled
	}
	return m.Disabled
}

// Toggle 把 name 从 from 移到另一个分组，目标分组按名字重新排序，源分组保持原顺序。
// 接收者不会被修改。
func (m Modules) Toggle(name string, from Bucket) (Modules, error) {
	if _, err := ParseBucket(string(from)); err != nil {
		return m, err
	}
	src := m.bucket(from)
	idx := -1
	for i, mod := range src {
		if mod.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m, fmt.Errorf("%w: module %q not in %s", ErrUnknownEntry, name, from)
	}

	moved := src[idx]
	rest := make([]model.Module, 0, len(src)-1)
	for _, mod := range src {
		if mod.Name != name {
			rest = append(rest, mod)
		}
	}
	dst := make([]model.Module, 0, len(m.bucket(from.Other()))+1)
	for _, mod := range m.bucket(from.Other()) {
		if mod.Name != name {
			dst = append(dst, mod)
		}
	}
	dst = append(dst, moved)
	sortByName(dst, func(mod model.Module) string { return mod.Name })

	if from == BucketEnabled {
		return Modules{Enabled: rest, Disabled: dst}, nil
	}
	return Modules{Enabled: dst, Disabled: rest}, nil
}
