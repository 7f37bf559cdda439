package extension

import (
	"fmt"

	"github.com/d60-Lab/blog-admin/internal/model"
)

// Feathers 文章类型列表，启用状态保存在每一项上
type Feathers []model.Feather

// Toggle 翻转 name 的启用状态，返回新切片
func (f Feathers) Toggle(name string) (Feathers, error) {
	out := make(Feathers, len(f))
	found := false
	for i, fe := range f {
		if fe.Name == name {
			fe.Enabled = !fe.Enabled
			found = true
		}
		out[i] = fe
	}
	if !found {
		return f, fmt.Errorf("%w: feather %q", ErrUnknownEntry, name)
	}
	return out, nil
}

func (f Feathers) Enabled() []model.Feather  { return f.filter(true) }
func (f Feathers) Disabled() []model.Feather { return f.filter(false) }

func (f Feathers) filter(enabled bool) []model.Feather {
	out := make([]model.Feather, 0, len(f))
	for _, fe := range f {
		if fe.Enabled == enabled {
			out = append(out, fe)
		}
	}
	sortByName(out, func(fe model.Feather) string { return fe.Name })
	return out
}
