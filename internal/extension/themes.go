package extension

import (
	"fmt"

	"github.com/d60-Lab/blog-admin/internal/model"
)

// Themes 主题列表
type Themes []model.Theme

// Select 激活 name 并取消其余主题；未知主题不改变状态，保证始终恰好一个激活
func (t Themes) Select(name string) (Themes, error) {
	found := false
	for _, th := range t {
		if th.Name == name {
			found = true
			break
		}
	}
	if !found {
		return t, fmt.Errorf("%w: theme %q", ErrUnknownEntry, name)
	}
	out := make(Themes, len(t))
	for i, th := range t {
		th.Active = th.Name == name
		out[i] = th
	}
	return out, nil
}

// Active 当前激活的主题
func (t Themes) Active() (model.Theme, bool) {
	for _, th := range t {
		if th.Active {
			return th, true
		}
	}
	return model.Theme{}, false
}
