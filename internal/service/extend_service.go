package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-admin/internal/extension"
	"github.com/d60-Lab/blog-admin/internal/repository"
	"github.com/d60-Lab/blog-admin/pkg/logger"
)

// ExtendService 扩展页（Modules / Feathers / Themes）的会话内状态
type ExtendService interface {
	State(ctx context.Context, sessionID string) extension.State
	ToggleModule(ctx context.Context, sessionID, name string, from extension.Bucket) (extension.State, error)
	ToggleFeather(ctx context.Context, sessionID, name string) (extension.State, error)
	SelectTheme(ctx context.Context, sessionID, name string) (extension.State, error)
	Reset(ctx context.Context, sessionID string) error
}

type extendService struct {
	repo repository.ExtendStateRepository
}

func NewExtendService(repo repository.ExtendStateRepository) ExtendService {
	return &extendService{repo: repo}
}

// State 读取失败时退回默认目录，不影响页面渲染
func (s *extendService) State(ctx context.Context, sessionID string) extension.State {
	st, ok, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("load extend state failed", zap.String("session", sessionID), zap.Error(err))
		return extension.DefaultState()
	}
	if !ok {
		return extension.DefaultState()
	}
	return st
}

func (s *extendService) ToggleModule(ctx context.Context, sessionID, name string, from extension.Bucket) (extension.State, error) {
	return s.update(ctx, sessionID, func(st extension.State) (extension.State, error) {
		mods, err := st.Modules.Toggle(name, from)
		if err != nil {
			return st, err
		}
		st.Modules = mods
		return st, nil
	})
}

func (s *extendService) ToggleFeather(ctx context.Context, sessionID, name string) (extension.State, error) {
	return s.update(ctx, sessionID, func(st extension.State) (extension.State, error) {
		f, err := st.Feathers.Toggle(name)
		if err != nil {
			return st, err
		}
		st.Feathers = f
		return st, nil
	})
}

func (s *extendService) SelectTheme(ctx context.Context, sessionID, name string) (extension.State, error) {
	return s.update(ctx, sessionID, func(st extension.State) (extension.State, error) {
		th, err := st.Themes.Select(name)
		if err != nil {
			return st, err
		}
		st.Themes = th
		return st, nil
	})
}

// Reset 丢弃会话状态，下次读取回到默认目录
func (s *extendService) Reset(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// update 读取失败时直接返回错误，不能用默认目录覆盖会话中已有的状态
func (s *extendService) update(ctx context.Context, sessionID string, fn func(extension.State) (extension.State, error)) (extension.State, error) {
	cur, ok, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("load extend state failed", zap.String("session", sessionID), zap.Error(err))
		return extension.DefaultState(), fmt.Errorf("load extend state: %w", err)
	}
	if !ok {
		cur = extension.DefaultState()
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	if err := s.repo.Save(ctx, sessionID, next); err != nil {
		return cur, err
	}
	logger.Debug("extend state saved", zap.String("session", sessionID))
	return next, nil
}
