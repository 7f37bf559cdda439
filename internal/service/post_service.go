package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-admin/internal/model"
	"github.com/d60-Lab/blog-admin/internal/repository"
	"github.com/d60-Lab/blog-admin/pkg/logger"
)

// 写文章页的提示文案
const (
	MsgValidation    = "Please enter a title and content."
	MsgPublished     = "Post published successfully!"
	MsgPublishFailed = "Error publishing post. Is the backend server running?"
)

// WriteForm 写文章表单；Tags 为逗号分隔，可为空
type WriteForm struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
	Tags    string `form:"tags" json:"tags"`
}

// SubmitOutcome 提交结果的类别，页面据此决定 HTTP 状态码
type SubmitOutcome int

const (
	SubmitPublished SubmitOutcome = iota
	SubmitInvalid
	SubmitFailed
)

// SubmitResult 提交后页面应展示的表单与提示
type SubmitResult struct {
	Outcome SubmitOutcome
	Form    WriteForm
	Status  *model.StatusMessage
	Post    *model.Post
}

// PostService 文章读写，全部委托给后端 API
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	ListTags(ctx context.Context) ([]string, error)
	ListByTag(ctx context.Context, tag string) ([]model.Post, error)
	Submit(ctx context.Context, form WriteForm) SubmitResult
}

type publishInput struct {
	Title   string `validate:"notblank"`
	Content string `validate:"notblank"`
}

type postService struct {
	repo     repository.PostRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewPostService(repo repository.PostRepository) PostService {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return &postService{repo: repo, validate: v, now: time.Now}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		logger.Warn("fetch posts failed", zap.Error(err))
		return nil, err
	}
	return posts, nil
}

func (s *postService) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		logger.Warn("fetch tags failed", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (s *postService) ListByTag(ctx context.Context, tag string) ([]model.Post, error) {
	posts, err := s.repo.ListByTag(ctx, tag)
	if err != nil {
		logger.Warn("fetch posts by tag failed", zap.String("tag", tag), zap.Error(err))
		return nil, err
	}
	return posts, nil
}

// Submit 校验不通过时不发请求；成功后清空表单；失败保留表单。提示 3 秒后消失。
func (s *postService) Submit(ctx context.Context, form WriteForm) SubmitResult {
	if err := s.validate.Struct(publishInput{Title: form.Title, Content: form.Content}); err != nil {
		return SubmitResult{Outcome: SubmitInvalid, Form: form, Status: model.NewStatusMessage(model.StatusError, MsgValidation, s.now())}
	}

	created, err := s.repo.Create(ctx, model.NewPost{
		Title:       form.Title,
		Content:     form.Content,
		FeatherType: model.FeatherText,
		Tags:        ParseTags(form.Tags),
	})
	if err != nil {
		logger.Error("publish post failed", zap.String("title", form.Title), zap.Error(err))
		captureException(ctx, err)
		return SubmitResult{Outcome: SubmitFailed, Form: form, Status: model.NewStatusMessage(model.StatusError, MsgPublishFailed, s.now())}
	}

	logger.Info("post published", zap.Int64("id", created.ID), zap.String("title", created.Title))
	return SubmitResult{
		Outcome: SubmitPublished,
		Form:    WriteForm{},
		Status:  model.NewStatusMessage(model.StatusSuccess, MsgPublished, s.now()),
		Post:    created,
	}
}

// ParseTags 逗号分隔，去空白、去重、转小写（后端按小写存储）
func ParseTags(raw string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func captureException(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
