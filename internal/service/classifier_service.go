package service

import (
	"github.com/bucketpro/bucketpro-go/internal/intent"
	"go.uber.org/zap"
)

// ClassifyResult 分类诊断结果
type ClassifyResult struct {
	intent.Classification
	Scores []intent.Score `json:"scores"`
}

// ClassifierService 意图分类服务
type ClassifierService struct {
	classifier *intent.Classifier
	logger     *zap.Logger
}

// NewClassifierService 创建意图分类服务
func NewClassifierService(classifier *intent.Classifier, logger *zap.Logger) *ClassifierService {
	return &ClassifierService{
		classifier: classifier,
		logger:     logger,
	}
}

// Classify 对问题分类并返回各意图得分
func (s *ClassifierService) Classify(question, lastIntent string) ClassifyResult {
	clean := intent.Sanitize(question)
	ctx := intent.NewContext()
	ctx.LastIntent = lastIntent

	cls := s.classifier.Classify(clean, ctx)

	s.logger.Info("问题分类完成",
		zap.String("intent", cls.Intent),
		zap.Float64("score", cls.Score),
		zap.String("sentiment", string(cls.Sentiment)))

	return ClassifyResult{
		Classification: cls,
		Scores:         s.classifier.Scores(clean, ctx),
	}
}

// Converse 处理一轮对话
func (s *ClassifierService) Converse(message string, ctx intent.Context) intent.Turn {
	turn := s.classifier.Converse(message, ctx)

	s.logger.Debug("对话回复已生成",
		zap.String("intent", turn.Intent),
		zap.Float64("score", turn.Score),
		zap.String("lastIntent", turn.Context.LastIntent))

	return turn
}
