package intent

// DefaultHistorySize 会话上下文保留的用户输入条数
const DefaultHistorySize = 10

// Context 对话上下文
type Context struct {
	LastIntent string   `json:"lastIntent,omitempty"`
	History    []string `json:"history"`
}

// NewContext 创建空的对话上下文
func NewContext() Context {
	return Context{History: []string{}}
}

// Remember 记录一条用户原始输入，超过 limit 时淘汰最早的
func (c Context) Remember(input string, limit int) Context {
	if limit <= 0 {
		limit = DefaultHistorySize
	}

	history := make([]string, 0, len(c.History)+1)
	history = append(history, c.History...)
	history = append(history, input)
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	c.History = history
	return c
}

// WithIntent 写回本轮选中的意图；合成的 support 意图不写回
func (c Context) WithIntent(key string) Context {
	if key == KeySupport || key == "" {
		return c
	}
	c.LastIntent = key
	return c
}
