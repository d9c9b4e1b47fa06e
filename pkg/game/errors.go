package game

import "errors"

var (
	// ErrNegativeScore 分数只能增加
	ErrNegativeScore = errors.New("score increase must not be negative")
	// ErrNoDefinitions 作物定义表为空
	ErrNoDefinitions = errors.New("at least one plantation definition is required")
)
