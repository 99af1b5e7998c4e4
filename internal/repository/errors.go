package repository

import (
	"errors"
	"fmt"
)

// 统一的存储层错误。调用方通过 errors.Is 区分三类失败：
// 校验失败由请求层处理，这里只产生冲突与未找到两类。
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflict")

	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)
	// ErrVINTaken VIN 已被注册
	ErrVINTaken = fmt.Errorf("vin already registered: %w", ErrConflict)
	// ErrNoBatteryData 车辆存在但没有任何电池记录
	ErrNoBatteryData = fmt.Errorf("no battery data: %w", ErrNotFound)
)
