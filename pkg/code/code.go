// Package code 定义统一的业务状态码
package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// HTTP 状态码，0 表示按默认映射
	httpStatus int
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}

// NewError 注册一个失败状态码，重复注册会 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss 注册一个成功状态码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

func (e *Code) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.Lang.GetMessage())
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData 返回携带数据的副本，不修改注册的原始状态码
func (e *Code) WithData(data interface{}) *Code {
	newCode := *e
	newCode.data = data
	newCode.haveData = true
	return &newCode
}

// WithDetails 返回携带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	newCode := *e
	newCode.details = []string{}
	newCode.haveDetails = true
	newCode.details = append(newCode.details, details...)
	return &newCode
}

// StatusCode 将业务状态码映射为 HTTP 状态码
func (e *Code) StatusCode() int {
	if e.httpStatus != 0 {
		return e.httpStatus
	}
	switch e.code {
	case Success.Code():
		return http.StatusOK
	case ErrorServerInternal.Code(), ErrorStorageFailure.Code(), ErrorConsistency.Code():
		return http.StatusInternalServerError
	case ErrorInvalidParams.Code(), ErrorNotDeletable.Code():
		return http.StatusBadRequest
	case ErrorUnauthorized.Code():
		return http.StatusUnauthorized
	case ErrorNotFound.Code(), ErrorPromptNotFound.Code(), ErrorVersionNotFound.Code(),
		ErrorCategoryNotFound.Code(), ErrorTagNotFound.Code():
		return http.StatusNotFound
	case ErrorConflict.Code(), ErrorCategoryCycle.Code(), ErrorCategoryDepth.Code(),
		ErrorTagDuplicate.Code():
		return http.StatusConflict
	case ErrorCategoryUndeletable.Code():
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
