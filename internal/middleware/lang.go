package middleware

import (
	"strings"

	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/gin-gonic/gin/binding"
)

// NewUniversalTranslator 构建参数校验错误的翻译器
func NewUniversalTranslator() *ut.UniversalTranslator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())

	if v, ok := binding.Validator.Engine().(*val.Validate); ok {
		if trans, found := uni.GetTranslator("en"); found {
			_ = en_translations.RegisterDefaultTranslations(v, trans)
		}
		if trans, found := uni.GetTranslator("zh"); found {
			_ = zh_translations.RegisterDefaultTranslations(v, trans)
		}
	}
	return uni
}

// LangWithTranslator 按请求头或 query 选择响应语言
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {

		var lang string
		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}

		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		transLang := "zh"
		if strings.HasPrefix(lang, "en") {
			transLang = "en"
		}
		trans, found := uni.GetTranslator(transLang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		code.SetGlobalDefaultLang(lang)

		c.Next()
	}
}
