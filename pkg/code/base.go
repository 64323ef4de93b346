package code

// 通用状态码
var (
	Success = NewSuss(200, lang{"Success", "成功"})
	Failed  = NewError(100, lang{"Failed", "失败"})

	ErrorServerInternal = NewError(10000000, lang{"Server internal error", "服务内部错误"})
	ErrorInvalidParams  = NewError(10000001, lang{"Invalid params", "入参错误"})
	ErrorNotFound       = NewError(10000002, lang{"Resource not found", "资源不存在"})
	ErrorUnauthorized   = NewError(10000003, lang{"Admin secret mismatch", "管理口令错误"})
	ErrorConflict       = NewError(10000004, lang{"Operation conflicts with current state", "操作与当前状态冲突"})
	ErrorStorageFailure = NewError(10000005, lang{"Storage failure", "存储失败"})
	ErrorConsistency    = NewError(10000006, lang{"Internal consistency violation", "内部一致性错误"})
	ErrorNotDeletable   = NewError(10000007, lang{"Resource is not deletable", "资源不允许删除"})
)

// 提示词业务状态码
var (
	ErrorPromptNotFound  = NewError(20010001, lang{"Prompt not found", "提示词不存在"})
	ErrorVersionNotFound = NewError(20010002, lang{"Prompt version not found", "提示词版本不存在"})

	ErrorCategoryNotFound    = NewError(20020001, lang{"Category not found", "分类不存在"})
	ErrorCategoryCycle       = NewError(20020002, lang{"Category parent would form a cycle", "分类父级设置会造成循环引用"})
	ErrorCategoryDepth       = NewError(20020003, lang{"Category depth exceeds limit", "分类层级不能超过限制"})
	ErrorCategoryUndeletable = NewError(20020004, lang{"Fallback category cannot be deleted", "默认分类不允许删除"})

	ErrorTagNotFound  = NewError(20030001, lang{"Tag not found", "标签不存在"})
	ErrorTagDuplicate = NewError(20030002, lang{"Tag name already exists", "标签名称已存在"})

	ErrorBackupFailed = NewError(20040001, lang{"Backup failed, destructive operation aborted", "备份失败，已中止破坏性操作"})
)
