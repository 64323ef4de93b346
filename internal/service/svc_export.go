package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"
)

// exportHeaders 导出列头，与桌面表格软件直接兼容
var exportHeaders = []string{"标题", "描述", "内容", "分类", "标签", "创建时间", "更新时间"}

// PromptExportCSV 导出提示词为 CSV，过滤条件与检索一致
// 文件头带 UTF-8 BOM，Excel 打开中文不乱码
func (svc *Service) PromptExportCSV(param *PromptSearchRequest) ([]byte, error) {
	if param == nil {
		param = &PromptSearchRequest{}
	}
	// pageSize 0 表示不分页，导出完整结果集
	prompts, _, err := svc.PromptSearch(param, 0, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, p := range prompts {
		record := []string{
			p.Title,
			p.Description,
			p.Content,
			p.CategoryPath,
			strings.Join(p.Tags, ", "),
			formatExportTime(p.CreatedAt),
			formatExportTime(p.UpdatedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatExportTime(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format(time.DateTime)
}
