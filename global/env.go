package global

import (
	"github.com/prompthub/prompt-hub-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Prompt Hub Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
