package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InitialVersion 首个版本号
const InitialVersion = "1.0"

// InitialChangeNote 首个版本的变更说明
const InitialChangeNote = "初始版本"

// PromptVersion 提示词版本快照，追加后不可变更
// (PromptID, Version) 唯一
type PromptVersion struct {
	PromptID    string
	Version     string
	Title       string
	Content     string
	Description string
	ChangeNote  string
	CreatedAt   time.Time
}

// ParseVersion 解析 major.minor 形式的版本号
func ParseVersion(label string) (major, minor int, err error) {
	parts := strings.SplitN(label, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid version label %q", label)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid version label %q", label)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid version label %q", label)
	}
	return major, minor, nil
}

// NextVersion 计算下一个版本号：默认递增 minor，majorBump 时递增 major 并归零 minor
// 该方案保证同一提示词的版本号单调递增且与创建顺序一致
func NextVersion(current string, majorBump bool) (string, error) {
	major, minor, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	if majorBump {
		return fmt.Sprintf("%d.0", major+1), nil
	}
	return fmt.Sprintf("%d.%d", major, minor+1), nil
}

// CompareVersion 比较两个版本号，返回 -1/0/1
func CompareVersion(a, b string) int {
	aMajor, aMinor, errA := ParseVersion(a)
	bMajor, bMinor, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	if aMajor != bMajor {
		if aMajor < bMajor {
			return -1
		}
		return 1
	}
	if aMinor != bMinor {
		if aMinor < bMinor {
			return -1
		}
		return 1
	}
	return 0
}
