package global

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/prompthub/prompt-hub-service/pkg/fileurl"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Config 全局配置，由 ConfigLoad 填充
var Config *config

type config struct {
	File     string   `yaml:"-"`
	Server   server   `yaml:"server"`
	App      appCfg   `yaml:"app"`
	Security security `yaml:"security"`
	Database Database `yaml:"database"`
	Log      logCfg   `yaml:"log"`
	Backup   backup   `yaml:"backup"`

	mu sync.Mutex `yaml:"-"`
}

type server struct {
	RunMode      string `yaml:"run-mode" default:"release"`
	HttpPort     string `yaml:"http-port" default:"8000"`
	ReadTimeout  int    `yaml:"read-timeout" default:"60"`
	WriteTimeout int    `yaml:"write-timeout" default:"60"`
}

type appCfg struct {
	// Storage 实体存储类型 json 或 database
	Storage         string `yaml:"storage" default:"json"`
	DataPath        string `yaml:"data-path" default:"storage/data"`
	BackupPath      string `yaml:"backup-path" default:"storage/backups"`
	DefaultPageSize int    `yaml:"default-page-size" default:"20"`
	MaxPageSize     int    `yaml:"max-page-size" default:"100"`
	DefaultLang     string `yaml:"default-lang" default:"zh-cn"`
}

type security struct {
	// AdminSecret 管理口令，变更操作必须携带
	AdminSecret string `yaml:"admin-secret" default:"admin123"`
}

// Database 关系型存储连接配置
type Database struct {
	Type         string `yaml:"type" default:"sqlite"`
	Path         string `yaml:"path" default:"storage/database/prompt-hub.db"`
	UserName     string `yaml:"username"`
	Password     string `yaml:"password"`
	Host         string `yaml:"host" default:"localhost:3306"`
	Name         string `yaml:"name" default:"prompt_hub"`
	TablePrefix  string `yaml:"table-prefix" default:"p_"`
	Charset      string `yaml:"charset" default:"utf8mb4"`
	ParseTime    bool   `yaml:"parse-time" default:"true"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"30"`
}

type logCfg struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file" default:"storage/logs/prompt-hub.log"`
	Production bool   `yaml:"production" default:"false"`
}

type backup struct {
	// Cron 定时快照表达式，空串关闭定时备份
	Cron string `yaml:"cron" default:""`
	// Keep 保留的定时快照份数，0 表示不清理
	Keep int `yaml:"keep" default:"10"`
}

// ConfigLoad 读取 YAML 配置并套用默认值，写入全局 Config
func ConfigLoad(file string) (*config, error) {
	c := &config{}
	if err := defaults.Set(c); err != nil {
		return nil, err
	}

	if fileurl.IsExist(file) {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, err
		}
	}

	c.File = file
	Config = c
	return c, nil
}

// ConfigCreateAndLoad 配置文件不存在时先用默认内容落盘再加载
func ConfigCreateAndLoad(file string, content []byte) (*config, error) {
	if !fileurl.IsExist(file) {
		if err := fileurl.CreatePath(file, os.ModePerm); err != nil {
			return nil, err
		}
		if err := os.WriteFile(file, content, 0644); err != nil {
			return nil, err
		}
	}
	return ConfigLoad(file)
}

// Save 将当前配置写回文件
func (c *config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(c.File)
	if !fileurl.IsDir(dir) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(c.File, data, 0644)
}
