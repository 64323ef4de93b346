package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/dao"
	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/internal/routers"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/internal/store"
	"github.com/prompthub/prompt-hub-service/internal/task"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/fileurl"
	"github.com/prompthub/prompt-hub-service/pkg/logger"
	"github.com/prompthub/prompt-hub-service/pkg/util"

	"github.com/prompthub/prompt-hub-service/internal/middleware"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 项目根目录
	port    string // 启动端口
	runMode string // 启动模式
	config  string // 配置文件路径
}

const defaultAdminSecret = "admin123"

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					fmt.Println("failed to change working directory:", err)
					return
				}
			}

			if len(runEnv.config) <= 0 {
				if fileurl.IsExist("config/config-dev.yaml") {
					runEnv.config = "config/config-dev.yaml"
				} else if fileurl.IsExist("config.yaml") {
					runEnv.config = "config.yaml"
				} else {
					runEnv.config = "config/config.yaml"
				}
			}

			// 首次启动落默认配置时替换掉内置口令
			content := strings.Replace(configDefault, defaultAdminSecret, util.GetRandomString(32), 1)
			if _, err := global.ConfigCreateAndLoad(runEnv.config, []byte(content)); err != nil {
				fmt.Println("config load error:", err)
				return
			}

			if len(runEnv.port) > 0 {
				global.Config.Server.HttpPort = runEnv.port
			}
			if len(runEnv.runMode) > 0 {
				global.Config.Server.RunMode = runEnv.runMode
			}

			if err := runServer(); err != nil {
				fmt.Println("server error:", err)
				os.Exit(1)
			}
		},
	}

	runCommand.Flags().StringVarP(&runEnv.dir, "dir", "d", "", "working directory // 工作目录")
	runCommand.Flags().StringVarP(&runEnv.port, "port", "p", "", "http port // 启动端口")
	runCommand.Flags().StringVarP(&runEnv.runMode, "mode", "m", "", "run mode: debug|release // 运行模式")
	runCommand.Flags().StringVarP(&runEnv.config, "config", "c", "", "config file // 配置文件路径")

	rootCmd.AddCommand(runCommand)
}

// newStore 按配置选择实体存储后端
func newStore() (domain.Store, error) {
	if global.Config.App.Storage == "database" {
		db, err := dao.NewDBEngine(global.Config.Database)
		if err != nil {
			return nil, err
		}
		return dao.NewDBStore(db)
	}
	return store.NewJSONStore(global.Config.App.DataPath)
}

func runServer() error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      global.Config.Log.Level,
		File:       global.Config.Log.File,
		Production: global.Config.Log.Production,
	})
	if err != nil {
		return err
	}
	global.Logger = lg
	defer lg.Sync()

	st, err := newStore()
	if err != nil {
		return err
	}

	app.DefaultPaginationConfig = app.PaginationConfig{
		DefaultPageSize: global.Config.App.DefaultPageSize,
		MaxPageSize:     global.Config.App.MaxPageSize,
	}

	gate := service.NewGate(global.Config.Security.AdminSecret)
	hub := service.NewHub(st, gate, global.Config.App.BackupPath)

	// 空库时写入默认分类
	if err := service.New(context.Background(), hub).AdminSeed(); err != nil {
		return err
	}

	var scheduler *task.BackupScheduler
	if spec := global.Config.Backup.Cron; spec != "" {
		scheduler, err = task.NewBackupScheduler(hub, spec, global.Config.Backup.Keep)
		if err != nil {
			return err
		}
		scheduler.Start()
		lg.Info("scheduled backup enabled", zap.String("cron", spec))
	}

	uni := middleware.NewUniversalTranslator()
	router := routers.NewRouter(hub, uni)

	srv := &http.Server{
		Addr:           ":" + global.Config.Server.HttpPort,
		Handler:        router,
		ReadTimeout:    time.Duration(global.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(global.Config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	lg.Info("server exited")
	return nil
}
