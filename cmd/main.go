// @title           Law Office API
// @version         1.0
// @description     律所后台与出庭代理平台接口
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	Env string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "law-office",
		SilenceUsage: true,
		Short:        "law-office 律所后台与出庭代理平台",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.Env, "env", "e", envOr("APP_ENV", "development"), "运行环境 (development | production)")

	cmd.AddCommand(
		serveCmd(opts),
		migrateCmd(opts),
		seedCmd(opts),
	)
	return cmd
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务与后台任务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "自动建表",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(opts.Env)
			if err != nil {
				return err
			}
			defer app.Close()
			app.Logger.Info("建表完成")
			return nil
		},
	}
}

func seedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入默认律所",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(opts.Env)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.seed(cmd.Context())
		},
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
