package main

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/schedule"
	"github.com/KNICEX/price-alert-agent/internal/service/alert"
	"github.com/KNICEX/price-alert-agent/internal/web"
	"github.com/KNICEX/price-alert-agent/ioc"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper(file string) {
	viper.SetConfigFile(file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	once := pflag.Bool("once", false, "run a single check and exit")
	pflag.Parse()

	initViper(*file)

	store := ioc.InitRuleStore()
	quoteSvc := ioc.InitQuoteService()
	notifier := ioc.InitNotifier()

	task := alert.NewRunner(store, quoteSvc, alert.WithNotifier(notifier))

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute*10)
		defer cancel()
		if err := task.Run(ctx); err != nil {
			panic(err)
		}
		return
	}

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		panic(err)
	}

	interval := viper.GetInt("schedule.interval_minutes")
	if interval <= 0 {
		interval = 5
	}
	cron := schedule.NewCron(loc, time.Minute*10)
	if err = cron.Every(interval, task); err != nil {
		panic(err)
	}
	cron.Start()
	defer cron.Stop()

	engine := gin.Default()
	web.RegisterRoutes(engine, task)

	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}
	if err = engine.Run(addr); err != nil {
		panic(err)
	}
}
