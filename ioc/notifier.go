package ioc

import (
	"context"

	"github.com/KNICEX/price-alert-agent/internal/service/notification"
	"github.com/KNICEX/price-alert-agent/internal/service/notification/telegram"
	"github.com/spf13/viper"
)

func InitNotifier() notification.Notifier {
	type Config struct {
		Token  string `mapstructure:"token"`
		ChatId int64  `mapstructure:"chat_id"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("bot.telegram", &cfg); err != nil {
		panic(err)
	}
	if cfg.Token == "" {
		return notification.NewConsoleNotifier()
	}

	if cfg.ChatId == 0 {
		id, err := telegram.ResolveChatId(context.Background(), cfg.Token)
		if err != nil {
			panic(err)
		}
		cfg.ChatId = id
	}
	return telegram.NewService(cfg.Token, cfg.ChatId)
}
