package ioc

import (
	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	binancequote "github.com/KNICEX/price-alert-agent/internal/service/quote/binance"
	"github.com/KNICEX/price-alert-agent/internal/service/quote/yahoo"
	"github.com/spf13/viper"
)

func InitQuoteService() quote.Service {
	switch viper.GetString("quote.source") {
	case "binance":
		return binancequote.NewService(InitBinanceCli())
	default:
		var cfg yahoo.Config
		if err := viper.UnmarshalKey("quote.yahoo", &cfg); err != nil {
			panic(err)
		}
		return yahoo.NewService(cfg)
	}
}
