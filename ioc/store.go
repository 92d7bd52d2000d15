package ioc

import (
	"context"

	"github.com/KNICEX/price-alert-agent/internal/repo"
	"github.com/KNICEX/price-alert-agent/internal/service/alert"
	"github.com/KNICEX/price-alert-agent/internal/service/alert/dbstore"
	"github.com/KNICEX/price-alert-agent/internal/service/alert/sheetstore"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func InitRuleStore() alert.RuleStore {
	switch viper.GetString("store.backend") {
	case "sheet":
		return initSheetStore()
	default:
		db := InitDB()
		if err := repo.InitTables(db); err != nil {
			panic(err)
		}
		return dbstore.NewStore(repo.NewRuleRepo(db), repo.NewMarkerRepo(db))
	}
}

func initSheetStore() alert.RuleStore {
	type Config struct {
		CredentialFile string `mapstructure:"credential_file"`
		SpreadsheetId  string `mapstructure:"spreadsheet_id"`
		SheetName      string `mapstructure:"sheet_name"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("store.sheet", &cfg); err != nil {
		panic(err)
	}
	if cfg.SpreadsheetId == "" {
		panic("no spreadsheet id set")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}

	svc, err := sheets.NewService(context.Background(),
		option.WithCredentialsFile(cfg.CredentialFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		panic(err)
	}
	return sheetstore.NewStore(sheetstore.NewGoogleApi(svc, cfg.SpreadsheetId, cfg.SheetName))
}
