package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/internal/config"
	"github.com/jortega/tlmkt-assign/pkg/clients/sheetsclient"
	"github.com/jortega/tlmkt-assign/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	SheetsClient *sheetsclient.Client
	Warehouse    db.Warehouse
	Logger       *zap.Logger
	Ctx          context.Context
}
