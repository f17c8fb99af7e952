package app

import (
	"fmt"
	"path/filepath"

	"github.com/AvinashMishraaa/Talentflow/internal/config"
	"github.com/AvinashMishraaa/Talentflow/internal/db"
	"github.com/AvinashMishraaa/Talentflow/internal/engine"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

// Context bundles the wired components of a running instance. Close releases
// the underlying database handle.
type Context struct {
	Workspace string
	Config    *config.Config
	Store     *store.Store
	Engine    *engine.Engine

	closeDB func() error
}

// Bootstrap opens the workspace: ensures the data directory exists, loads the
// optional config file, opens the durable tier and wires the engine on top.
func Bootstrap(workspace string) (*Context, error) {
	dir, err := db.EnsureWorkspace(workspace)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return nil, err
	}
	durable, err := store.NewSQLiteTier(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open durable tier: %w", err)
	}
	fast := store.FileTier{Dir: filepath.Join(dir, "kv")}
	st := store.New(fast, durable)
	return &Context{
		Workspace: workspace,
		Config:    cfg,
		Store:     st,
		Engine:    engine.New(st, cfg),
		closeDB:   sqlDB.Close,
	}, nil
}

func (c *Context) Close() error {
	if c.closeDB != nil {
		return c.closeDB()
	}
	return nil
}
