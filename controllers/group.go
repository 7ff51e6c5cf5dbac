package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

const directoryRefreshInterval = 20 * time.Minute

// GroupController keeps an in-memory directory of the groups. Groups change
// rarely, so the directory refreshes on a ticker and immediately after a
// create.
type GroupController struct {
	db     db.GroupDatabase
	mutex  sync.Mutex
	cached []*model.Group
}

func NewGroupController(ctx context.Context, database db.GroupDatabase) (*GroupController, error) {
	controller := &GroupController{db: database}
	if err := controller.refresh(ctx); err != nil {
		return nil, err
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("group directory refresher died")
			}
		}()
		ticker := time.NewTicker(directoryRefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := controller.refresh(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to refresh group directory")
			}
		}
	}()
	return controller, nil
}

func (gc *GroupController) refresh(ctx context.Context) error {
	groups, err := gc.db.GetGroups(ctx)
	if err != nil {
		return err
	}
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	gc.cached = groups
	return nil
}

func (gc *GroupController) Groups() []*model.Group {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	return gc.cached
}

func (gc *GroupController) CreateGroup(ctx context.Context, req *db.CreateGroup) (int64, *util.HTTPError) {
	id, err := gc.db.CreateGroup(ctx, req)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && db.IsDupKeyErr(mysqlErr) {
			return 0, &util.HTTPError{
				Status:  http.StatusConflict,
				Message: "a group with that title already exists",
			}
		}
		return 0, util.BuildDbHTTPErr(err)
	}
	if err := gc.refresh(ctx); err != nil {
		log.Error().Err(err).Msg("failed to refresh group directory after create")
	}
	return id, nil
}
